// Package worker runs accepted events through the pipeline in the
// background: an in-process task queue with a fixed pool of workers.
package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"calendar-assistant/api/services/events"
	"calendar-assistant/api/services/pipeline"
)

// Runner executes one pipeline run. *pipeline.Executor satisfies it.
type Runner interface {
	Run(ctx context.Context, event any) *pipeline.TaskContext
}

// Repo is the slice of event persistence the workers need.
type Repo interface {
	Get(ctx context.Context, id uuid.UUID) (*events.Record, error)
	StoreResult(ctx context.Context, id uuid.UUID, result any) error
}

type job struct {
	taskID  uuid.UUID
	eventID uuid.UUID
}

// Pool processes enqueued events with a fixed number of workers. Each job
// loads its event, runs the pipeline, and stores the final context snapshot.
type Pool struct {
	runner Runner
	repo   Repo
	jobs   chan job
	wg     sync.WaitGroup
}

// NewPool creates a pool with the given worker count and queue capacity.
func NewPool(runner Runner, repo Repo, workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		runner: runner,
		repo:   repo,
		jobs:   make(chan job, queueSize),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
	return p
}

// Enqueue queues an event for processing and returns the task id assigned to
// the job. It blocks when the queue is full and must not be called after
// Stop.
func (p *Pool) Enqueue(eventID uuid.UUID) uuid.UUID {
	j := job{taskID: uuid.New(), eventID: eventID}
	p.jobs <- j
	return j.taskID
}

// Stop drains the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

func (p *Pool) work() {
	defer p.wg.Done()
	for j := range p.jobs {
		p.process(j)
	}
}

func (p *Pool) process(j job) {
	ctx := context.Background()
	logger := slog.With("task_id", j.taskID, "event_id", j.eventID)

	rec, err := p.repo.Get(ctx, j.eventID)
	if err != nil {
		logger.Error("Failed to load event", "error", err)
		return
	}
	if rec == nil {
		logger.Error("Event not found")
		return
	}

	logger.Info("Starting event processing")
	tc := p.runner.Run(ctx, rec.Payload)
	if tc.Error != nil {
		logger.Warn("Pipeline halted with error",
			"kind", tc.Error.Kind,
			"node", tc.Error.Node,
			"message", tc.Error.Message)
	} else {
		logger.Info("Completed event processing")
	}

	if err := p.repo.StoreResult(ctx, j.eventID, tc); err != nil {
		logger.Error("Failed to store processing results", "error", err)
		return
	}
	logger.Debug("Stored processing results")
}
