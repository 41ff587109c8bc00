package assistant

import "calendar-assistant/api/services/pipeline"

// classifiedType reads the intent recorded by the classify node.
func classifiedType(tc *pipeline.TaskContext) EventType {
	resp, _ := storedResponse[ClassifyResponse](tc, NodeClassify)
	return resp.RequestType
}

// createRule routes create intents to the create extraction chain.
type createRule struct{}

func (createRule) NextNode(tc *pipeline.TaskContext) string {
	if classifiedType(tc) == EventCreate {
		return NodeCreateExtract
	}
	return ""
}

// deleteRule routes delete intents to the lookup chain, which ends in the
// delete executor.
type deleteRule struct{}

func (deleteRule) NextNode(tc *pipeline.TaskContext) string {
	if classifiedType(tc) == EventDelete {
		return NodeLookupExtract
	}
	return ""
}
