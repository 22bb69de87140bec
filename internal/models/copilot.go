package models

// CopilotAction is a suggested follow-up the front end renders as a button.
type CopilotAction struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// CopilotReply is the co-pilot's answer to one query.
type CopilotReply struct {
	Text    string          `json:"text"`
	Actions []CopilotAction `json:"actions"`
}
