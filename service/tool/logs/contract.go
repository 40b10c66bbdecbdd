package logs

import "github.com/comfygraph/comfygraph/service/oplog"

// RecentInput filters the log tail. Count defaults to 20 when omitted.
type RecentInput struct {
	Count      int    `json:"count,omitempty"`
	Level      string `json:"level,omitempty"`
	WorkflowID string `json:"workflow_id,omitempty"`
}

// RecentOutput carries the matching entries in chronological order.
type RecentOutput struct {
	Entries []*oplog.Entry `json:"entries"`
	Count   int            `json:"count"`
}

// StatsInput has no parameters.
type StatsInput struct{}

// StatsOutput carries the log counters.
type StatsOutput struct {
	*oplog.Stats
}

// ClearInput has no parameters.
type ClearInput struct{}

// ClearOutput confirms the log was emptied.
type ClearOutput struct {
	Status string `json:"status"`
}
