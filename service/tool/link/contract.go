package link

// ConnectInput names the endpoints to connect. DataType defaults to the
// wildcard "*" when omitted.
type ConnectInput struct {
	WorkflowID string `json:"workflow_id,omitempty"`
	OriginID   int    `json:"origin_id"`
	OriginSlot int    `json:"origin_slot"`
	TargetID   int    `json:"target_id"`
	TargetSlot int    `json:"target_slot"`
	DataType   string `json:"data_type,omitempty"`
}

// ConnectOutput reports the created link.
type ConnectOutput struct {
	LinkID     int    `json:"link_id"`
	OriginID   int    `json:"origin_id"`
	OriginSlot int    `json:"origin_slot"`
	TargetID   int    `json:"target_id"`
	TargetSlot int    `json:"target_slot"`
	DataType   string `json:"data_type"`
	Status     string `json:"status"`
}

// DisconnectInput identifies the link to remove.
type DisconnectInput struct {
	WorkflowID string `json:"workflow_id,omitempty"`
	LinkID     int    `json:"link_id"`
}

// DisconnectOutput confirms the removal.
type DisconnectOutput struct {
	LinkID int    `json:"link_id"`
	Status string `json:"status"`
}
