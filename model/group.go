package model

// Group represents a visual grouping of nodes. It is presentation metadata
// only and carries no behavioral invariant.
type Group struct {
	Title    string `json:"title"`
	Bounding [4]int `json:"bounding"`
	Color    string `json:"color"`
	FontSize int    `json:"font_size"`
}

// Clone creates a copy of the group.
func (g *Group) Clone() *Group {
	if g == nil {
		return nil
	}
	clone := *g
	return &clone
}
