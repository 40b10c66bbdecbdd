package tool

import "errors"

var (
	// ErrNodeNotFound reports a node id absent from the target workflow.
	ErrNodeNotFound = errors.New("node not found")

	// ErrLinkNotFound reports a link id absent from the target workflow.
	ErrLinkNotFound = errors.New("link not found")

	// ErrConnectionFailed reports a connect attempt whose endpoint nodes do
	// not exist; the graph is left untouched.
	ErrConnectionFailed = errors.New("connection failed (check node ids and slots)")

	// ErrToolNotFound reports an unknown service or method name.
	ErrToolNotFound = errors.New("tool not found")
)
