package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/comfygraph/comfygraph/service/dao/document"
	"github.com/comfygraph/comfygraph/service/tool"
	"github.com/comfygraph/comfygraph/session"
)

var ErrInvalidJSON = errors.New("invalid JSON")

func errorToJSON(err error) string {
	data, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		return `{"error":"internal error"}`
	}
	return string(data)
}

// statusFor maps a dispatch failure to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrWorkflowNotFound),
		errors.Is(err, tool.ErrNodeNotFound),
		errors.Is(err, tool.ErrLinkNotFound),
		errors.Is(err, document.ErrNotFound),
		errors.Is(err, tool.ErrToolNotFound):
		return http.StatusNotFound
	case errors.Is(err, tool.ErrConnectionFailed),
		errors.Is(err, ErrInvalidJSON):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
