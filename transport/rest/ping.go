package rest

import "net/http"

type PingHandler interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
}

type pingHandler struct{}

func NewPingHandler() PingHandler {
	return &pingHandler{}
}

// PingHandler - liveness probe for the presentation layer.
func (that *pingHandler) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write([]byte("pong"))
}
