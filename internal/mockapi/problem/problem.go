// Package problem writes RFC 7807 problem documents. The detail member is
// always set because clients show it to the user.
package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

const contentType = "application/problem+json"

const (
	TypeValidation   = "https://hackctl.dev/problems/validation-error"
	TypeUnauthorized = "https://hackctl.dev/problems/unauthorized"
	TypeForbidden    = "https://hackctl.dev/problems/forbidden"
	TypeNotFound     = "https://hackctl.dev/problems/not-found"
	TypeConflict     = "https://hackctl.dev/problems/conflict"
	TypeServerError  = "https://hackctl.dev/problems/server-error"
)

type ProblemDetails struct {
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Status   int      `json:"status"`
	Detail   string   `json:"detail"`
	Instance string   `json:"instance,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

type Option func(*ProblemDetails)

func WithDetail(detail string) Option {
	return func(p *ProblemDetails) {
		p.Detail = detail
	}
}

func WithErrors(errs []string) Option {
	return func(p *ProblemDetails) {
		p.Errors = errs
	}
}

// Write sends a problem document. The detail is err's message, or the title
// when err is nil.
func Write(w http.ResponseWriter, r *http.Request, status int, typ, title string, err error, opts ...Option) {
	problem := ProblemDetails{
		Type:   typ,
		Title:  title,
		Status: status,
	}
	for _, opt := range opts {
		opt(&problem)
	}

	if problem.Detail == "" {
		if err != nil {
			problem.Detail = err.Error()
		} else {
			problem.Detail = title
		}
	}
	if problem.Instance == "" && r != nil {
		problem.Instance = r.URL.Path
	}

	if r != nil {
		logger := zerolog.Ctx(r.Context())
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}
		if event != nil {
			event.
				Err(err).
				Int("status", status).
				Str("type", typ).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg(title)
		}
	}

	WriteProblem(w, problem)
}

func WriteProblem(w http.ResponseWriter, problem ProblemDetails) {
	payload, err := json.Marshal(problem)
	if err != nil {
		fallback := fmt.Sprintf("{\"type\":\"about:blank\",\"title\":\"%s\",\"status\":500,\"detail\":\"%s\"}",
			http.StatusText(http.StatusInternalServerError), http.StatusText(http.StatusInternalServerError))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallback))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(problem.Status)
	_, _ = w.Write(payload)
}

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)
