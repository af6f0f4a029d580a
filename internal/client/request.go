package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/itamhack/hackctl/internal/metrics"
)

// RequestOptions describes one API call.
type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Body is sent as is when it is a string or []byte, as multipart when it
	// is a *Form, and JSON encoded otherwise. nil sends no body.
	Body any
	// Headers override the defaults, Content-Type included.
	Headers map[string]string
	Query   url.Values
}

// result is what one round trip produced before shaping into a Response.
type result struct {
	status  int
	header  http.Header
	body    []byte
	message string
	outcome string
}

// Request calls endpoint and decodes a JSON response into T. It never returns
// an error and never panics on bad input from the network.
func Request[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) Response[T] {
	var data T
	res := c.do(ctx, endpoint, opts, func(body []byte) error {
		return json.Unmarshal(body, &data)
	})
	if res.outcome != metrics.OutcomeSuccess {
		return failed[T](res)
	}
	return OK(data, res.status)
}

// ExportFile is a downloaded file.
type ExportFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// DefaultExportName is used when the server does not name the file.
const DefaultExportName = "hackathon_teams.csv"

// Download fetches a raw, non-JSON resource such as a CSV export. The file
// name comes from Content-Disposition.
func Download(ctx context.Context, c *Client, endpoint string) Response[ExportFile] {
	res := c.do(ctx, endpoint, RequestOptions{Method: http.MethodGet}, nil)
	if res.outcome != metrics.OutcomeSuccess {
		return failed[ExportFile](res)
	}
	return OK(ExportFile{
		Name:        FilenameFromDisposition(res.header.Get("Content-Disposition"), DefaultExportName),
		ContentType: res.header.Get("Content-Type"),
		Data:        res.body,
	}, res.status)
}

func failed[T any](res result) Response[T] {
	r := Fail[T](res.message, res.status)
	r.Canceled = res.outcome == metrics.OutcomeCanceled
	return r
}

// do performs the round trip shared by Request and Download. decode runs on
// every successful body except a 204; its error, including one for an empty
// body, turns the call into a failure.
func (c *Client) do(ctx context.Context, endpoint string, opts RequestOptions, decode func([]byte) error) (res result) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	ctx, span := c.tracer.Start(ctx, method+" "+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", endpoint),
		))
	start := time.Now()
	defer func() {
		span.SetAttributes(attribute.Int("http.response.status_code", res.status))
		if res.outcome != metrics.OutcomeSuccess {
			span.SetStatus(codes.Error, res.message)
		}
		span.End()
		metrics.ObserveClientRequest(method, res.status, res.outcome, time.Since(start).Seconds())
	}()

	parent := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	fail := func(outcome string, err error) result {
		if parent.Err() != nil {
			outcome = metrics.OutcomeCanceled
		}
		msg := UnknownError
		if err != nil && err.Error() != "" {
			msg = err.Error()
		}
		c.logger.Debug().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("request failed")
		return result{status: res.status, message: msg, outcome: outcome}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(metrics.OutcomeTransport, fmt.Errorf("rate limiter: %w", err))
		}
	}

	body, contentType, err := encodeBody(opts.Body)
	if err != nil {
		return fail(metrics.OutcomeTransport, err)
	}

	target := c.baseURL + endpoint
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fail(metrics.OutcomeTransport, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Bool("authenticated", req.Header.Get("Authorization") != "").
		Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(metrics.OutcomeTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	res.status = resp.StatusCode
	res.header = resp.Header
	res.body, err = io.ReadAll(resp.Body)
	if err != nil {
		return fail(metrics.OutcomeTransport, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res.outcome = metrics.OutcomeHTTPError
		res.message = errorMessage(resp.StatusCode, res.body)
		c.logger.Debug().
			Str("method", method).
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("message", res.message).
			Msg("api error response")
		return res
	}

	res.outcome = metrics.OutcomeSuccess
	if resp.StatusCode == http.StatusNoContent {
		res.body = nil
		return res
	}
	if decode != nil {
		if err := decode(res.body); err != nil {
			res.outcome = metrics.OutcomeDecode
			res.message = fmt.Sprintf("decode response: %v", err)
		}
	}
	return res
}

// encodeBody picks the wire form of a request body and its default content type.
func encodeBody(body any) (io.Reader, string, error) {
	const jsonType = "application/json"
	switch b := body.(type) {
	case nil:
		return nil, jsonType, nil
	case *Form:
		if b == nil {
			return nil, jsonType, nil
		}
		return b.encode()
	case string:
		return strings.NewReader(b), jsonType, nil
	case []byte:
		return bytes.NewReader(b), jsonType, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode body: %w", err)
		}
		return bytes.NewReader(data), jsonType, nil
	}
}

// errorMessage extracts the text of an API error: "detail" first, then
// "message", then a generic status line.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := detailMessage(payload.Detail); msg != "" {
			return msg
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// detailMessage reads a detail that is either a string or a list of
// validation issues with "msg" fields.
func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var issues []struct {
		Msg string `json:"msg"`
		Loc []any  `json:"loc"`
	}
	if err := json.Unmarshal(raw, &issues); err != nil {
		return ""
	}
	msgs := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Msg == "" {
			continue
		}
		if field := issueField(issue.Loc); field != "" {
			msgs = append(msgs, field+": "+issue.Msg)
			continue
		}
		msgs = append(msgs, issue.Msg)
	}
	return strings.Join(msgs, "; ")
}

// issueField names the offending field from a location like ["body", "email"].
func issueField(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if name, ok := loc[len(loc)-1].(string); ok && name != "body" && name != "query" && name != "path" {
		return name
	}
	return ""
}

var errNoFilename = errors.New("no filename")

// FilenameFromDisposition reads the file name from a Content-Disposition
// header, preferring the RFC 5987 filename* form.
func FilenameFromDisposition(header, fallback string) string {
	name, err := parseDisposition(header)
	if err != nil {
		return fallback
	}
	return name
}

func parseDisposition(header string) (string, error) {
	for _, param := range strings.Split(header, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "filename*") {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if _, encoded, ok := strings.Cut(value, "''"); ok {
			value = encoded
		}
		if decoded, err := url.PathUnescape(value); err == nil && decoded != "" {
			return decoded, nil
		}
	}
	for _, param := range strings.Split(header, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "filename") {
			continue
		}
		if value = strings.Trim(strings.TrimSpace(value), `"'`); value != "" {
			return value, nil
		}
	}
	return "", errNoFilename
}
