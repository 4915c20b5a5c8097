// Package ai asks a text-completion service for structured answers: message intent,
// timezone inference and name extraction.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidResponse is returned when the completion cannot be decoded or fails validation.
var ErrInvalidResponse = errors.New("invalid oracle response")

// Prompt is a rendered system and user message pair.
type Prompt struct {
	System string
	User   string
}

// Completer returns the raw text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// Query describes one typed question: how to render the request, how to validate
// the decoded response, and what to answer when the service is unusable.
type Query[Req, Resp any] struct {
	Name     string
	Build    func(Req) Prompt
	Check    func(*Resp) error
	Fallback func(Req) Resp
}

// Ask runs q against c. On any failure the error is returned together with the
// query's fallback value (or the zero value when the query has none).
func Ask[Req, Resp any](ctx context.Context, c Completer, q Query[Req, Resp], req Req) (Resp, error) {
	resp, err := ask(ctx, c, q, req)
	if err != nil {
		var fallback Resp
		if q.Fallback != nil {
			fallback = q.Fallback(req)
		}
		return fallback, fmt.Errorf("%s: %w", q.Name, err)
	}
	return resp, nil
}

func ask[Req, Resp any](ctx context.Context, c Completer, q Query[Req, Resp], req Req) (Resp, error) {
	var resp Resp
	if c == nil {
		return resp, errors.New("no completion client configured")
	}

	raw, err := c.Complete(ctx, q.Build(req))
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
		return resp, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if q.Check != nil {
		if err := q.Check(&resp); err != nil {
			return resp, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return resp, nil
}

// stripFences removes a surrounding markdown code block, which some models add
// even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
