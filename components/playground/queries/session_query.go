package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	playground "github.com/goliatone/go-playground/components/playground"
)

// SessionInput carries the raw Cookie header of a request.
type SessionInput struct {
	CookieHeader string
}

type sessionDecoder interface {
	FromCookieHeader(header string) (playground.Session, error)
}

// SessionQuery resolves the session flag pair from a cookie header.
type SessionQuery struct {
	sessions sessionDecoder
}

// NewSessionQuery builds the query.
func NewSessionQuery(sessions sessionDecoder) *SessionQuery {
	return &SessionQuery{sessions: sessions}
}

var _ gocommand.Querier[SessionInput, playground.Session] = (*SessionQuery)(nil)

// Query decodes the session cookie.
func (q *SessionQuery) Query(ctx context.Context, input SessionInput) (playground.Session, error) {
	return q.sessions.FromCookieHeader(input.CookieHeader)
}
