package playground

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// DefaultSessionCookie names the cookie holding the session flag pair.
const DefaultSessionCookie = "playground_session"

// Session is the flag pair read by the page shell to decide whether the
// visitor is logged in.
type Session struct {
	Username string    `json:"username"`
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

// SessionOptions configures a SessionManager.
type SessionOptions struct {
	HashKey     []byte
	BlockKey    []byte
	CookieName  string
	MaxAge      time.Duration
	Credentials map[string]string
	Telemetry   Telemetry
	Now         func() time.Time
}

// SessionManager performs the demo credential check and encodes sessions into
// signed cookies. It holds no server side state.
type SessionManager struct {
	codec       *securecookie.SecureCookie
	name        string
	maxAge      time.Duration
	credentials map[string]string
	telemetry   Telemetry
	now         func() time.Time
}

// NewSessionManager builds a manager. Missing keys are generated, which means
// sessions do not survive a restart.
func NewSessionManager(opts SessionOptions) *SessionManager {
	if len(opts.HashKey) == 0 {
		opts.HashKey = securecookie.GenerateRandomKey(64)
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultSessionCookie
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	codec := securecookie.New(opts.HashKey, opts.BlockKey)
	codec.MaxAge(int(opts.MaxAge / time.Second))
	return &SessionManager{
		codec:       codec,
		name:        opts.CookieName,
		maxAge:      opts.MaxAge,
		credentials: opts.Credentials,
		telemetry:   normalizeTelemetry(opts.Telemetry),
		now:         opts.Now,
	}
}

// CookieName returns the session cookie name.
func (m *SessionManager) CookieName() string {
	return m.name
}

// Login checks the credentials and returns a fresh session with its encoded
// cookie value.
func (m *SessionManager) Login(ctx context.Context, username, password string) (Session, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, "", goerrors.New("username and password are required", goerrors.CategoryBadInput)
	}
	expected, ok := m.credentials[username]
	if !ok || subtle.ConstantTimeCompare([]byte(expected), []byte(password)) != 1 {
		m.telemetry.Record(ctx, "playground.session.denied", map[string]any{"username": username})
		return Session{}, "", goerrors.New("invalid credentials", goerrors.CategoryAuth)
	}
	session := Session{Username: username, Token: uuid.NewString(), IssuedAt: m.now()}
	value, err := m.Encode(session)
	if err != nil {
		return Session{}, "", err
	}
	m.telemetry.Record(ctx, "playground.session.login", map[string]any{"username": username})
	return session, value, nil
}

// Encode signs the session into a cookie value.
func (m *SessionManager) Encode(session Session) (string, error) {
	value, err := m.codec.Encode(m.name, session)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "encode session cookie")
	}
	return value, nil
}

// Decode verifies a cookie value and returns its session.
func (m *SessionManager) Decode(value string) (Session, error) {
	var session Session
	if value == "" {
		return session, goerrors.New("no session", goerrors.CategoryAuth)
	}
	if err := m.codec.Decode(m.name, value, &session); err != nil {
		return Session{}, goerrors.Wrap(err, goerrors.CategoryAuth, "invalid session cookie")
	}
	return session, nil
}

// FromCookieHeader finds and decodes the session cookie in a raw Cookie header.
func (m *SessionManager) FromCookieHeader(header string) (Session, error) {
	cookies, err := http.ParseCookie(header)
	if err != nil {
		return Session{}, goerrors.New("no session", goerrors.CategoryAuth)
	}
	for _, c := range cookies {
		if c.Name == m.name {
			return m.Decode(c.Value)
		}
	}
	return Session{}, goerrors.New("no session", goerrors.CategoryAuth)
}

// SetCookieHeader renders the Set-Cookie header storing value. An empty value
// clears the cookie.
func (m *SessionManager) SetCookieHeader(value string) string {
	cookie := &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.maxAge / time.Second),
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie.String()
}

// Logout records the logout and returns the header clearing the cookie.
func (m *SessionManager) Logout(ctx context.Context, session Session) string {
	m.telemetry.Record(ctx, "playground.session.logout", map[string]any{"username": session.Username})
	return m.SetCookieHeader("")
}

func (s Session) String() string {
	return fmt.Sprintf("%s (%s)", s.Username, s.Token)
}
