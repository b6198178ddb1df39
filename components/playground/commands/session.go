package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	playground "github.com/goliatone/go-playground/components/playground"
)

type sessionManager interface {
	Login(ctx context.Context, username, password string) (playground.Session, string, error)
	SetCookieHeader(value string) string
	Logout(ctx context.Context, session playground.Session) string
}

// LoginInput checks credentials. On success Session and SetCookie receive the
// new session and the Set-Cookie header value.
type LoginInput struct {
	Username  string              `json:"username"`
	Password  string              `json:"password"`
	Session   *playground.Session `json:"-"`
	SetCookie *string             `json:"-"`
}

// LoginCommand wraps SessionManager.Login.
type LoginCommand struct {
	sessions sessionManager
}

// NewLoginCommand builds the command.
func NewLoginCommand(sessions sessionManager) *LoginCommand {
	return &LoginCommand{sessions: sessions}
}

var _ gocommand.Commander[LoginInput] = (*LoginCommand)(nil)

// Execute logs the visitor in.
func (c *LoginCommand) Execute(ctx context.Context, msg LoginInput) error {
	if c.sessions == nil {
		return errors.New("login command requires session manager")
	}
	session, value, err := c.sessions.Login(ctx, msg.Username, msg.Password)
	if err != nil {
		return err
	}
	if msg.Session != nil {
		*msg.Session = session
	}
	if msg.SetCookie != nil {
		*msg.SetCookie = c.sessions.SetCookieHeader(value)
	}
	return nil
}

// LogoutInput clears the session. SetCookie receives the clearing header.
type LogoutInput struct {
	Session   playground.Session `json:"-"`
	SetCookie *string            `json:"-"`
}

// LogoutCommand wraps SessionManager.Logout.
type LogoutCommand struct {
	sessions sessionManager
}

// NewLogoutCommand builds the command.
func NewLogoutCommand(sessions sessionManager) *LogoutCommand {
	return &LogoutCommand{sessions: sessions}
}

var _ gocommand.Commander[LogoutInput] = (*LogoutCommand)(nil)

// Execute logs the visitor out.
func (c *LogoutCommand) Execute(ctx context.Context, msg LogoutInput) error {
	if c.sessions == nil {
		return errors.New("logout command requires session manager")
	}
	header := c.sessions.Logout(ctx, msg.Session)
	if msg.SetCookie != nil {
		*msg.SetCookie = header
	}
	return nil
}
