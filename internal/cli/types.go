package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kenny-evitt/bmx-fogbugz/internal/auth"
	"github.com/kenny-evitt/bmx-fogbugz/internal/fogbugz"
)

type Dependencies struct {
	In        io.Reader
	Out       io.Writer
	Err       io.Writer
	Now       func() time.Time
	AuthStore *auth.Store
	NewClient func(creds fogbugz.Credentials, timeout time.Duration) fogbugz.API
}

type GlobalOptions struct {
	JSON     bool          `help:"output JSON"`
	Quiet    bool          `short:"q" help:"suppress non-essential output"`
	NoInput  bool          `name:"no-input" help:"disable interactive prompts"`
	Timeout  time.Duration `help:"API request timeout" default:"30s"`
	URL      string        `help:"FogBugz base URL (overrides env and stored auth)"`
	Email    string        `help:"FogBugz account email"`
	Password string        `help:"FogBugz account password"`
}

type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit %d", e.Code)
	}
	return e.Err.Error()
}

func exitError(code int, err error) error {
	if err == nil {
		return ExitError{Code: code, Err: errors.New("unknown error")}
	}
	return ExitError{Code: code, Err: err}
}
