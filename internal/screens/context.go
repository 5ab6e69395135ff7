package screens

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jask/petrus/internal/config"
	"github.com/jask/petrus/internal/credential"
	"github.com/jask/petrus/internal/identity"
	"github.com/jask/petrus/internal/templates"
	"github.com/jask/petrus/internal/terminal"
)

// IdentityFactory creates new DIDs.
type IdentityFactory interface {
	Create(ctx context.Context) (identity.Document, error)
}

// CredentialEngine issues and validates credentials and presentations.
type CredentialEngine interface {
	IssueJWT(ctx context.Context, req credential.IssueRequest) (string, error)
	IssueSD(ctx context.Context, req credential.IssueRequest, concealed []string) (credential.SDCredential, error)
	Validate(ctx context.Context, token string, issuer identity.Document) (*credential.Decoded, error)
	IssuePresentation(ctx context.Context, req credential.PresentationRequest) (string, error)
	ValidatePresentation(ctx context.Context, token string, opts credential.PresentationOptions) (*credential.PresentationResult, error)
}

// TemplateCatalog lists and loads credential subject templates.
type TemplateCatalog interface {
	List() ([]templates.Template, error)
	Load(path string) (map[string]any, error)
	Scratch(t templates.Template) (path string, cleanup func(), err error)
}

// EditorLauncher opens files in an external editor.
type EditorLauncher interface {
	Available() []string
	Edit(ctx context.Context, editor, path string) error
}

// Context is shared by every screen for the whole session. Screens hold no
// state of their own between dispatcher iterations.
type Context struct {
	Term        terminal.Terminal
	Store       Store
	Resolver    Resolver
	Identities  IdentityFactory
	Credentials CredentialEngine
	Templates   TemplateCatalog
	Editors     EditorLauncher
	UI          config.UIConfig
	Log         *slog.Logger
	NewNonce    func() string // nil means a random uuid
}

// ErrTerminal marks a failed read from the terminal. It ends the session
// instead of being shown to the user.
var ErrTerminal = errors.New("terminal input failed")

// inputTerm wraps read failures in ErrTerminal.
type inputTerm struct {
	terminal.Terminal
}

func (t inputTerm) ReadLine() (string, error) {
	line, err := t.Terminal.ReadLine()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTerminal, err)
	}
	return line, nil
}

func (t inputTerm) ReadKey() (string, error) {
	key, err := t.Terminal.ReadKey()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTerminal, err)
	}
	return key, nil
}

func (c *Context) term() terminal.Terminal { return inputTerm{c.Term} }

func (c *Context) log() *slog.Logger {
	if c.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Log
}

func (c *Context) nonce() string {
	if c.NewNonce != nil {
		return c.NewNonce()
	}
	return uuid.NewString()
}

func (c *Context) didPageSize() int {
	if c.UI.DIDPageSize > 0 {
		return c.UI.DIDPageSize
	}
	return 10
}

func (c *Context) vcPageSize() int {
	if c.UI.VCPageSize > 0 {
		return c.UI.VCPageSize
	}
	return 5
}
