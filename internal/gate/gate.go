// Package gate implements a password overlay for selected paths.
//
// This is obscurity, not access control: the password lives in plain
// configuration and the unlock token is an unsigned expiry timestamp in the
// local store. Anyone who can read either can bypass the gate.
package gate

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/idilsaglam/smartlist/internal/model"
	"github.com/idilsaglam/smartlist/internal/store"
)

// DefaultSessionDuration is how long an unlock lasts.
const DefaultSessionDuration = 24 * time.Hour

// DefaultProtectedPaths and DefaultPassword are the configuration defaults.
// New applies neither; an empty ProtectedPaths protects nothing.
var DefaultProtectedPaths = []string{"/secret", "/members", "/dashboard"}

const DefaultPassword = "changeme123"

// ErrIncorrectPassword is returned by Submit on a mismatch.
var ErrIncorrectPassword = errors.New("incorrect password")

// State of a gate session.
type State int

const (
	Locked State = iota
	Unlocked
)

func (s State) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// Config enumerates the gate settings.
type Config struct {
	ProtectedPaths  []string
	Password        string
	SessionDuration time.Duration
}

// Gate evaluates paths against Config and keeps the shared token in kv.
type Gate struct {
	cfg Config
	kv  store.KV
	log *zap.Logger
	now func() time.Time
}

// Option configures a Gate.
type Option func(*Gate)

func WithLogger(l *zap.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// New returns a gate. A zero SessionDuration means DefaultSessionDuration.
func New(cfg Config, kv store.KV, opts ...Option) *Gate {
	if cfg.SessionDuration <= 0 {
		cfg.SessionDuration = DefaultSessionDuration
	}
	paths := make([]string, 0, len(cfg.ProtectedPaths))
	for _, p := range cfg.ProtectedPaths {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, normalize(p))
		}
	}
	cfg.ProtectedPaths = paths

	g := &Gate{cfg: cfg, kv: kv, log: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Config returns the effective configuration.
func (g *Gate) Config() Config { return g.cfg }

// IsProtected reports whether path equals a protected path or lies below one.
// Trailing slashes are ignored.
func (g *Gate) IsProtected(path string) bool {
	path = normalize(path)
	for _, p := range g.cfg.ProtectedPaths {
		if path == p || (p != "/" && strings.HasPrefix(path, p+"/")) {
			return true
		}
	}
	return false
}

func normalize(path string) string {
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	return path
}

// Token returns the stored token, if any parses.
func (g *Gate) Token() (model.Token, bool) {
	raw, ok, err := g.kv.Get(store.KeyGate)
	if err != nil {
		g.log.Warn("read gate token", zap.Error(err))
		return model.Token{}, false
	}
	if !ok {
		return model.Token{}, false
	}
	var tok model.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		g.log.Debug("unparseable gate token", zap.Error(err))
		return model.Token{}, false
	}
	return tok, true
}

// authenticated reports whether an unexpired token exists, purging an
// expired one.
func (g *Gate) authenticated() bool {
	tok, ok := g.Token()
	if !ok {
		return false
	}
	if tok.Valid(g.now().UnixMilli()) {
		return true
	}
	if err := g.kv.Remove(store.KeyGate); err != nil {
		g.log.Warn("purge expired gate token", zap.Error(err))
	}
	return false
}

// Open computes the initial state for a visit to path. Unprotected paths are
// unlocked without consulting the token.
func (g *Gate) Open(path string) *Session {
	s := &Session{g: g, path: path, state: Unlocked}
	if g.IsProtected(path) && !g.authenticated() {
		s.state = Locked
	}
	g.log.Debug("gate opened", zap.String("path", path), zap.Stringer("state", s.state))
	return s
}

// Lock removes the shared token so the next visit to a protected path
// prompts again.
func (g *Gate) Lock() error {
	return g.kv.Remove(store.KeyGate)
}

// Session is one page visit.
type Session struct {
	g     *Gate
	path  string
	state State
}

func (s *Session) State() State { return s.state }
func (s *Session) Path() string { return s.path }

// Submit unlocks the session when input equals the configured password and
// stores a token valid for the session duration. Submitting to an unlocked
// session does nothing.
func (s *Session) Submit(input string) error {
	if s.state == Unlocked {
		return nil
	}
	if input != s.g.cfg.Password {
		return ErrIncorrectPassword
	}
	s.state = Unlocked

	tok := model.Token{Exp: s.g.now().Add(s.g.cfg.SessionDuration).UnixMilli()}
	b, _ := json.Marshal(tok)
	if err := s.g.kv.Set(store.KeyGate, string(b)); err != nil {
		s.g.log.Warn("persist gate token", zap.Error(err))
	}
	return nil
}
