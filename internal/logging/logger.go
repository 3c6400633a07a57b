// Package logging adapts zerolog to the femglue.Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/GoCodeAlone/femglue"
)

// Config captures options for building a logger.
type Config struct {
	Level   string    // "debug", "info", "warn", "error"; defaults to info
	Output  io.Writer // defaults to os.Stderr
	Console bool      // human readable output instead of JSON lines
	Service string    // attached to every entry when set
}

// New builds a zerolog logger from cfg.
func New(cfg Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	return ctx.Logger(), nil
}

// Adapter implements femglue.Logger on top of a zerolog logger. Arguments are
// alternating keys and values.
type Adapter struct {
	l zerolog.Logger
}

var _ femglue.Logger = (*Adapter)(nil)

// NewAdapter wraps l.
func NewAdapter(l zerolog.Logger) *Adapter {
	return &Adapter{l: l}
}

// WithComponent returns an adapter annotating every entry with component.
func (a *Adapter) WithComponent(component string) *Adapter {
	return &Adapter{l: a.l.With().Str("component", component).Logger()}
}

func (a *Adapter) Info(msg string, args ...any)  { a.l.Info().Fields(args).Msg(msg) }
func (a *Adapter) Error(msg string, args ...any) { a.l.Error().Fields(args).Msg(msg) }
func (a *Adapter) Warn(msg string, args ...any)  { a.l.Warn().Fields(args).Msg(msg) }
func (a *Adapter) Debug(msg string, args ...any) { a.l.Debug().Fields(args).Msg(msg) }

// Install builds a logger from cfg and makes it the process-wide femglue logger.
func Install(cfg Config) (*Adapter, error) {
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	a := NewAdapter(l)
	femglue.SetLogger(a)
	return a, nil
}
