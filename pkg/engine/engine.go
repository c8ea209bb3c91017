// Package engine assembles the model backend, tool set, and agent loop from
// configuration, and hands out sessions.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"reagent/pkg/modeladapter"
	"reagent/pkg/react"
	"reagent/pkg/toolkit/defaults"
	"reagent/pkg/tools/toolbox"
)

// Engine holds the assembled application. Create one with New, then open
// sessions with NewSession.
type Engine struct {
	cfg   Config
	log   *zap.Logger
	model modeladapter.Completer
	tools *toolbox.ToolBox
}

// New validates cfg and assembles an Engine with the built-in tool set.
func New(cfg Config, log *zap.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}

	model, err := buildCompleter(cfg.Provider)
	if err != nil {
		return nil, err
	}

	box, err := defaults.New(defaults.Config{WorkDir: cfg.Tools.WorkDir})
	if err != nil {
		return nil, fmt.Errorf("engine: build tools: %w", err)
	}

	log.Info("engine ready",
		zap.String("provider", cfg.Provider.Kind),
		zap.String("model", cfg.Provider.Model),
		zap.Int("tools", box.Len()),
	)

	return &Engine{
		cfg:   cfg,
		log:   log,
		model: model,
		tools: box,
	}, nil
}

// Tools returns the engine's tool registry.
func (e *Engine) Tools() *toolbox.ToolBox { return e.tools }

// Model returns the configured model backend.
func (e *Engine) Model() modeladapter.Completer { return e.model }

// NewSession opens a fresh conversation with empty memory. Hooks may be nil.
func (e *Engine) NewSession(hooks react.Hooks) *Session {
	runner := react.NewRunner(e.model, e.tools, e.log)
	runner.Hooks = hooks
	if e.cfg.Agent.MaxSteps > 0 {
		runner.MaxSteps = e.cfg.Agent.MaxSteps
	}

	return newSession(runner)
}
