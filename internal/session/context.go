// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ouroboros Coding Inc.

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ouroboroscoding/define-cli/internal/config"
	"github.com/ouroboroscoding/define-cli/internal/define"
)

var (
	// ErrNotInitialized indicates no define.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in a define project (define.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidDefinition indicates a definition document couldn't be compiled.
	ErrInvalidDefinition = errors.New("invalid definition")
)

// ConfigFileName is the name of the define configuration file.
const ConfigFileName = "define.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration and the compiled
// entity definitions.
type Context struct {
	// Config is the resolved project configuration.
	Config *config.Config

	// Entities are the compiled definitions, keyed by entity name.
	Entities map[string]*define.Entity

	// Log writes progress diagnostics; silenced unless --verbose.
	Log zerolog.Logger
}

// Entity returns the named entity or an error listing what exists.
func (c *Context) Entity(name string) (*define.Entity, error) {
	if e, ok := c.Entities[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("entity %q not found (have: %v)", name, c.EntityNames())
}

// EntityNames returns all loaded entity names, sorted.
func (c *Context) EntityNames() []string {
	names := make([]string, 0, len(c.Entities))
	for name := range c.Entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load loads the project context from the current working directory
// and returns a new context.Context with it stored.
func Load(ctx context.Context, log zerolog.Logger) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	defDir := cfg.Path
	if !filepath.IsAbs(defDir) {
		defDir = filepath.Join(cwd, defDir)
	}

	loader := define.NewLoader(os.DirFS(defDir))
	entities, err := loader.LoadAll(".")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	log.Debug().Str("path", defDir).Int("entities", len(entities)).Msg("definitions loaded")

	sessionCtx := &Context{
		Config:   cfg,
		Entities: entities,
		Log:      log,
	}

	return context.WithValue(ctx, contextKey{}, sessionCtx), nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sessionCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sessionCtx
	}
	return nil
}

// FromCommand extracts the session Context from a cobra.Command's context.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a
// cobra.Command's context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("project context not loaded")
	}
	return ctx, nil
}

// PreRunLoad loads the project context and stores it in the command's
// context. Intended as a PreRunE/PersistentPreRunE hook.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	ctx, err := Load(cmd.Context(), NewLogger(verbose))
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}

// NewLogger builds the CLI logger: console output on stderr, silenced
// entirely unless verbose is set.
func NewLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
