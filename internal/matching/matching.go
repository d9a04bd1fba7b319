// Package matching provides the request-scoped orchestration for one
// candidate search: resolve the role snapshot, assemble the tool registry
// and agent loop, run it, and hand back the terminal result.
package matching

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/talent-matcher/internal/agent"
	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/progress"
	"github.com/jonathan/talent-matcher/internal/tools"
	"github.com/jonathan/talent-matcher/internal/types"
)

// RoleSource resolves role snapshots from the data store.
type RoleSource interface {
	RoleInformationByID(ctx context.Context, roleID int) (*types.RoleInformation, error)
}

// Options holds everything one search invocation needs. Conversation state
// and progress events live only for the duration of the run.
type Options struct {
	RoleID     int
	Roles      RoleSource
	Store      tools.Store
	Model      agent.Model
	Tier       llm.ModelTier
	Verbose    bool
	OnProgress func(progress.Event)
}

// Run executes one candidate search. With OnProgress set the search runs in
// streaming mode; without it the caller only sees the returned result.
func Run(ctx context.Context, opts Options) (*agent.Result, error) {
	if opts.Roles == nil || opts.Store == nil || opts.Model == nil {
		return nil, fmt.Errorf("matching requires a role source, a store and a model")
	}

	tier := opts.Tier
	if tier == "" {
		tier = llm.TierAdvanced
	}

	var emitter progress.Emitter = progress.NullEmitter{}
	if opts.OnProgress != nil {
		emitter = progress.EmitterFunc(opts.OnProgress)
	}

	role, err := opts.Roles.RoleInformationByID(ctx, opts.RoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load role %d: %w", opts.RoleID, err)
	}
	if role == nil {
		return nil, fmt.Errorf("role %d not found", opts.RoleID)
	}

	if opts.Verbose {
		observability.NewPrinter(os.Stdout).PrintRoleInformation(role)
	}

	registry := tools.NewRegistry(opts.Store, role)
	loop := agent.NewLoop(opts.Model, registry, tier, emitter)

	result, err := loop.Run(ctx, role)
	if err != nil {
		return nil, err
	}

	if opts.Verbose {
		observability.NewPrinter(os.Stdout).PrintMatchResult(result)
	}
	return result, nil
}
