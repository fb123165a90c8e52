package reconcile

import (
	"context"
	"fmt"
)

// Options controls which source is authoritative and whether a plan is executed.
type Options struct {
	// Authority is the source name whose table is considered correct.
	Authority string

	// Target is the source name that actions are planned against. Empty means report only.
	Target string

	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates the caller has confirmed the mutations.
	// If false, nothing executes regardless of DryRun.
	Confirmed bool
}

// Plan contains reconciliation results and the actions planned for the target.
type Plan struct {
	Results []Result    `json:"results"`
	Actions []Action    `json:"actions"`
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	// TotalKeys is the number of distinct keys across all sources.
	TotalKeys int `json:"total_keys"`

	// Complete counts keys present everywhere at the same address.
	Complete int `json:"complete"`

	// Missing counts, per source name, the keys that source lacks.
	Missing map[string]int `json:"missing"`

	// Mismatches counts keys whose addresses disagree.
	Mismatches int `json:"mismatches"`

	AddActions    int `json:"add_actions"`
	UpdateActions int `json:"update_actions"`
	RemoveActions int `json:"remove_actions"`
}

// ReconcileWithPlan reconciles spec and plans the actions that make
// opts.Target match opts.Authority. It does not execute them.
func ReconcileWithPlan(ctx context.Context, spec *Spec, opts Options) (*Plan, error) {
	if err := checkOptions(spec, opts); err != nil {
		return nil, err
	}

	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := resultsFromCache(cache, spec)
	summary, actions := buildPlan(results, spec, opts)

	return &Plan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes plan against the target source and returns the number of
// actions executed. Nothing runs unless opts is confirmed and not a dry run.
func ApplyPlan(ctx context.Context, spec *Spec, plan *Plan, opts Options) (int, error) {
	if !opts.Confirmed || opts.DryRun || opts.Target == "" || len(plan.Actions) == 0 {
		return 0, nil
	}

	src, ok := spec.source(opts.Target)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSource, opts.Target)
	}
	mutator, ok := src.(Mutator)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotMutable, opts.Target)
	}

	if err := mutator.Apply(ctx, plan.Actions); err != nil {
		return 0, fmt.Errorf("failed to apply plan to %s: %w", opts.Target, err)
	}
	InvalidateCache(spec)
	return len(plan.Actions), nil
}

// ReconcileAndApply plans and, when confirmed, applies in one call.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts Options) (*Plan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, spec, plan, opts)
	return plan, executed, err
}

func checkOptions(spec *Spec, opts Options) error {
	if opts.Target == "" {
		return nil
	}
	if _, ok := spec.source(opts.Authority); !ok {
		return fmt.Errorf("%w: authority %q", ErrUnknownSource, opts.Authority)
	}
	if _, ok := spec.source(opts.Target); !ok {
		return fmt.Errorf("%w: target %q", ErrUnknownSource, opts.Target)
	}
	if opts.Authority == opts.Target {
		return fmt.Errorf("reconcile: authority and target are both %q", opts.Target)
	}
	return nil
}

func buildPlan(results []Result, spec *Spec, opts Options) (PlanSummary, []Action) {
	summary := PlanSummary{
		TotalKeys: len(results),
		Missing:   make(map[string]int, len(spec.Sources)),
	}
	for _, src := range spec.Sources {
		summary.Missing[src.Name()] = 0
	}

	var actions []Action
	for _, result := range results {
		if result.Complete() {
			summary.Complete++
		}
		for _, name := range result.Missing {
			summary.Missing[name]++
		}
		if len(result.Mismatch) > 0 {
			summary.Mismatches++
		}

		if opts.Target == "" {
			continue
		}

		authAddr, inAuth := result.Addresses[opts.Authority]
		targetAddr, inTarget := result.Addresses[opts.Target]
		switch {
		case inAuth && !inTarget:
			actions = append(actions, Action{
				Type:    ActionAdd,
				Key:     result.Key,
				Address: authAddr,
				Reason:  fmt.Sprintf("missing in %s", opts.Target),
			})
			summary.AddActions++
		case inAuth && authAddr != targetAddr:
			actions = append(actions, Action{
				Type:    ActionUpdate,
				Key:     result.Key,
				Address: authAddr,
				Reason:  fmt.Sprintf("%s has %s", opts.Target, targetAddr),
			})
			summary.UpdateActions++
		case !inAuth && inTarget:
			actions = append(actions, Action{
				Type:   ActionRemove,
				Key:    result.Key,
				Reason: fmt.Sprintf("not in %s", opts.Authority),
			})
			summary.RemoveActions++
		}
	}

	return summary, actions
}
