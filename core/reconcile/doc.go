// Package reconcile compares several copies of the resource key table and
// reports where they drift apart.
//
// A key table can live in a manifest file, in the database and, implicitly,
// in the content itself (a discovery scan of storage or the content root).
// Each copy is exposed as a Source that loads an Index of key to address.
//
// # Engine
//
// ReconcileAll loads every source concurrently, builds the union of their
// keys and returns one Result per key with the address seen in each source,
// the sources missing the key and any address disagreements.
//
// # Cache
//
// Indices are cached per Spec with a TTL. Concurrent callers share one build
// through singleflight, so repeated ReconcileOne calls stay cheap.
//
// # Plans
//
// ReconcileWithPlan additionally derives the actions that make a target
// source match an authority source:
//
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec, reconcile.Options{
//		Authority: "manifest",
//		Target:    "database",
//	})
//
// ApplyPlan only mutates when the options are confirmed and not a dry run,
// and only when the target implements Mutator.
package reconcile
