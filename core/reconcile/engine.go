package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// ReconcileAll compares every source of spec and returns one result per key, sorted by key.
func ReconcileAll(ctx context.Context, spec *Spec) ([]Result, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	return resultsFromCache(cache, spec), nil
}

// ReconcileOne returns the result for a single normalized key.
// A key no source has is reported as missing everywhere.
func ReconcileOne(ctx context.Context, spec *Spec, key string) (*Result, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	result := buildResult(key, cache, spec)
	return &result, nil
}

func resultsFromCache(cache *Cache, spec *Spec) []Result {
	union := buildUnion(cache)

	results := make([]Result, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, cache, spec))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})
	return results
}

func buildUnion(cache *Cache) map[string]struct{} {
	union := make(map[string]struct{})
	for _, index := range cache.Indices {
		for key := range index {
			union[key] = struct{}{}
		}
	}
	return union
}

func buildResult(key string, cache *Cache, spec *Spec) Result {
	result := Result{
		Key:       key,
		Addresses: make(map[string]string),
		Missing:   []string{},
		Mismatch:  []string{},
	}

	var refName, refAddr string
	for _, src := range spec.Sources {
		name := src.Name()
		addr, ok := cache.Indices[name][key]
		if !ok {
			result.Missing = append(result.Missing, name)
			continue
		}
		result.Addresses[name] = addr

		if refName == "" {
			refName, refAddr = name, addr
			continue
		}
		if addr != refAddr {
			result.Mismatch = append(result.Mismatch,
				fmt.Sprintf("address: %s=%s %s=%s", refName, refAddr, name, addr))
		}
	}
	return result
}
