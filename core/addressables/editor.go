package addressables

import (
	"context"

	"addressable-resources/core/assets"
)

// EditorAssets serves authoring-mode loads: every call decodes the asset
// straight from its source. No operation is created and nothing is counted.
type EditorAssets struct {
	source   Source
	registry *assets.Registry
}

// NewEditorAssets creates an authoring view over source.
func NewEditorAssets(source Source, registry *assets.Registry) *EditorAssets {
	return &EditorAssets{source: source, registry: registry}
}

// EditorAsset decodes ref as kind.
func (e *EditorAssets) EditorAsset(ctx context.Context, ref assets.Reference, kind assets.Kind) (assets.Object, error) {
	if !ref.IsValid() {
		return nil, ErrInvalidReference
	}
	data, err := e.source.Fetch(ctx, ref.Address)
	if err != nil {
		return nil, err
	}
	return e.registry.Decode(kind, AssetName(ref.Address), data)
}
