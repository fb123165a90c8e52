package assets

import (
	"fmt"
	"strings"
)

// Kind is the result type requested from a load.
type Kind string

const (
	KindPrefab    Kind = "prefab"
	KindTexture   Kind = "texture"
	KindSprite    Kind = "sprite"
	KindMaterial  Kind = "material"
	KindAudioClip Kind = "audioclip"
	KindFont      Kind = "font"
	KindText      Kind = "text"
	KindBinary    Kind = "binary"
)

var kindAliases = map[string]Kind{
	"gameobject": KindPrefab,
	"texture2d":  KindTexture,
	"audio":      KindAudioClip,
	"textasset":  KindText,
	"bytes":      KindBinary,
}

// ParseKind parses a kind name case-insensitively. Unknown names are accepted
// as custom kinds; only the empty string is rejected.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return "", fmt.Errorf("%w: empty kind", ErrUnsupportedKind)
	}
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	return Kind(name), nil
}

func (k Kind) String() string {
	return string(k)
}
