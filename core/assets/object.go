package assets

import (
	"image"

	"golang.org/x/image/font/opentype"
)

// Object is a materialized asset. Implementations must be pointer types and
// Kind must not dereference its receiver, so KindOf can call it on a nil value.
type Object interface {
	Kind() Kind
	Name() string
}

// Unloader is implemented by objects that hold payloads worth dropping
// when their load handle is released.
type Unloader interface {
	Unload()
}

// KindOf returns the kind produced for the Go result type T.
func KindOf[T Object]() Kind {
	var zero T
	return zero.Kind()
}

// Texture is a decoded image.
type Texture struct {
	AssetName string
	Format    string
	Image     image.Image
}

func (*Texture) Kind() Kind     { return KindTexture }
func (t *Texture) Name() string { return t.AssetName }
func (t *Texture) Unload()      { t.Image = nil }

// Width returns the texture width in pixels, or 0 once unloaded.
func (t *Texture) Width() int {
	if t.Image == nil {
		return 0
	}
	return t.Image.Bounds().Dx()
}

// Height returns the texture height in pixels, or 0 once unloaded.
func (t *Texture) Height() int {
	if t.Image == nil {
		return 0
	}
	return t.Image.Bounds().Dy()
}

// Sprite is a rectangular region of a texture with a pivot in normalized coordinates.
type Sprite struct {
	AssetName string
	Texture   *Texture
	Rect      image.Rectangle
	PivotX    float64
	PivotY    float64
}

func (*Sprite) Kind() Kind     { return KindSprite }
func (s *Sprite) Name() string { return s.AssetName }
func (s *Sprite) Unload() {
	if s.Texture != nil {
		s.Texture.Unload()
	}
}

// Material describes how a surface is shaded.
type Material struct {
	AssetName  string         `toml:"name"`
	Shader     string         `toml:"shader"`
	Properties map[string]any `toml:"properties"`
}

func (*Material) Kind() Kind     { return KindMaterial }
func (m *Material) Name() string { return m.AssetName }

// AudioClip is an encoded audio payload; decoding to PCM is left to the consumer.
type AudioClip struct {
	AssetName string
	Format    string
	Data      []byte
}

func (*AudioClip) Kind() Kind     { return KindAudioClip }
func (a *AudioClip) Name() string { return a.AssetName }
func (a *AudioClip) Unload()      { a.Data = nil }

// Font is a parsed OpenType or TrueType font.
type Font struct {
	AssetName string
	Family    string
	Glyphs    int
	Face      *opentype.Font
}

func (*Font) Kind() Kind     { return KindFont }
func (f *Font) Name() string { return f.AssetName }
func (f *Font) Unload()      { f.Face = nil }

// PrefabNode is one node of a prefab hierarchy.
type PrefabNode struct {
	Name       string           `yaml:"name"`
	Active     *bool            `yaml:"active,omitempty"`
	Components []map[string]any `yaml:"components,omitempty"`
	Children   []PrefabNode     `yaml:"children,omitempty"`
}

// Prefab is an instantiable object hierarchy.
type Prefab struct {
	AssetName string
	Root      PrefabNode
}

func (*Prefab) Kind() Kind     { return KindPrefab }
func (p *Prefab) Name() string { return p.AssetName }

// TextAsset is a UTF-8 text document.
type TextAsset struct {
	AssetName string
	Text      string
}

func (*TextAsset) Kind() Kind     { return KindText }
func (t *TextAsset) Name() string { return t.AssetName }

// Blob is an undecoded payload.
type Blob struct {
	AssetName string
	Data      []byte
}

func (*Blob) Kind() Kind     { return KindBinary }
func (b *Blob) Name() string { return b.AssetName }
func (b *Blob) Unload()      { b.Data = nil }
