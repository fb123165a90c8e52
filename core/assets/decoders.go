package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gopkg.in/yaml.v3"
)

// DecodeTexture decodes any registered image format.
func DecodeTexture(name string, data []byte) (Object, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: texture %s: %v", ErrDecode, name, err)
	}
	return &Texture{AssetName: name, Format: format, Image: img}, nil
}

// DecodeSprite decodes an image as a single full-size sprite pivoted at its center.
func DecodeSprite(name string, data []byte) (Object, error) {
	obj, err := DecodeTexture(name, data)
	if err != nil {
		return nil, err
	}
	tex := obj.(*Texture)
	return &Sprite{
		AssetName: name,
		Texture:   tex,
		Rect:      tex.Image.Bounds(),
		PivotX:    0.5,
		PivotY:    0.5,
	}, nil
}

// DecodeMaterial decodes a TOML material definition.
//
//	name = "hero"
//	shader = "Builtin.MaterialShader"
//	[properties]
//	diffuse_colour = [1.0, 1.0, 1.0, 1.0]
func DecodeMaterial(name string, data []byte) (Object, error) {
	m := &Material{}
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: material %s: %v", ErrDecode, name, err)
	}
	if m.Shader == "" {
		return nil, fmt.Errorf("%w: material %s has no shader", ErrDecode, name)
	}
	if m.AssetName == "" {
		m.AssetName = name
	}
	if m.Properties == nil {
		m.Properties = map[string]any{}
	}
	return m, nil
}

// DecodeAudioClip sniffs the container format and keeps the payload as is.
func DecodeAudioClip(name string, data []byte) (Object, error) {
	format := sniffAudio(data)
	if format == "" {
		return nil, fmt.Errorf("%w: audio clip %s: unrecognized format", ErrDecode, name)
	}
	return &AudioClip{AssetName: name, Format: format, Data: data}, nil
}

func sniffAudio(data []byte) string {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return "wav"
	case len(data) >= 4 && string(data[0:4]) == "OggS":
		return "ogg"
	case len(data) >= 4 && string(data[0:4]) == "fLaC":
		return "flac"
	case len(data) >= 3 && string(data[0:3]) == "ID3":
		return "mp3"
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return "mp3"
	}
	return ""
}

// DecodeFont parses an OpenType or TrueType font.
func DecodeFont(name string, data []byte) (Object, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: font %s: %v", ErrDecode, name, err)
	}
	family, err := f.Name(&sfnt.Buffer{}, sfnt.NameIDFamily)
	if err != nil {
		family = name
	}
	return &Font{AssetName: name, Family: family, Glyphs: f.NumGlyphs(), Face: f}, nil
}

// DecodePrefab decodes a YAML node tree.
func DecodePrefab(name string, data []byte) (Object, error) {
	var root PrefabNode
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: prefab %s: %v", ErrDecode, name, err)
	}
	if root.Name == "" {
		root.Name = name
	}
	return &Prefab{AssetName: name, Root: root}, nil
}

// DecodeText keeps a UTF-8 payload as text.
func DecodeText(name string, data []byte) (Object, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: text %s is not valid UTF-8", ErrDecode, name)
	}
	return &TextAsset{AssetName: name, Text: string(data)}, nil
}

// DecodeBlob keeps the payload undecoded.
func DecodeBlob(name string, data []byte) (Object, error) {
	return &Blob{AssetName: name, Data: data}, nil
}
