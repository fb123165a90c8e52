package assets_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"addressable-resources/core/assets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want assets.Kind
	}{
		{"Texture", assets.KindTexture},
		{"texture2d", assets.KindTexture},
		{"GameObject", assets.KindPrefab},
		{" sprite ", assets.KindSprite},
		{"AudioClip", assets.KindAudioClip},
		{"shadergraph", assets.Kind("shadergraph")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, err := assets.ParseKind(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, k)
		})
	}

	_, err := assets.ParseKind("  ")
	assert.ErrorIs(t, err, assets.ErrUnsupportedKind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, assets.KindTexture, assets.KindOf[*assets.Texture]())
	assert.Equal(t, assets.KindPrefab, assets.KindOf[*assets.Prefab]())
	assert.Equal(t, assets.KindBinary, assets.KindOf[*assets.Blob]())
}

func TestReference(t *testing.T) {
	ref := assets.NewReference(`Art\AddressableResources\Hero.png`)
	assert.Equal(t, "Art/AddressableResources/Hero.png", ref.String())
	assert.True(t, ref.IsValid())
	assert.False(t, assets.Reference{}.IsValid())
}

func TestReference_Handles(t *testing.T) {
	a := assets.NewReference("art/hero.png")
	b := assets.NewReference("art/hero.png")
	copied := a

	assert.True(t, a == copied)
	assert.False(t, a == b)

	held := map[assets.Reference]int{a: 1, b: 2}
	assert.Len(t, held, 2)
	assert.Equal(t, 1, held[copied])
}

func TestRegistry_Decode(t *testing.T) {
	reg := assets.NewRegistry()

	t.Run("Texture", func(t *testing.T) {
		obj, err := reg.Decode(assets.KindTexture, "hero", pngBytes(t, 4, 2))
		require.NoError(t, err)
		tex := obj.(*assets.Texture)
		assert.Equal(t, "png", tex.Format)
		assert.Equal(t, 4, tex.Width())
		assert.Equal(t, 2, tex.Height())

		tex.Unload()
		assert.Equal(t, 0, tex.Width())
	})

	t.Run("Sprite", func(t *testing.T) {
		obj, err := reg.Decode(assets.KindSprite, "icon", pngBytes(t, 8, 8))
		require.NoError(t, err)
		sp := obj.(*assets.Sprite)
		assert.Equal(t, image.Rect(0, 0, 8, 8), sp.Rect)
		assert.Equal(t, 0.5, sp.PivotX)
	})

	t.Run("Material", func(t *testing.T) {
		src := []byte("shader = \"Builtin.MaterialShader\"\n[properties]\ndiffuse_map = \"hero_diffuse\"\n")
		obj, err := reg.Decode(assets.KindMaterial, "hero_mat", src)
		require.NoError(t, err)
		m := obj.(*assets.Material)
		assert.Equal(t, "hero_mat", m.Name())
		assert.Equal(t, "Builtin.MaterialShader", m.Shader)
		assert.Equal(t, "hero_diffuse", m.Properties["diffuse_map"])

		_, err = reg.Decode(assets.KindMaterial, "broken", []byte("name = \"x\""))
		assert.ErrorIs(t, err, assets.ErrDecode)
	})

	t.Run("AudioClip", func(t *testing.T) {
		wav := append([]byte("RIFF\x00\x00\x00\x00WAVE"), make([]byte, 8)...)
		obj, err := reg.Decode(assets.KindAudioClip, "jump", wav)
		require.NoError(t, err)
		assert.Equal(t, "wav", obj.(*assets.AudioClip).Format)

		obj, err = reg.Decode(assets.KindAudioClip, "theme", []byte("OggS\x00\x02"))
		require.NoError(t, err)
		assert.Equal(t, "ogg", obj.(*assets.AudioClip).Format)

		_, err = reg.Decode(assets.KindAudioClip, "noise", []byte("nope"))
		assert.ErrorIs(t, err, assets.ErrDecode)
	})

	t.Run("Font", func(t *testing.T) {
		obj, err := reg.Decode(assets.KindFont, "regular", goregular.TTF)
		require.NoError(t, err)
		f := obj.(*assets.Font)
		assert.Equal(t, "Go", f.Family)
		assert.Greater(t, f.Glyphs, 0)
	})

	t.Run("Prefab", func(t *testing.T) {
		src := []byte("name: Hero\ncomponents:\n  - type: Transform\nchildren:\n  - name: Weapon\n")
		obj, err := reg.Decode(assets.KindPrefab, "hero", src)
		require.NoError(t, err)
		p := obj.(*assets.Prefab)
		assert.Equal(t, "Hero", p.Root.Name)
		require.Len(t, p.Root.Children, 1)
		assert.Equal(t, "Weapon", p.Root.Children[0].Name)
		assert.Equal(t, "Transform", p.Root.Components[0]["type"])
	})

	t.Run("Text", func(t *testing.T) {
		obj, err := reg.Decode(assets.KindText, "intro", []byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, "hello", obj.(*assets.TextAsset).Text)

		_, err = reg.Decode(assets.KindText, "bad", []byte{0xff, 0xfe, 0xfd})
		assert.ErrorIs(t, err, assets.ErrDecode)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := reg.Decode(assets.Kind("shadergraph"), "x", nil)
		assert.True(t, errors.Is(err, assets.ErrUnsupportedKind))
	})

	t.Run("Custom", func(t *testing.T) {
		custom := assets.NewRegistry()
		custom.Register("shadergraph", func(name string, data []byte) (assets.Object, error) {
			return &assets.Blob{AssetName: name, Data: data}, nil
		})
		assert.True(t, custom.Supports("shadergraph"))
		obj, err := custom.Decode("shadergraph", "lit", []byte("graph"))
		require.NoError(t, err)
		assert.Equal(t, "lit", obj.Name())
		assert.Contains(t, custom.Kinds(), assets.Kind("shadergraph"))
	})
}
