package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"Tekka/internal/gpu"
	"Tekka/internal/gpu/gputest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	img.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	img.Set(1, 1, color.NRGBA{255, 255, 255, 255})
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewTextureFromImage(t *testing.T) {
	dev := gputest.New()

	tex := NewTextureFromImage(dev, testImage())

	require.Contains(t, dev.Textures, tex.Handle())
	gt := dev.Textures[tex.Handle()]
	assert.Equal(t, int32(2), gt.Width)
	assert.Equal(t, int32(2), gt.Height)
	assert.Equal(t, []uint8{255, 0, 0, 255, 0, 255, 0, 255, 0, 0, 255, 255, 255, 255, 255, 255}, gt.Pixels)
	assert.Equal(t, map[gpu.TextureParam]gpu.TextureValue{
		gpu.TextureWrapS:     gpu.Repeat,
		gpu.TextureWrapT:     gpu.Repeat,
		gpu.TextureMinFilter: gpu.LinearMipmapLinear,
		gpu.TextureMagFilter: gpu.Linear,
	}, gt.Params)
	assert.True(t, gt.Mipmapped)
	assert.Zero(t, dev.BoundTexture, "texture should be unbound after upload")
	assert.Empty(t, dev.Errors)
}

func TestNewTextureFromSubImage(t *testing.T) {
	dev := gputest.New()
	big := image.NewRGBA(image.Rect(0, 0, 4, 4))
	sub := big.SubImage(image.Rect(1, 1, 3, 4))

	tex := NewTextureFromImage(dev, sub)

	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 3, tex.Height)
	assert.Len(t, dev.Textures[tex.Handle()].Pixels, 2*3*4)
}

func TestNewTextureFromBytes(t *testing.T) {
	dev := gputest.New()

	tex, err := NewTextureFromBytes(dev, encodePNG(t, testImage()))
	require.NoError(t, err)
	assert.Equal(t, 2, tex.Width)

	_, err = NewTextureFromBytes(dev, []byte("not an image"))
	assert.Error(t, err)
}

func TestLoadTextureFromFile(t *testing.T) {
	dev := gputest.New()
	path := filepath.Join(t.TempDir(), "tex.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, testImage()), 0o644))

	tex, err := LoadTextureFromFile(dev, path)
	require.NoError(t, err)
	assert.Equal(t, path, tex.Path)

	_, err = LoadTextureFromFile(dev, filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTextureBindUnit(t *testing.T) {
	dev := gputest.New()
	tex := DefaultTexture(dev)

	tex.Bind(0)
	assert.Equal(t, tex.Handle(), dev.BoundTexture)
	assert.Equal(t, uint32(0), dev.Textures[tex.Handle()].Unit)

	tex.Unbind()
	assert.Zero(t, dev.BoundTexture)
}

func TestDefaultTextureIsCheckerboard(t *testing.T) {
	dev := gputest.New()
	tex := DefaultTexture(dev)

	px := dev.Textures[tex.Handle()].Pixels
	first := px[0:4]
	nextCell := px[8*4 : 8*4+4]
	assert.NotEqual(t, first, nextCell)
	assert.Equal(t, uint8(255), first[3])
}

func TestTextureDeleteOnce(t *testing.T) {
	dev := gputest.New()
	tex := DefaultTexture(dev)

	tex.Delete()
	tex.Delete()

	assert.Zero(t, dev.Live())
	assert.Empty(t, dev.Errors)
}

func TestTextureManagerSharesByPath(t *testing.T) {
	dev := gputest.New()
	path := filepath.Join(t.TempDir(), "tex.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, testImage()), 0o644))
	tm := NewTextureManager(dev)

	a, err := tm.LoadTexture(path)
	require.NoError(t, err)
	b, err := tm.LoadTexture(path)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Len(t, dev.Textures, 1)
	assert.Equal(t, TextureStats{TotalTextures: 1, CacheHits: 1, CacheMisses: 1, ActiveTextures: 1}, tm.GetStats())

	a.Delete()
	assert.Len(t, dev.Textures, 1, "texture should survive while referenced")

	b.Delete()
	assert.Empty(t, dev.Textures)
	assert.Zero(t, tm.GetStats().ActiveTextures)
	assert.Empty(t, dev.Errors)
}

func TestTextureManagerDefault(t *testing.T) {
	dev := gputest.New()
	tm := NewTextureManager(dev)

	a := tm.Default()
	b := tm.Default()
	assert.Same(t, a, b)

	a.Delete()
	b.Delete()
	assert.Empty(t, dev.Textures)
}
