package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"Tekka/internal/gpu"
	"Tekka/internal/logger"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture owns one 2D RGBA8 texture.
type Texture struct {
	device  gpu.Device
	handle  uint32
	Width   int
	Height  int
	Path    string
	manager *TextureManager
}

// LoadTextureFromFile decodes an image file and uploads it.
func LoadTextureFromFile(device gpu.Device, filePath string) (*Texture, error) {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer imgFile.Close()

	tex, err := decodeTexture(device, imgFile)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", filePath, err)
	}
	tex.Path = filePath
	logger.Log.Info("Texture loaded",
		zap.String("path", filePath),
		zap.Uint32("textureID", tex.handle),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height))
	return tex, nil
}

// NewTextureFromBytes decodes an encoded image held in memory.
func NewTextureFromBytes(device gpu.Device, data []byte) (*Texture, error) {
	tex, err := decodeTexture(device, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	return tex, nil
}

func decodeTexture(device gpu.Device, r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return NewTextureFromImage(device, img), nil
}

// NewTextureFromImage converts img to RGBA8 and uploads it with repeat
// wrapping and trilinear minification.
func NewTextureFromImage(device gpu.Device, img image.Image) *Texture {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != rgba.Rect.Dx()*4 || rgba.Rect.Min != (image.Point{}) {
		// Convert to a tightly packed *image.RGBA
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	tex := &Texture{
		device: device,
		handle: device.CreateTexture(),
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
	}
	device.BindTexture(tex.handle)
	device.TexImage2D(int32(tex.Width), int32(tex.Height), rgba.Pix)

	device.TexParameter(gpu.TextureWrapS, gpu.Repeat)
	device.TexParameter(gpu.TextureWrapT, gpu.Repeat)
	device.TexParameter(gpu.TextureMinFilter, gpu.LinearMipmapLinear)
	device.TexParameter(gpu.TextureMagFilter, gpu.Linear)
	device.GenerateMipmap()

	device.BindTexture(0)
	return tex
}

// DefaultTexture is a grey checkerboard used when a model has no texture.
func DefaultTexture(device gpu.Device) *Texture {
	const size, cell = 64, 8
	light := color.RGBA{200, 200, 200, 255}
	dark := color.RGBA{120, 120, 120, 255}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	tex := NewTextureFromImage(device, img)
	tex.Path = defaultTextureKey
	return tex
}

func (t *Texture) Handle() uint32 { return t.handle }

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	t.device.ActiveTexture(unit)
	t.device.BindTexture(t.handle)
}

func (t *Texture) Unbind() {
	t.device.BindTexture(0)
}

// Delete releases the texture. A texture handed out by a TextureManager is
// only freed once its last holder has deleted it.
func (t *Texture) Delete() {
	if t.handle == 0 {
		return
	}
	if t.manager != nil {
		t.manager.ReleaseTexture(t)
		return
	}
	t.free()
}

func (t *Texture) free() {
	t.device.DeleteTexture(t.handle)
	t.handle = 0
}
