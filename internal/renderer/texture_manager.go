package renderer

import (
	"Tekka/internal/gpu"
	"Tekka/internal/logger"

	"go.uber.org/zap"
)

const defaultTextureKey = "default"

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	ActiveTextures int
}

// TextureManager shares textures loaded from the same path. Each LoadTexture
// must be balanced by one Delete on the returned texture.
type TextureManager struct {
	device       gpu.Device
	textureCache map[string]*Texture // path -> texture
	refCount     map[*Texture]int
	stats        TextureStats
}

func NewTextureManager(device gpu.Device) *TextureManager {
	return &TextureManager{
		device:       device,
		textureCache: make(map[string]*Texture),
		refCount:     make(map[*Texture]int),
	}
}

// LoadTexture loads a texture from file or returns the cached one,
// incrementing its reference count.
func (tm *TextureManager) LoadTexture(filePath string) (*Texture, error) {
	if tex, exists := tm.textureCache[filePath]; exists {
		tm.refCount[tex]++
		tm.stats.CacheHits++

		logger.Log.Debug("Texture cache hit",
			zap.String("path", filePath),
			zap.Uint32("textureID", tex.handle),
			zap.Int("refCount", tm.refCount[tex]))
		return tex, nil
	}

	tm.stats.CacheMisses++
	tex, err := LoadTextureFromFile(tm.device, filePath)
	if err != nil {
		return nil, err
	}
	tex.manager = tm
	tm.textureCache[filePath] = tex
	tm.refCount[tex] = 1
	tm.stats.TotalTextures++
	return tex, nil
}

// Default returns the shared checkerboard texture, creating it on first use.
func (tm *TextureManager) Default() *Texture {
	if tex, exists := tm.textureCache[defaultTextureKey]; exists {
		tm.refCount[tex]++
		tm.stats.CacheHits++
		return tex
	}
	tm.stats.CacheMisses++
	tex := DefaultTexture(tm.device)
	tex.manager = tm
	tm.textureCache[defaultTextureKey] = tex
	tm.refCount[tex] = 1
	tm.stats.TotalTextures++
	return tex
}

// ReleaseTexture decrements the reference count and frees the texture when
// it reaches zero.
func (tm *TextureManager) ReleaseTexture(tex *Texture) {
	refCount, exists := tm.refCount[tex]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture",
			zap.Uint32("textureID", tex.handle))
		return
	}

	refCount--
	tm.refCount[tex] = refCount
	logger.Log.Debug("Texture reference released",
		zap.Uint32("textureID", tex.handle),
		zap.Int("refCount", refCount))

	if refCount <= 0 {
		logger.Log.Debug("Texture freed",
			zap.Uint32("textureID", tex.handle),
			zap.String("path", tex.Path))
		delete(tm.textureCache, tex.Path)
		delete(tm.refCount, tex)
		tex.free()
	}
}

// GetStats returns current texture manager statistics
func (tm *TextureManager) GetStats() TextureStats {
	stats := tm.stats
	stats.ActiveTextures = len(tm.refCount)
	return stats
}

// LogStats logs current texture statistics
func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	hitRate := 0.0
	if lookups := stats.CacheHits + stats.CacheMisses; lookups > 0 {
		hitRate = float64(stats.CacheHits) / float64(lookups)
	}
	logger.Log.Info("Texture Manager Stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("activeTextures", stats.ActiveTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses),
		zap.Float64("hitRate", hitRate))
}
