package renderer

import "Tekka/internal/gpu"

// UniformCache caches uniform locations to avoid repeated location lookups.
// Misses are cached too, as -1.
type UniformCache struct {
	device    gpu.Device
	locations map[string]int32
	program   uint32
}

// NewUniformCache creates a new uniform cache for a shader program
func NewUniformCache(device gpu.Device, program uint32) *UniformCache {
	return &UniformCache{
		device:    device,
		locations: make(map[string]int32),
		program:   program,
	}
}

// GetLocation returns the cached uniform location or fetches and caches it.
// ok is false when the program has no active uniform by that name.
func (uc *UniformCache) GetLocation(name string) (loc int32, ok bool) {
	loc, exists := uc.locations[name]
	if !exists {
		loc = uc.device.UniformLocation(uc.program, name)
		uc.locations[name] = loc
	}
	return loc, loc != -1
}

// Reset points the cache at a new program and drops every cached location.
func (uc *UniformCache) Reset(program uint32) {
	uc.program = program
	uc.Clear()
}

// Clear clears the cache (call when shader program changes)
func (uc *UniformCache) Clear() {
	uc.locations = make(map[string]int32)
}
