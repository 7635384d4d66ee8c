package gpu

import (
	"sort"

	"Tekka/internal/logger"

	"go.uber.org/zap"
)

// Kind identifies the native object namespace a handle belongs to.
type Kind int

const (
	KindShader Kind = iota
	KindProgram
	KindBuffer
	KindVertexArray
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	case KindBuffer:
		return "buffer"
	case KindVertexArray:
		return "vertex array"
	case KindTexture:
		return "texture"
	}
	return "unknown"
}

// TrackerStats provides debugging information about native objects.
type TrackerStats struct {
	Created  int
	Released int
	Rejected int // releases of handles that were not live
	Live     int
}

type trackedHandle struct {
	kind   Kind
	handle uint32
}

// Tracker is a Device wrapper that records every live native object. A
// release of a handle that is not live is logged and never reaches the
// driver, so each object is released at most once.
type Tracker struct {
	Device
	live  map[trackedHandle]struct{}
	stats TrackerStats
}

func NewTracker(dev Device) *Tracker {
	return &Tracker{
		Device: dev,
		live:   make(map[trackedHandle]struct{}),
	}
}

func (t *Tracker) created(kind Kind, handle uint32) uint32 {
	t.live[trackedHandle{kind, handle}] = struct{}{}
	t.stats.Created++
	logger.Log.Debug("GPU object created",
		zap.Stringer("kind", kind),
		zap.Uint32("handle", handle))
	return handle
}

func (t *Tracker) release(kind Kind, handle uint32) bool {
	key := trackedHandle{kind, handle}
	if _, ok := t.live[key]; !ok {
		t.stats.Rejected++
		logger.Log.Warn("Attempted to release unknown GPU object",
			zap.Stringer("kind", kind),
			zap.Uint32("handle", handle))
		return false
	}
	delete(t.live, key)
	t.stats.Released++
	return true
}

func (t *Tracker) CreateShader(stage ShaderStage) uint32 {
	return t.created(KindShader, t.Device.CreateShader(stage))
}

func (t *Tracker) DeleteShader(shader uint32) {
	if t.release(KindShader, shader) {
		t.Device.DeleteShader(shader)
	}
}

func (t *Tracker) CreateProgram() uint32 {
	return t.created(KindProgram, t.Device.CreateProgram())
}

func (t *Tracker) DeleteProgram(program uint32) {
	if t.release(KindProgram, program) {
		t.Device.DeleteProgram(program)
	}
}

func (t *Tracker) CreateBuffer() uint32 {
	return t.created(KindBuffer, t.Device.CreateBuffer())
}

func (t *Tracker) DeleteBuffer(buffer uint32) {
	if t.release(KindBuffer, buffer) {
		t.Device.DeleteBuffer(buffer)
	}
}

func (t *Tracker) CreateVertexArray() uint32 {
	return t.created(KindVertexArray, t.Device.CreateVertexArray())
}

func (t *Tracker) DeleteVertexArray(vao uint32) {
	if t.release(KindVertexArray, vao) {
		t.Device.DeleteVertexArray(vao)
	}
}

func (t *Tracker) CreateTexture() uint32 {
	return t.created(KindTexture, t.Device.CreateTexture())
}

func (t *Tracker) DeleteTexture(texture uint32) {
	if t.release(KindTexture, texture) {
		t.Device.DeleteTexture(texture)
	}
}

// Live returns the number of live objects of the given kind.
func (t *Tracker) Live(kind Kind) int {
	n := 0
	for key := range t.live {
		if key.kind == kind {
			n++
		}
	}
	return n
}

func (t *Tracker) Stats() TrackerStats {
	stats := t.stats
	stats.Live = len(t.live)
	return stats
}

// ReleaseAll deletes every object still live and returns how many there
// were. Call it once, right before the context is destroyed.
func (t *Tracker) ReleaseAll() int {
	leaked := make([]trackedHandle, 0, len(t.live))
	for key := range t.live {
		leaked = append(leaked, key)
	}
	sort.Slice(leaked, func(i, j int) bool {
		if leaked[i].kind != leaked[j].kind {
			return leaked[i].kind < leaked[j].kind
		}
		return leaked[i].handle < leaked[j].handle
	})

	for _, key := range leaked {
		logger.Log.Warn("Releasing leaked GPU object",
			zap.Stringer("kind", key.kind),
			zap.Uint32("handle", key.handle))
		switch key.kind {
		case KindShader:
			t.DeleteShader(key.handle)
		case KindProgram:
			t.DeleteProgram(key.handle)
		case KindBuffer:
			t.DeleteBuffer(key.handle)
		case KindVertexArray:
			t.DeleteVertexArray(key.handle)
		case KindTexture:
			t.DeleteTexture(key.handle)
		}
	}
	return len(leaked)
}

// LogStats logs current object statistics.
func (t *Tracker) LogStats() {
	stats := t.Stats()
	logger.Log.Info("GPU object stats",
		zap.Int("created", stats.Created),
		zap.Int("released", stats.Released),
		zap.Int("rejected", stats.Rejected),
		zap.Int("live", stats.Live))
}
