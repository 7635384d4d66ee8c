package behaviour

import (
	"fmt"
	"sort"

	"Tekka/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Params configures a built-in behaviour. Each behaviour reads only the
// fields it needs and applies its own defaults to zero values.
type Params struct {
	Speed     float32
	Axis      mgl32.Vec3
	Center    mgl32.Vec3
	Radius    float32
	Amplitude float32
	Seed      int64
}

type ScriptConstructor func(target *renderer.Transform, params Params) Behaviour

var scriptRegistry = make(map[string]ScriptConstructor)

func init() {
	RegisterScript("spin", NewSpin)
	RegisterScript("orbit", NewOrbit)
	RegisterScript("wander", NewWander)
	RegisterScript("bounce", NewBounce)
}

func RegisterScript(name string, constructor ScriptConstructor) {
	scriptRegistry[name] = constructor
}

func GetAvailableScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CreateScript(name string, target *renderer.Transform, params Params) (Behaviour, error) {
	constructor, exists := scriptRegistry[name]
	if !exists {
		return nil, fmt.Errorf("unknown behaviour %q", name)
	}
	return constructor(target, params), nil
}
