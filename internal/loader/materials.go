package loader

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"Tekka/internal/logger"
	"Tekka/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// MTLMaterial is one newmtl block of a material library.
type MTLMaterial struct {
	Name        string
	Material    renderer.Material
	TexturePath string
}

// LoadMaterials loads material properties from a .mtl file. A missing or
// unreadable file yields no materials; the model then keeps the default.
func LoadMaterials(filename string) map[string]*MTLMaterial {
	materials := make(map[string]*MTLMaterial)

	file, err := os.Open(filename)
	if err != nil {
		logger.Log.Warn("Error opening material file", zap.Error(err))
		return materials
	}
	defer file.Close()

	var current *MTLMaterial
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] != "newmtl" && current == nil {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				logger.Log.Warn("Malformed material line", zap.String("line", line))
				continue
			}
			current = &MTLMaterial{Name: fields[1], Material: renderer.DefaultMaterial()}
			materials[fields[1]] = current
		case "Ka":
			if len(fields) == 4 {
				current.Material.Ambient = parseColor(fields[1:])
			}
		case "Kd":
			if len(fields) == 4 {
				current.Material.Diffuse = parseColor(fields[1:])
			}
		case "Ks":
			if len(fields) == 4 {
				current.Material.Specular = parseColor(fields[1:])
			}
		case "Ns":
			if len(fields) == 2 {
				current.Material.Shininess = parseFloat(fields[1])
			}
		case "map_Kd":
			if len(fields) >= 2 {
				// Options may precede the path, which is the last field
				texturePath := fields[len(fields)-1]
				if !filepath.IsAbs(texturePath) {
					texturePath = filepath.Join(filepath.Dir(filename), texturePath)
				}
				current.TexturePath = texturePath
				logger.Log.Debug("Stored texture path for material",
					zap.String("material", current.Name),
					zap.String("path", texturePath))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Log.Warn("Error reading material file", zap.String("path", filename), zap.Error(err))
	}
	return materials
}

// parseColor parses RGB color components; unparsable components are 0.
func parseColor(fields []string) mgl32.Vec3 {
	var color mgl32.Vec3
	for i, field := range fields[:3] {
		color[i] = parseFloat(field)
	}
	return color
}

func parseFloat(s string) float32 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		logger.Log.Warn("Error parsing material value", zap.String("value", s), zap.Error(err))
		return 0
	}
	return float32(f)
}
