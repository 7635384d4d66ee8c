package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"Tekka/internal/gpu"
	"Tekka/internal/logger"
	"Tekka/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type Options struct {
	// RecalculateNormals replaces the file's normals with smooth normals
	// averaged from the faces. Normals are always recalculated when any
	// face vertex lacks one.
	RecalculateNormals bool
	// KeepV disables the 1-v flip that converts OBJ texture coordinates to
	// the renderer's top-left image origin.
	KeepV bool
}

// OBJ is the geometry and material information read from one file.
type OBJ struct {
	Mesh renderer.MeshData
	// Material is the first material the file selects with usemtl, nil when
	// it selects none.
	Material *renderer.Material
	// TexturePath is the material's diffuse map, resolved against the MTL
	// file's directory. Empty when none is given.
	TexturePath string
}

type FaceVertex struct {
	VertexIdx   int32
	TexCoordIdx int32
	NormalIdx   int32
}

// LoadOBJ parses an OBJ file; relative mtllib paths resolve against its
// directory.
func LoadOBJ(filename string, opts Options) (*OBJ, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	obj, err := ParseOBJ(file, filepath.Dir(filename), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	logger.Log.Info("OBJ loaded",
		zap.String("path", filename),
		zap.Int("vertices", len(obj.Mesh.Vertices)),
		zap.Int("triangles", len(obj.Mesh.Indices)/3))
	return obj, nil
}

// ParseOBJ reads OBJ text. Polygons are triangulated as fans and identical
// vertices are shared through the index buffer.
func ParseOBJ(r io.Reader, dir string, opts Options) (*OBJ, error) {
	var (
		positions []mgl32.Vec3
		texCoords []mgl32.Vec2
		normals   []mgl32.Vec3
		faces     []FaceVertex
		materials map[string]*MTLMaterial
		selected  *MTLMaterial
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}
		switch parts[0] {
		case "v":
			v, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, v)
		case "vn":
			n, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "vt":
			uv, err := parseTextureCoordinate(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			texCoords = append(texCoords, uv)
		case "f":
			face, err := parseFace(parts[1:], len(positions), len(texCoords), len(normals))
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
			faces = append(faces, face...)
		case "mtllib":
			if len(parts) < 2 {
				continue
			}
			mtlPath := strings.Join(parts[1:], " ")
			if !filepath.IsAbs(mtlPath) {
				mtlPath = filepath.Join(dir, mtlPath)
			}
			materials = LoadMaterials(mtlPath)
		case "usemtl":
			if len(parts) < 2 || selected != nil {
				continue
			}
			if mat, ok := materials[parts[1]]; ok {
				selected = mat
			} else {
				logger.Log.Debug("Material not found", zap.String("material", parts[1]))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("no faces")
	}

	recalculate := opts.RecalculateNormals
	for _, fv := range faces {
		if fv.NormalIdx < 0 {
			recalculate = true
			break
		}
	}
	var smooth []mgl32.Vec3
	if recalculate {
		indices := make([]int32, len(faces))
		for i, fv := range faces {
			indices[i] = fv.VertexIdx
		}
		smooth = RecalculateNormals(positions, indices)
	}

	obj := &OBJ{}
	vertexMap := make(map[renderer.Vertex]uint32)
	for _, fv := range faces {
		v := renderer.Vertex{Position: positions[fv.VertexIdx]}
		if recalculate {
			v.Normal = smooth[fv.VertexIdx]
		} else {
			v.Normal = normals[fv.NormalIdx]
		}
		if fv.TexCoordIdx >= 0 {
			uv := texCoords[fv.TexCoordIdx]
			if !opts.KeepV {
				uv[1] = 1 - uv[1]
			}
			v.TexCoord = uv
		}

		idx, exists := vertexMap[v]
		if !exists {
			idx = uint32(len(obj.Mesh.Vertices))
			vertexMap[v] = idx
			obj.Mesh.Vertices = append(obj.Mesh.Vertices, v)
		}
		obj.Mesh.Indices = append(obj.Mesh.Indices, idx)
	}

	if selected != nil {
		mat := selected.Material
		obj.Material = &mat
		obj.TexturePath = selected.TexturePath
	}
	return obj, nil
}

// LoadModel imports an OBJ file as a textured model. The texture comes from
// texturePath when set, otherwise from the file's material, otherwise the
// manager's default texture is used.
func LoadModel(device gpu.Device, textures *renderer.TextureManager, name, objPath, texturePath string, shader *renderer.Shader, opts Options) (*renderer.Model, error) {
	obj, err := LoadOBJ(objPath, opts)
	if err != nil {
		return nil, err
	}

	if texturePath == "" {
		texturePath = obj.TexturePath
	}
	var tex *renderer.Texture
	if texturePath != "" {
		tex, err = textures.LoadTexture(texturePath)
		if err != nil {
			return nil, err
		}
	} else {
		tex = textures.Default()
	}

	model, err := renderer.NewModel(device, name, obj.Mesh, tex, shader)
	if err != nil {
		tex.Delete()
		return nil, err
	}
	model.SourcePath = objPath
	if obj.Material != nil {
		model.Material = *obj.Material
	}
	return model, nil
}

func parseFloats(parts []string, min int) ([]float32, error) {
	if len(parts) < min {
		return nil, fmt.Errorf("expected %d values, got %d", min, len(parts))
	}
	values := make([]float32, 0, len(parts))
	for _, part := range parts {
		val, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", part, err)
		}
		values = append(values, float32(val))
	}
	return values, nil
}

func parseVec3(parts []string) (mgl32.Vec3, error) {
	values, err := parseFloats(parts, 3)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{values[0], values[1], values[2]}, nil
}

// for 2D textures; a third w component is ignored
func parseTextureCoordinate(parts []string) (mgl32.Vec2, error) {
	values, err := parseFloats(parts, 1)
	if err != nil {
		return mgl32.Vec2{}, err
	}
	uv := mgl32.Vec2{values[0], 0}
	if len(values) > 1 {
		uv[1] = values[1]
	}
	return uv, nil
}

// resolveIndex converts a 1-based or negative (relative) OBJ index to a
// 0-based one. An empty field yields -1.
func resolveIndex(field string, count int) (int32, error) {
	if field == "" {
		return -1, nil
	}
	raw, err := strconv.ParseInt(field, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", field, err)
	}
	idx := int(raw) - 1
	if raw < 0 {
		idx = count + int(raw)
	}
	if raw == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %d out of range (%d defined)", raw, count)
	}
	return int32(idx), nil
}

func parseFace(parts []string, positions, texCoords, normals int) ([]FaceVertex, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("expected at least 3 vertices, got %d", len(parts))
	}

	face := make([]FaceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")
		fv := FaceVertex{TexCoordIdx: -1, NormalIdx: -1}

		var err error
		if fv.VertexIdx, err = resolveIndex(vals[0], positions); err != nil {
			return nil, err
		}
		if fv.VertexIdx < 0 {
			return nil, fmt.Errorf("missing vertex index in %q", part)
		}
		if len(vals) > 1 {
			if fv.TexCoordIdx, err = resolveIndex(vals[1], texCoords); err != nil {
				return nil, err
			}
		}
		if len(vals) > 2 {
			if fv.NormalIdx, err = resolveIndex(vals[2], normals); err != nil {
				return nil, err
			}
		}
		face = append(face, fv)
	}

	if len(face) == 3 {
		return face, nil
	}
	// Polygons: triangulate as fan from first vertex
	triangulated := make([]FaceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated, nil
}

// RecalculateNormals returns one smooth normal per position, the normalised
// sum of the normals of every triangle using it. Degenerate triangles and
// unused positions contribute nothing.
func RecalculateNormals(positions []mgl32.Vec3, indices []int32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= len(positions) || int(i1) >= len(positions) || int(i2) >= len(positions) {
			logger.Log.Warn("Index out of bounds while recalculating normals",
				zap.Int32("idx0", i0), zap.Int32("idx1", i1), zap.Int32("idx2", i2))
			continue
		}
		v0, v1, v2 := positions[i0], positions[i1], positions[i2]
		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		if normal.Len() == 0 {
			continue
		}
		normal = normal.Normalize()
		normals[i0] = normals[i0].Add(normal)
		normals[i1] = normals[i1].Add(normal)
		normals[i2] = normals[i2].Add(normal)
	}

	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		}
	}
	return normals
}
