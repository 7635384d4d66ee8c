package renderer

import "Tekka/internal/gpu"

// Attribute slots shared by every built-in vertex layout.
const (
	PositionAttribute = 0
	NormalAttribute   = 1
	TexCoordAttribute = 2
)

var LitVertexSource = `#version 330 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 FragPos;
out vec3 Normal;

void main() {
    FragPos = vec3(uModel * vec4(inPosition, 1.0));
    Normal = mat3(transpose(inverse(uModel))) * inNormal;
    gl_Position = uProjection * uView * vec4(FragPos, 1.0);
}
`

var TexturedVertexSource = `#version 330 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 FragPos;
out vec3 Normal;
out vec2 fragTexCoord;

void main() {
    FragPos = vec3(uModel * vec4(inPosition, 1.0));
    Normal = mat3(transpose(inverse(uModel))) * inNormal;
    fragTexCoord = inTexCoord;
    gl_Position = uProjection * uView * vec4(FragPos, 1.0);
}
`

// Every uniform below is read by main, otherwise the driver strips it and
// the renderer's uploads fail to find it.
const lightingPrelude = `#version 330 core

struct Material {
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
    float shininess;
};

struct Light {
    vec3 position;
    vec3 diffuse;
    vec3 specular;
};

in vec3 FragPos;
in vec3 Normal;

uniform Material material;
uniform Light light1;
uniform Light light2;
uniform Light light3;
uniform Light light4;
uniform vec3 viewPos;
uniform vec3 world_color;
uniform vec3 emission;

out vec4 FragColor;

// Unused light slots are uploaded as zero and contribute nothing.
vec3 shade(Light light, vec3 norm, vec3 viewDir) {
    if (light.diffuse + light.specular == vec3(0.0)) {
        return vec3(0.0);
    }
    vec3 lightDir = normalize(light.position - FragPos);
    float diff = max(dot(norm, lightDir), 0.0);
    vec3 diffuse = light.diffuse * (diff * material.diffuse);

    vec3 reflectDir = reflect(-lightDir, norm);
    float spec = pow(max(dot(viewDir, reflectDir), 0.0), material.shininess);
    vec3 specular = light.specular * (spec * material.specular);
    return diffuse + specular;
}

vec3 lighting() {
    vec3 norm = normalize(Normal);
    vec3 viewDir = normalize(viewPos - FragPos);

    vec3 result = world_color * material.ambient;
    result += shade(light1, norm, viewDir);
    result += shade(light2, norm, viewDir);
    result += shade(light3, norm, viewDir);
    result += shade(light4, norm, viewDir);
    return result + emission;
}
`

var LitFragmentSource = lightingPrelude + `
void main() {
    FragColor = vec4(lighting(), 1.0);
}
`

var TexturedFragmentSource = lightingPrelude + `
in vec2 fragTexCoord;

uniform sampler2D modelTexture;

void main() {
    FragColor = vec4(lighting(), 1.0) * texture(modelTexture, fragTexCoord);
}
`

// NewLitShader builds the shader for untextured position+normal geometry.
func NewLitShader(device gpu.Device) (*Shader, error) {
	return NewShader(device, LitVertexSource, LitFragmentSource)
}

// NewTexturedShader builds the shader for position+normal+uv geometry
// sampling texture unit 0.
func NewTexturedShader(device gpu.Device) (*Shader, error) {
	return NewShader(device, TexturedVertexSource, TexturedFragmentSource)
}
