package scene

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	skyboxScale = 1000
	// Width/height ratio range of an equirectangular panorama (typically 2:1).
	equirectAspectMin = 1.8
	equirectAspectMax = 2.2
)

// skybox is the showroom backdrop: a cubemap or an equirectangular panorama on a large cube
// centred on the camera. GPU resources load on the first draw, after the GL context exists.
type skybox struct {
	path     string
	equirect bool
	pending  bool
	loaded   bool

	tex       rl.Texture2D
	mesh      rl.Mesh
	mtl       rl.Material
	shader    rl.Shader
	camPosLoc int32
	texLoc    int32
}

// findSkybox returns the first existing backdrop in paths, or nil.
func findSkybox(paths []string) *skybox {
	for _, p := range paths {
		p = filepath.Clean(p)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		img := rl.LoadImage(p)
		if img == nil || img.Width <= 0 || img.Height <= 0 {
			continue
		}
		aspect := float32(img.Width) / float32(img.Height)
		rl.UnloadImage(img)
		return &skybox{
			path:     p,
			equirect: aspect >= equirectAspectMin && aspect <= equirectAspectMax,
			pending:  true,
		}
	}
	return nil
}

func (s *skybox) ensureLoaded() {
	if !s.pending {
		return
	}
	s.pending = false

	if !s.equirect {
		img := rl.LoadImage(s.path)
		if img == nil || img.Width <= 0 || img.Height <= 0 {
			return
		}
		s.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutAutoDetect)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(s.tex) {
			return
		}
		s.mesh = rl.GenMeshCube(1, 1, 1)
		s.mtl = rl.LoadMaterialDefault()
		rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
		s.loaded = true
		return
	}

	s.tex = rl.LoadTexture(s.path)
	if !rl.IsTextureValid(s.tex) {
		return
	}
	shader := rl.LoadShaderFromMemory(equirectVS, equirectFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(s.tex)
		return
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	s.camPosLoc = rl.GetShaderLocation(shader, "cameraPosition")
	s.texLoc = rl.GetShaderLocation(shader, "skybox")
	s.shader = shader
	s.loaded = true
}

func (s *skybox) draw(eye rl.Vector3) {
	if s == nil {
		return
	}
	s.ensureLoaded()
	if !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	transform := rl.MatrixMultiply(
		rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale),
		rl.MatrixTranslate(eye.X, eye.Y, eye.Z),
	)
	if s.equirect {
		if s.camPosLoc >= 0 {
			rl.SetShaderValueV(s.shader, s.camPosLoc, []float32{eye.X, eye.Y, eye.Z}, rl.ShaderUniformVec3, 1)
		}
		if s.texLoc >= 0 {
			rl.SetShaderValueTexture(s.shader, s.texLoc, s.tex)
		}
	}
	rl.DrawMesh(s.mesh, s.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

func (s *skybox) unload() {
	if s == nil || !s.loaded {
		return
	}
	rl.UnloadTexture(s.tex)
	if s.equirect {
		rl.UnloadShader(s.shader)
	}
	s.loaded = false
}

// Equirectangular skybox shader: samples a 2D panorama by view direction.
const (
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  finalColor = texture(skybox, vec2(u, v));
}
`
)
