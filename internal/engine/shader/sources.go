package shader

import _ "embed"

// SceneVertexShader transforms lit mesh geometry.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader shades meshes with one point light.
//
//go:embed scene.frag
var SceneFragmentShader string

// TonemapVertexShader emits a fullscreen triangle from gl_VertexID.
//
//go:embed tonemap.vert
var TonemapVertexShader string

// TonemapFragmentShader maps the HDR scene color to display range.
//
//go:embed tonemap.frag
var TonemapFragmentShader string

// TextVertexShader positions console glyph quads.
//
//go:embed text.vert
var TextVertexShader string

// TextFragmentShader samples the glyph atlas.
//
//go:embed text.frag
var TextFragmentShader string
