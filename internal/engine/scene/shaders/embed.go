// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// UnlitVertexShader transforms positions by uMVP.
//
//go:embed unlit.vert
var UnlitVertexShader string

// UnlitFragmentShader fills with uColor, alpha included.
//
//go:embed unlit.frag
var UnlitFragmentShader string
