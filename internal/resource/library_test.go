package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenecore/internal/engine/material"
	"github.com/Faultbox/scenecore/internal/engine/mesh"
)

func TestNewLibraryBuiltins(t *testing.T) {
	l := NewLibrary()

	assert.Equal(t, []string{Cube, Quad, Sphere}, l.GeometryNames())
	for _, name := range l.GeometryNames() {
		g := l.Geometry(name)
		require.NotNil(t, g, name)
		assert.Equal(t, name, g.Name)
		assert.False(t, g.Uploaded(), "%s uploaded without a context", name)
		assert.Greater(t, g.Radius(), float32(0))
	}

	inst := l.MaterialInstance(DefaultMaterial)
	require.NotNil(t, inst)
	require.NotNil(t, inst.Material)
	assert.Nil(t, inst.Material.Program)
}

func TestPaletteSharesDefaultMaterial(t *testing.T) {
	l := NewLibrary()

	assert.Equal(t, []string{"blue", DefaultMaterial, "green", "red"}, l.MaterialNames())
	def := l.MaterialInstance(DefaultMaterial)
	for _, name := range []string{"red", "green", "blue"} {
		inst := l.MaterialInstance(name)
		require.NotNil(t, inst, name)
		assert.Same(t, def.Material, inst.Material)
		assert.NotEqual(t, def.BaseColor, inst.BaseColor)
	}
	assert.Nil(t, l.MaterialInstance(CheckerMaterial), "checker needs a GL context")
}

func TestLibraryMisses(t *testing.T) {
	l := NewLibrary()
	assert.Nil(t, l.Geometry("teapot"))
	assert.Nil(t, l.MaterialInstance("chrome"))
}

func TestLibraryGeometryIdentityDistinct(t *testing.T) {
	l := NewLibrary()
	assert.NotEqual(t, l.Geometry(Cube).ID(), l.Geometry(Sphere).ID())
	assert.NotEqual(t, l.Geometry(Sphere).ID(), l.Geometry(Quad).ID())
}

func TestRegisterGeometry(t *testing.T) {
	l := NewLibrary()

	g := mesh.New("plane", mesh.Quad())
	require.NoError(t, l.RegisterGeometry(g))
	assert.Same(t, g, l.Geometry("plane"))

	replacement := mesh.New(Cube, mesh.Cube())
	require.NoError(t, l.RegisterGeometry(replacement))
	assert.Same(t, replacement, l.Geometry(Cube))

	err := l.RegisterGeometry(mesh.New("", mesh.Cube()))
	assert.True(t, errors.Is(err, ErrInvalidName))
	assert.Error(t, l.RegisterGeometry(nil))
}

func TestRegisterMaterialInstance(t *testing.T) {
	l := NewLibrary()

	red := l.MaterialInstance(DefaultMaterial).Clone("red")
	red.BaseColor = [4]float32{1, 0, 0, 1}
	require.NoError(t, l.RegisterMaterialInstance(red))

	got := l.MaterialInstance("red")
	require.NotNil(t, got)
	assert.Same(t, l.MaterialInstance(DefaultMaterial).Material, got.Material)
	assert.NotEqual(t, l.MaterialInstance(DefaultMaterial).BaseColor, got.BaseColor)

	assert.ErrorIs(t, l.RegisterMaterialInstance(&material.Instance{}), ErrInvalidName)
}
