package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestParsePropertyID(t *testing.T) {
	for id := PropPosition; id <= PropLightColor; id++ {
		got, ok := ParsePropertyID(id.String())
		assert.True(t, ok)
		assert.Equal(t, id, got)
	}
	_, ok := ParsePropertyID("colour")
	assert.False(t, ok)
	assert.Equal(t, "unknown", PropertyID(42).String())
}

func TestTypedSetters(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()
	cam := r.MainCamera()
	light := r.Lights()[0]

	assert.True(t, r.SetFloatProperty(cam.Name, PropFOV, 75))
	assert.Equal(t, float32(75), cam.Camera.FOV)
	assert.False(t, r.SetFloatProperty(light.Name, PropFOV, 75))
	assert.False(t, r.SetFloatProperty("missing", PropFOV, 75))

	assert.True(t, r.SetVec3Property(light.Name, PropLightColor, mgl32.Vec3{1, 0, 0}))
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, light.Light.Color)
	assert.False(t, r.SetVec3Property(cam.Name, PropLightColor, mgl32.Vec3{1, 0, 0}))

	assert.True(t, r.SetVec3Property(cam.Name, PropRotation, mgl32.Vec3{-1, 0, 0}))
	assert.InDelta(t, 2*3.14159265-1, cam.Transform.Pitch(), 1e-5)
}

func TestSetPropertyByName(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()
	cam := r.MainCamera()

	tests := []struct {
		key   string
		value any
		ok    bool
	}{
		{"position", mgl32.Vec3{1, 2, 3}, true},
		{"scale", [3]float32{2, 2, 2}, true},
		{"rotation", []float64{0, 1, 0}, true},
		{"position", []float32{1, 2}, false},
		{"fov", 90.0, true},
		{"near", float32(0.5), true},
		{"far", 500, true},
		{"far", "500", false},
		{"color", mgl32.Vec3{1, 1, 1}, false},
		{"bogus", 1, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, cam.SetPropertyByName(tt.key, tt.value), "%s=%v", tt.key, tt.value)
	}

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cam.Position())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, cam.Transform.Scale())
	assert.Equal(t, CameraData{FOV: 90, Near: 0.5, Far: 500}, *cam.Camera)
}

func TestProperties(t *testing.T) {
	r, _, _ := newTestRegistry()
	r.NewScene()

	camProps := r.Properties(r.MainCamera().Name)
	assert.Len(t, camProps, 6)
	assert.Equal(t, PropFOV, camProps[3].ID)
	assert.Equal(t, DefaultCamera.FOV, camProps[3].Float)

	lightProps := r.Properties("light")
	assert.Len(t, lightProps, 4)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, lightProps[3].Vec3)

	assert.Nil(t, r.Properties("missing"))
}
