package scene

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenecore/internal/engine/camera"
	"github.com/Faultbox/scenecore/internal/engine/material"
	"github.com/Faultbox/scenecore/internal/engine/mesh"
	"github.com/Faultbox/scenecore/internal/engine/transform"
)

// Kind is the closed set of scene object variants.
type Kind int

const (
	KindCamera Kind = iota
	KindLight
	KindStaticMesh
)

func (k Kind) String() string {
	switch k {
	case KindCamera:
		return "camera"
	case KindLight:
		return "light"
	case KindStaticMesh:
		return "static_mesh"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// CameraData is the camera payload.
type CameraData = camera.Lens

// DefaultCamera is the lens used when none is configured.
var DefaultCamera = camera.DefaultLens

// LightData is a point light.
type LightData struct {
	Color mgl32.Vec3
}

// GeometryInstance pairs a geometry with the material instance it is drawn
// with. Either may be nil, in which case the instance is not drawn.
type GeometryInstance struct {
	Geometry *mesh.Geometry
	Material *material.Instance
}

// Complete reports whether the instance can be drawn.
func (gi GeometryInstance) Complete() bool {
	return gi.Geometry != nil && gi.Material != nil
}

// MeshData is a static mesh built from a named geometry resource.
type MeshData struct {
	Resource  string
	Instances []GeometryInstance
}

// Object is one entry in the scene. Exactly one payload pointer is set,
// matching Kind.
type Object struct {
	Kind      Kind
	Name      string
	Transform *transform.Transform
	Selected  bool

	Camera *CameraData
	Light  *LightData
	Mesh   *MeshData
}

func newObject(kind Kind, name string, pos mgl32.Vec3) *Object {
	return &Object{
		Kind:      kind,
		Name:      name,
		Transform: transform.New(pos),
	}
}

// Update re-derives the object's matrices. Cameras also rebuild the
// inverse, which is their view matrix.
func (o *Object) Update() bool {
	switch o.Kind {
	case KindCamera:
		return o.Transform.Update(true, false)
	default:
		return o.Transform.Update(false, false)
	}
}

// Position is a shorthand for the transform position.
func (o *Object) Position() mgl32.Vec3 { return o.Transform.Position() }

// View is the camera view matrix. Only meaningful for cameras.
func (o *Object) View() mgl32.Mat4 { return o.Transform.Inverse() }

// Radius is the bounding sphere radius in world space, scaled by the
// largest scale component. Non-mesh objects report a small fixed radius.
func (o *Object) Radius() float32 {
	if o.Kind != KindStaticMesh || o.Mesh == nil {
		return 0.5
	}
	var r float32
	for _, gi := range o.Mesh.Instances {
		if gi.Geometry != nil && gi.Geometry.Radius() > r {
			r = gi.Geometry.Radius()
		}
	}
	s := o.Transform.Scale()
	m := s[0]
	if s[1] > m {
		m = s[1]
	}
	if s[2] > m {
		m = s[2]
	}
	return r * m
}

// Info formats the object for the debug console.
func (o *Object) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", o.Name, o.Kind)
	switch o.Kind {
	case KindCamera:
		fmt.Fprintf(&b, "\tFOV : %.1f Near : %.2f Far : %.1f\n", o.Camera.FOV, o.Camera.Near, o.Camera.Far)
	case KindLight:
		c := o.Light.Color
		fmt.Fprintf(&b, "\tColor : %.2f %.2f %.2f\n", c[0], c[1], c[2])
	case KindStaticMesh:
		fmt.Fprintf(&b, "\tMesh : %s (%d instances)\n", o.Mesh.Resource, len(o.Mesh.Instances))
	}
	b.WriteString(o.Transform.Info())
	return b.String()
}

// ObjectInfo is the summary sent to the host's object list.
type ObjectInfo struct {
	Name     string
	Kind     Kind
	Selected bool
}
