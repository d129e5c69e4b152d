package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PropertyID names an editable object property.
type PropertyID int

const (
	PropPosition PropertyID = iota
	PropRotation
	PropScale
	PropFOV
	PropNear
	PropFar
	PropLightColor
)

var propertyNames = [...]string{
	PropPosition:   "position",
	PropRotation:   "rotation",
	PropScale:      "scale",
	PropFOV:        "fov",
	PropNear:       "near",
	PropFar:        "far",
	PropLightColor: "color",
}

func (p PropertyID) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return "unknown"
	}
	return propertyNames[p]
}

// IsVec3 reports whether the property holds a vector.
func (p PropertyID) IsVec3() bool {
	switch p {
	case PropPosition, PropRotation, PropScale, PropLightColor:
		return true
	}
	return false
}

// ParsePropertyID maps a property name to its id.
func ParsePropertyID(name string) (PropertyID, bool) {
	for i, n := range propertyNames {
		if n == name {
			return PropertyID(i), true
		}
	}
	return 0, false
}

// Property is a property value read back from an object. Vec3 or Float is
// set depending on the id.
type Property struct {
	ID    PropertyID
	Vec3  mgl32.Vec3
	Float float32
}

// Properties lists the properties the object supports.
func (o *Object) Properties() []Property {
	t := o.Transform
	props := []Property{
		{ID: PropPosition, Vec3: t.Position()},
		{ID: PropRotation, Vec3: t.Rotation()},
		{ID: PropScale, Vec3: t.Scale()},
	}
	switch o.Kind {
	case KindCamera:
		props = append(props,
			Property{ID: PropFOV, Float: o.Camera.FOV},
			Property{ID: PropNear, Float: o.Camera.Near},
			Property{ID: PropFar, Float: o.Camera.Far},
		)
	case KindLight:
		props = append(props, Property{ID: PropLightColor, Vec3: o.Light.Color})
	}
	return props
}

// SetVec3Property sets a vector property. It reports false when the object
// does not have it.
func (o *Object) SetVec3Property(id PropertyID, v mgl32.Vec3) bool {
	switch id {
	case PropPosition:
		o.Transform.SetPosition(v)
	case PropRotation:
		o.Transform.SetRotation(v)
	case PropScale:
		o.Transform.SetScale(v)
	case PropLightColor:
		if o.Kind != KindLight {
			return false
		}
		o.Light.Color = v
	default:
		return false
	}
	return true
}

// SetFloatProperty sets a scalar property. It reports false when the
// object does not have it.
func (o *Object) SetFloatProperty(id PropertyID, v float32) bool {
	if o.Kind != KindCamera {
		return false
	}
	switch id {
	case PropFOV:
		o.Camera.FOV = v
	case PropNear:
		o.Camera.Near = v
	case PropFar:
		o.Camera.Far = v
	default:
		return false
	}
	return true
}

// SetPropertyByName is the untyped entry point for UI-driven editing.
// Vectors accept mgl32.Vec3, [3]float32 or a three-element []float32 or
// []float64; scalars accept float32, float64 or int. Unknown names and
// mismatched values return false.
func (o *Object) SetPropertyByName(key string, value any) bool {
	id, ok := ParsePropertyID(key)
	if !ok {
		return false
	}
	if id.IsVec3() {
		v, ok := toVec3(value)
		if !ok {
			return false
		}
		return o.SetVec3Property(id, v)
	}
	f, ok := toFloat(value)
	if !ok {
		return false
	}
	return o.SetFloatProperty(id, f)
}

func toVec3(value any) (mgl32.Vec3, bool) {
	switch v := value.(type) {
	case mgl32.Vec3:
		return v, true
	case [3]float32:
		return v, true
	case []float32:
		if len(v) == 3 {
			return mgl32.Vec3{v[0], v[1], v[2]}, true
		}
	case []float64:
		if len(v) == 3 {
			return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}, true
		}
	}
	return mgl32.Vec3{}, false
}

func toFloat(value any) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	}
	return 0, false
}

// Properties returns the named object's properties, nil if it is unknown.
func (r *Registry) Properties(name string) []Property {
	o := r.objects[name]
	if o == nil {
		return nil
	}
	return o.Properties()
}

// SetVec3Property sets a vector property on the named object.
func (r *Registry) SetVec3Property(name string, id PropertyID, v mgl32.Vec3) bool {
	o := r.objects[name]
	return o != nil && o.SetVec3Property(id, v)
}

// SetFloatProperty sets a scalar property on the named object.
func (r *Registry) SetFloatProperty(name string, id PropertyID, v float32) bool {
	o := r.objects[name]
	return o != nil && o.SetFloatProperty(id, v)
}
