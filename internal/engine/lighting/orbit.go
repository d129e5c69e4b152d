// Package lighting places lights from spherical angles.
package lighting

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction converts azimuth and elevation in degrees to a unit vector.
// Azimuth turns around +Y starting at +Z toward +X; elevation is measured
// up from the XZ plane.
func Direction(azimuth, elevation float32) mgl32.Vec3 {
	lon := mgl32.DegToRad(azimuth)
	lat := mgl32.DegToRad(elevation)

	return mgl32.Vec3{
		math32.Cos(lat) * math32.Sin(lon),
		math32.Sin(lat),
		math32.Cos(lat) * math32.Cos(lon),
	}
}

// Orbiter moves a light on a circle of Radius around Center at a fixed
// Elevation.
type Orbiter struct {
	Center    mgl32.Vec3
	Radius    float32
	Elevation float32 // degrees
	Speed     float32 // degrees per second
	Azimuth   float32 // starting azimuth, degrees
}

// DefaultOrbiter circles the origin once every eight seconds.
var DefaultOrbiter = Orbiter{Radius: 10, Elevation: 30, Speed: 45}

// Position is where the light is after elapsed time.
func (o Orbiter) Position(elapsed time.Duration) mgl32.Vec3 {
	az := math32.Mod(o.Azimuth+o.Speed*float32(elapsed.Seconds()), 360)
	return o.Center.Add(Direction(az, o.Elevation).Mul(o.Radius))
}
