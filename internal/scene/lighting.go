package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DirectionalLight shines from Direction (unit vector toward the light).
type DirectionalLight struct {
	Color     mgl64.Vec3
	Intensity float64
	Direction mgl64.Vec3
}

// Material is a Blinn-Phong surface description. Colours are linear [0, 1].
type Material struct {
	Diffuse   mgl64.Vec3
	Emissive  mgl64.Vec3
	Specular  mgl64.Vec3
	Shininess float64
}

// Lighting is the full shading setup for the water surface.
type Lighting struct {
	Ambient          mgl64.Vec3
	AmbientIntensity float64
	Lights           []DirectionalLight
	Material         Material
	Background       color.RGBA
}

// Hex converts 0xRRGGBB to a linear colour vector.
func Hex(rgb uint32) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(rgb>>16&0xff) / 255,
		float64(rgb>>8&0xff) / 255,
		float64(rgb&0xff) / 255,
	}
}

// HexRGBA converts 0xRRGGBB to an opaque colour.
func HexRGBA(rgb uint32) color.RGBA {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}
}

// DefaultLighting returns the pale water look: a warm white key light, a
// green fill and a blue emissive tint.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient:          Hex(0x404040),
		AmbientIntensity: 2,
		Lights: []DirectionalLight{
			{Color: Hex(0xffffff), Intensity: 3, Direction: mgl64.Vec3{200, 300, 175}.Normalize()},
			{Color: Hex(0x40a040), Intensity: 2, Direction: mgl64.Vec3{-100, 350, -200}.Normalize()},
		},
		Material: Material{
			Diffuse:   Hex(0xe8e8e3),
			Emissive:  Hex(0x004477),
			Specular:  Hex(0xffffff),
			Shininess: 100,
		},
		Background: HexRGBA(0xe8e8e3),
	}
}

// Shade returns the lit colour at pos with the given unit normal, viewed
// from eye. Lambert and Blinn-Phong terms are energy-normalized by 1/π;
// channels are clamped to [0, 1].
func (l Lighting) Shade(pos, normal, eye mgl64.Vec3) mgl64.Vec3 {
	m := l.Material
	diffuse := m.Diffuse.Mul(1 / math.Pi)
	out := m.Emissive.Add(mulVec(l.Ambient.Mul(l.AmbientIntensity), diffuse))
	view := eye.Sub(pos)
	if view.Len() > 0 {
		view = view.Normalize()
	}
	specNorm := 0.25 / math.Pi * (m.Shininess*0.5 + 1)
	for _, light := range l.Lights {
		ndl := normal.Dot(light.Direction)
		if ndl <= 0 {
			continue
		}
		irradiance := light.Color.Mul(light.Intensity * ndl)
		out = out.Add(mulVec(irradiance, diffuse))
		half := light.Direction.Add(view)
		if half.Len() == 0 {
			continue
		}
		if ndh := normal.Dot(half.Normalize()); ndh > 0 {
			out = out.Add(mulVec(irradiance, m.Specular).Mul(specNorm * math.Pow(ndh, m.Shininess)))
		}
	}
	return mgl64.Vec3{clamp01(out.X()), clamp01(out.Y()), clamp01(out.Z())}
}

func mulVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
