package town

import (
	"fmt"
	"math"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// Generate is a stand-in for the world-generation collaborator: it lays out
// a deterministic district of square buildings with roofs and climbables,
// round well/tree obstacles, and a gently rolling terrain field. Hosts with
// a real generator pass their own data to New instead.
func Generate(mapX, mapY int, seed uint64) *Town {
	rng := Rand(mapX, mapY, seed^0x746f776e)

	heightAt := rollingTerrain(DistrictSeed(mapX, mapY, seed))

	var footprints []components.StaticFootprint
	var climbables []components.ClimbableAccessory

	buildings := 6 + rng.Intn(5)
	for i := 0; i < buildings; i++ {
		half := 2.0 + rng.Float64()*2.5
		pos := vmath.Vec3{
			X: (rng.Float64()*2 - 1) * (constants.DistrictExtent - half),
			Z: (rng.Float64()*2 - 1) * (constants.DistrictExtent - half),
		}
		// Keep the player spawn at the origin clear
		if vmath.GroundDistSq(pos, vmath.Vec3{}) < (half+4)*(half+4) {
			continue
		}
		roof := constants.DefaultRoofHeight + rng.Float64()*1.5
		id := fmt.Sprintf("bld-%d-%d-%d", mapX, mapY, i)
		footprints = append(footprints, components.StaticFootprint{
			ID:         id,
			Position:   pos,
			Shape:      components.FootprintSquare,
			HalfExtent: half,
			RoofHeight: roof,
		})

		// Roughly half the buildings get a ladder on a random wall
		if rng.Float64() < 0.5 {
			side := components.WallSide(rng.Intn(4))
			out := side.Outward()
			anchor := vmath.V3Add(pos, vmath.V3Scale(out, half+0.2))
			anchor.Y = heightAt(anchor.X, anchor.Z)
			climbables = append(climbables, components.ClimbableAccessory{
				ID:           fmt.Sprintf("ladder-%s", id),
				BuildingID:   id,
				Side:         side,
				GroundAnchor: anchor,
				RoofAnchor:   vmath.Vec3{X: anchor.X, Y: roof, Z: anchor.Z},
				ClimbSpeed:   1.8,
			})
		}
	}

	obstacles := 8 + rng.Intn(8)
	for i := 0; i < obstacles; i++ {
		radius := 0.4 + rng.Float64()*0.8
		pos := vmath.Vec3{
			X: (rng.Float64()*2 - 1) * constants.DistrictExtent,
			Z: (rng.Float64()*2 - 1) * constants.DistrictExtent,
		}
		if vmath.GroundDistSq(pos, vmath.Vec3{}) < 9 {
			continue
		}
		footprints = append(footprints, components.StaticFootprint{
			ID:       fmt.Sprintf("obs-%d-%d-%d", mapX, mapY, i),
			Position: pos,
			Shape:    components.FootprintCircle,
			Radius:   radius,
		})
	}

	return New(mapX, mapY, seed, footprints, climbables, heightAt)
}

// rollingTerrain builds a smooth height field from two low-frequency sine
// octaves phase-shifted by the district seed
func rollingTerrain(seed uint64) HeightFunc {
	phaseA := float64(seed%977) * 0.031
	phaseB := float64(seed%683) * 0.047
	return func(x, z float64) float64 {
		return 0.6*math.Sin(x*0.045+phaseA)*math.Cos(z*0.038+phaseB) +
			0.25*math.Sin(x*0.11-phaseB)*math.Sin(z*0.09+phaseA)
	}
}
