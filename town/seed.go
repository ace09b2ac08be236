package town

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// DistrictSeed derives a stable per-district RNG seed from the world seed
// and district coordinates. Nothing is persisted: regenerating with the
// same inputs reproduces the same district.
func DistrictSeed(mapX, mapY int, seed uint64) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(int64(mapX)))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(mapY)))
	binary.LittleEndian.PutUint64(buf[16:], seed)
	return xxhash.Sum64(buf[:])
}

// Rand returns the deterministic RNG for a district
func Rand(mapX, mapY int, seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(DistrictSeed(mapX, mapY, seed))))
}

// propTemplate is the seeding recipe for one prop kind
type propTemplate struct {
	kind     components.PropKind
	material components.Material
	mass     float64
	radius   float64
	height   float64
	weight   int // relative spawn frequency
}

var propTemplates = []propTemplate{
	{components.PropCrate, components.MaterialWood, 2.0, 0.45, 0.9, 5},
	{components.PropJar, components.MaterialClay, 0.8, 0.3, 0.6, 6},
	{components.PropBench, components.MaterialWood, 6.0, 0.7, 0.5, 2},
	{components.PropBoulder, components.MaterialStone, 12.0, 0.6, 1.2, 2},
	{components.PropBarrel, components.MaterialWood, 3.5, 0.4, 1.0, 3},
}

func pickTemplate(rng *rand.Rand) propTemplate {
	total := 0
	for _, t := range propTemplates {
		total += t.weight
	}
	roll := rng.Intn(total)
	for _, t := range propTemplates {
		if roll < t.weight {
			return t
		}
		roll -= t.weight
	}
	return propTemplates[0]
}

// SeedProps generates the district's prop list from the deterministic RNG,
// skipping positions blocked by static footprints. blocked may be nil.
func (t *Town) SeedProps(blocked func(pos vmath.Vec3, radius float64) bool) []*components.PushableObject {
	rng := Rand(t.MapX, t.MapY, t.Seed)
	count := constants.DistrictPropMin + rng.Intn(constants.DistrictPropMax-constants.DistrictPropMin+1)

	props := make([]*components.PushableObject, 0, count)
	for i := 0; i < count; i++ {
		tpl := pickTemplate(rng)
		pos := vmath.Vec3{
			X: (rng.Float64()*2 - 1) * constants.DistrictExtent,
			Z: (rng.Float64()*2 - 1) * constants.DistrictExtent,
		}
		pos.Y = t.HeightAt(pos.X, pos.Z)

		if blocked != nil && blocked(pos, tpl.radius) {
			continue
		}

		p := &components.PushableObject{
			ID:         fmt.Sprintf("prop-%d-%d-%d", t.MapX, t.MapY, i),
			Kind:       tpl.kind,
			Material:   tpl.material,
			Position:   pos,
			Yaw:        rng.Float64() * vmath.Tau,
			Mass:       tpl.mass,
			Radius:     tpl.radius,
			Height:     tpl.height,
			IsSleeping: true,
		}
		if tpl.kind == components.PropJar && rng.Float64() < 0.5 {
			p.Pickup = &components.PickupInfo{ItemID: "herb_bundle", Quantity: 1}
		}
		props = append(props, p)
	}
	return props
}

// SeedRats places the district's rats on unblocked ground
func (t *Town) SeedRats(count int, blocked func(pos vmath.Vec3, radius float64) bool) []*components.Rat {
	rng := rand.New(rand.NewSource(int64(DistrictSeed(t.MapX, t.MapY, t.Seed) ^ 0x7261747321)))
	rats := make([]*components.Rat, 0, count)
	for i := 0; i < count; i++ {
		pos := vmath.Vec3{
			X: (rng.Float64()*2 - 1) * constants.DistrictExtent,
			Z: (rng.Float64()*2 - 1) * constants.DistrictExtent,
		}
		pos.Y = t.HeightAt(pos.X, pos.Z)
		if blocked != nil && blocked(pos, constants.RatRadius) {
			continue
		}
		rats = append(rats, &components.Rat{
			ID:          fmt.Sprintf("rat-%d-%d-%d", t.MapX, t.MapY, i),
			Position:    pos,
			Heading:     rng.Float64() * vmath.Tau,
			Speed:       constants.RatWalkSpeed,
			WanderTimer: constants.RatWanderMinHold + rng.Float64()*(constants.RatWanderMaxHold-constants.RatWanderMinHold),
		})
	}
	return rats
}

// shatterLootTable maps a prop kind to the items it can drop
var shatterLootTable = map[components.PropKind][]string{
	components.PropCrate:  {"plank", "nails", "dried_fish"},
	components.PropJar:    {"grain", "olive_oil", "coin"},
	components.PropBarrel: {"plank", "salted_pork"},
}

// ShatterLoot converts a shattered prop's position into 0-2 loot entries.
// Deterministic for a given rng state; loot ids are uuids derived from the
// district namespace so external collaborators can de-duplicate.
func ShatterLoot(p *components.PushableObject, rng *rand.Rand) []components.LootEntry {
	table, ok := shatterLootTable[p.Kind]
	if !ok || len(table) == 0 {
		return nil
	}

	n := rng.Intn(constants.ShatterLootMax + 1)
	loot := make([]components.LootEntry, 0, n)
	for i := 0; i < n; i++ {
		item := table[rng.Intn(len(table))]
		offset := vmath.Vec3{
			X: (rng.Float64()*2 - 1) * p.Radius,
			Z: (rng.Float64()*2 - 1) * p.Radius,
		}
		loot = append(loot, components.LootEntry{
			ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%s/%d", p.ID, item, i))).String(),
			ItemID:   item,
			Position: vmath.V3Add(p.Position, offset),
		})
	}
	return loot
}
