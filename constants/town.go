package constants

// District prop seeding

const (
	// Props procedurally seeded per district, regenerated from
	// (mapX, mapY, seed) rather than persisted
	DistrictPropMin = 14
	DistrictPropMax = 26

	DistrictExtent = 64.0 // district half-width in world units

	DefaultRatCount = 6

	// Default roof height for seeded buildings lacking explicit data
	DefaultRoofHeight = 3.2
)
