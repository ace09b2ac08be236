// Package audio is the external audio collaborator: it turns simulation
// impact, shatter and fall events into synthesized tones through beep.
// Everything here runs off the tick path; the core only calls the
// fire-and-forget trigger methods.
package audio

import (
	"github.com/gopxl/beep"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundType identifies one synthesized effect
type SoundType int

const (
	SoundThudWood SoundType = iota
	SoundThudClay
	SoundThudStone
	SoundClangMetal
	SoundThudSoft
	SoundShatterClay
	SoundShatterWood
	SoundHardLanding
	SoundPickup
	soundTypeCount
)

// materialThud maps a prop material to its contact sound
func materialThud(m components.Material) SoundType {
	switch m {
	case components.MaterialClay:
		return SoundThudClay
	case components.MaterialStone:
		return SoundThudStone
	case components.MaterialMetal:
		return SoundClangMetal
	case components.MaterialCloth:
		return SoundThudSoft
	default:
		return SoundThudWood
	}
}

// materialShatter maps a material to its breakage sound
func materialShatter(m components.Material) SoundType {
	if m == components.MaterialClay {
		return SoundShatterClay
	}
	return SoundShatterWood
}
