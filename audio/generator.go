package audio

import (
	"math"
	"math/rand"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates raw waveform samples
func oscillator(waveType int, freq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(sampleRate)

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case waveNoise:
			buf[i] = rand.Float64()*2 - 1
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf floatBuffer, attackSec, releaseSec float64) {
	total := len(buf)
	attackSamples := int(attackSec * float64(sampleRate))
	releaseSamples := int(releaseSec * float64(sampleRate))

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// durationToSamples converts seconds to sample count
func durationToSamples(d float64) int {
	return int(d * float64(sampleRate))
}

// --- Sound generators (unity gain) ---

// thud is a short low sine knock; freq sets the material's voice
func thud(freq float64) floatBuffer {
	buf := oscillator(waveSine, freq, durationToSamples(0.09))
	applyEnvelope(buf, 0.004, 0.07)
	return buf
}

func generateClang() floatBuffer {
	// Detuned square pair gives a metallic beat
	a := oscillator(waveSquare, 620, durationToSamples(0.16))
	b := oscillator(waveSquare, 633, durationToSamples(0.16))
	buf := mixFloatBuffers(a, b, 0.8)
	applyEnvelope(buf, 0.002, 0.13)
	return buf
}

func generateShatterClay() floatBuffer {
	noise := oscillator(waveNoise, 0, durationToSamples(0.22))
	ring := oscillator(waveSine, 1480, durationToSamples(0.22))
	buf := mixFloatBuffers(noise, ring, 0.4)
	applyEnvelope(buf, 0.001, 0.2)
	return buf
}

func generateShatterWood() floatBuffer {
	noise := oscillator(waveNoise, 0, durationToSamples(0.18))
	crack := oscillator(waveSaw, 210, durationToSamples(0.18))
	buf := mixFloatBuffers(noise, crack, 0.6)
	applyEnvelope(buf, 0.001, 0.15)
	return buf
}

func generateHardLanding() floatBuffer {
	buf := oscillator(waveSine, 70, durationToSamples(0.25))
	noise := oscillator(waveNoise, 0, durationToSamples(0.08))
	buf = mixFloatBuffers(buf, noise, 0.25)
	applyEnvelope(buf, 0.002, 0.2)
	return buf
}

func generatePickup() floatBuffer {
	buf := oscillator(waveSine, 987.77, durationToSamples(0.07))
	applyEnvelope(buf, 0.002, 0.05)
	return buf
}

// generateSound dispatches to specific generator
func generateSound(st SoundType) floatBuffer {
	switch st {
	case SoundThudWood:
		return thud(160)
	case SoundThudClay:
		return thud(300)
	case SoundThudStone:
		return thud(95)
	case SoundClangMetal:
		return generateClang()
	case SoundThudSoft:
		return thud(120)
	case SoundShatterClay:
		return generateShatterClay()
	case SoundShatterWood:
		return generateShatterWood()
	case SoundHardLanding:
		return generateHardLanding()
	case SoundPickup:
		return generatePickup()
	default:
		return nil
	}
}
