package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
)

// SoundManager plays the town's synthesized effects. Safe to call from the
// tick callback: playback hands a buffered streamer to the speaker mixer
// and returns immediately.
type SoundManager struct {
	mu           sync.Mutex
	mixer        *beep.Mixer
	cache        *soundCache
	masterVolume float64
	initialized  bool
}

// NewSoundManager creates a silent, uninitialized manager
func NewSoundManager(masterVolume float64) *SoundManager {
	return &SoundManager{
		mixer:        &beep.Mixer{},
		cache:        newSoundCache(),
		masterVolume: masterVolume,
	}
}

// Initialize sets up the speaker. Failure is non-fatal: the town runs
// silent and every trigger becomes a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.cache.preload()
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// play mixes a cached buffer in at the given gain
func (sm *SoundManager) play(st SoundType, gain float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || gain <= 0 {
		return
	}
	buf := sm.cache.get(st)
	if buf == nil {
		return
	}

	vol := gain * sm.masterVolume
	pos := 0
	streamer := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n := 0
		for i := range samples {
			if pos >= len(buf) {
				break
			}
			v := buf[pos] * vol
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, pos < len(buf)
	})

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// PlayImpact triggers a material-tagged contact sound scaled by intensity
func (sm *SoundManager) PlayImpact(m components.Material, intensity float64) {
	sm.play(materialThud(m), intensity)
}

// PlayShatter triggers a breakage sound
func (sm *SoundManager) PlayShatter(m components.Material) {
	sm.play(materialShatter(m), 1)
}

// PlayFall triggers the hard-landing thump
func (sm *SoundManager) PlayFall(fatal bool) {
	gain := 0.7
	if fatal {
		gain = 1
	}
	sm.play(SoundHardLanding, gain)
}

// PlayPickup triggers the pickup chime
func (sm *SoundManager) PlayPickup() {
	sm.play(SoundPickup, 0.8)
}
