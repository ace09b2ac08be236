// Command plaguetown runs the simulation core under a terminal harness:
// a tcell top-down view, keyboard input feeding the event queue, a beep
// sound collaborator, and a stub NPC simulation wandering agents around.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/benjaminbreen/PlagueSimulator-sub002/audio"
	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/config"
	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
	"github.com/benjaminbreen/PlagueSimulator-sub002/engine"
	"github.com/benjaminbreen/PlagueSimulator-sub002/events"
	"github.com/benjaminbreen/PlagueSimulator-sub002/render"
	"github.com/benjaminbreen/PlagueSimulator-sub002/systems"
	"github.com/benjaminbreen/PlagueSimulator-sub002/town"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

// moveLatchDuration holds a movement key active between terminal key
// repeats, which arrive slower than the tick rate
const moveLatchDuration = 180 * time.Millisecond

// inputState latches movement between key events. The input goroutine
// writes, the tick loop reads.
type inputState struct {
	mu       sync.Mutex
	dirX     float64
	dirZ     float64
	deadline time.Time
}

func (in *inputState) latch(dx, dz float64) {
	in.mu.Lock()
	in.dirX, in.dirZ = dx, dz
	in.deadline = time.Now().Add(moveLatchDuration)
	in.mu.Unlock()
}

func (in *inputState) current() (float64, float64) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if time.Now().After(in.deadline) {
		return 0, 0
	}
	return in.dirX, in.dirZ
}

// stubAgents is the stand-in NPC-simulation collaborator: a handful of
// townsfolk drifting between waypoints. A real host replaces this with its
// own simulation and snapshot provider.
type stubAgents struct {
	agents  []components.AgentSnapshot
	targets []vmath.Vec3
	rng     *rand.Rand
}

func newStubAgents(count int, seed uint64) *stubAgents {
	s := &stubAgents{rng: rand.New(rand.NewSource(int64(seed)))}
	states := []components.AgentState{
		components.AgentHealthy, components.AgentHealthy, components.AgentHealthy,
		components.AgentInfected, components.AgentMourning, components.AgentGathering,
	}
	for i := 0; i < count; i++ {
		pos := vmath.Vec3{
			X: (s.rng.Float64()*2 - 1) * constants.DistrictExtent * 0.8,
			Z: (s.rng.Float64()*2 - 1) * constants.DistrictExtent * 0.8,
		}
		s.agents = append(s.agents, components.AgentSnapshot{
			ID:       fmt.Sprintf("npc-%d", i),
			Position: pos,
			Radius:   0.35,
			State:    states[s.rng.Intn(len(states))],
		})
		s.targets = append(s.targets, pos)
	}
	return s
}

func (s *stubAgents) step(dt float64) {
	for i := range s.agents {
		a := &s.agents[i]
		if a.State == components.AgentDeceased {
			continue
		}
		to := vmath.V3Sub(s.targets[i], a.Position)
		if vmath.V3MagSq(to) < 1 {
			s.targets[i] = vmath.Vec3{
				X: (s.rng.Float64()*2 - 1) * constants.DistrictExtent * 0.8,
				Z: (s.rng.Float64()*2 - 1) * constants.DistrictExtent * 0.8,
			}
			continue
		}
		step := vmath.V3Scale(vmath.V3Normalize(to), 1.3*dt)
		a.Position = vmath.V3Add(a.Position, step)
	}
}

func (s *stubAgents) snapshots() []components.AgentSnapshot {
	return s.agents
}

func main() {
	configPath := flag.String("config", "plaguetown.yaml", "optional tuning overrides")
	flag.Parse()

	cfg, err := config.Load(*configPath)

	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"plaguetown.log"}
	logger, logErr := logCfg.Build()
	if logErr != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()
	if err != nil {
		logger.Warn("config fell back to defaults", zap.Error(err))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal init: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal init: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		// Restore the terminal even on panic
		if r := recover(); r != nil {
			screen.Fini()
			panic(r)
		}
		screen.Fini()
	}()

	sound := audio.NewSoundManager(cfg.Audio.MasterVolume)
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err != nil {
			// Non-fatal: the town runs silent
			logger.Warn("audio unavailable", zap.Error(err))
		}
	}
	defer sound.Cleanup()

	view := render.NewView(screen)
	t := town.Generate(cfg.World.MapX, cfg.World.MapY, cfg.World.Seed)
	npcs := newStubAgents(14, town.DistrictSeed(cfg.World.MapX, cfg.World.MapY, cfg.World.Seed))

	cb := engine.Callbacks{
		OnImpactPuff: view.AddPuff,
		OnImpactSound: func(m components.Material, intensity float64) {
			sound.PlayImpact(m, intensity)
		},
		OnShatter: func(m components.Material) {
			sound.PlayShatter(m)
		},
		OnFallDamage: func(height float64, fatal bool) {
			sound.PlayFall(fatal)
			logger.Info("fall damage", zap.Float64("height", height), zap.Bool("fatal", fatal))
		},
		OnPickup: func(itemID string, info components.PickupInfo) {
			sound.PlayPickup()
		},
		OnDistrictChange: func(mapX, mapY int) {
			view.SetNotice(fmt.Sprintf("district %d,%d", mapX, mapY))
		},
	}

	ctx := systems.NewSimContext(cfg, logger, engine.NewMonotonicTimeProvider(), t, npcs.snapshots, cb)

	input := &inputState{}
	quit := make(chan struct{})
	go pollInput(screen, ctx, input, quit)

	ticker := time.NewTicker(constants.TickIntervalMs * time.Millisecond)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-quit:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			dx, dz := input.current()
			ctx.Emit(events.EventMoveInput, &events.MoveInputPayload{DirX: dx, DirZ: dz})

			npcs.step(dt)
			ctx.Tick(dt)
			maybeChangeDistrict(ctx, cfg)
			view.Draw(ctx)
		}
	}
}

// pollInput translates terminal keys into simulation events.
// Terminals report no key releases, so jumping is two-stage: 'j' begins
// the charge, space releases it (a bare space taps a full press/release).
func pollInput(screen tcell.Screen, ctx *systems.SimContext, input *inputState, quit chan struct{}) {
	charging := false
	for {
		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case tev.Key() == tcell.KeyEscape || tev.Key() == tcell.KeyCtrlC:
				close(quit)
				return
			case tev.Key() == tcell.KeyUp || tev.Rune() == 'w':
				input.latch(0, -1)
			case tev.Key() == tcell.KeyDown || tev.Rune() == 's':
				input.latch(0, 1)
			case tev.Key() == tcell.KeyLeft || tev.Rune() == 'a':
				input.latch(-1, 0)
			case tev.Key() == tcell.KeyRight || tev.Rune() == 'd':
				input.latch(1, 0)
			case tev.Rune() == 'j':
				ctx.Emit(events.EventJumpPressed, nil)
				charging = true
			case tev.Rune() == ' ':
				if !charging {
					ctx.Emit(events.EventJumpPressed, nil)
				}
				ctx.Emit(events.EventJumpReleased, nil)
				charging = false
			case tev.Rune() == 'e':
				ctx.Emit(events.EventInteract, nil)
			case tev.Rune() == 'f':
				ctx.Emit(events.EventStrike, nil)
			}
		}
	}
}

// maybeChangeDistrict regenerates the town when the player walks past the
// district edge, wrapping the player to the opposite side
func maybeChangeDistrict(ctx *systems.SimContext, cfg *config.Config) {
	p := ctx.Player
	mapX, mapY := ctx.Town.MapX, ctx.Town.MapY

	switch {
	case p.Position.X > constants.DistrictExtent:
		mapX++
		p.Position.X = -constants.DistrictExtent + 1
	case p.Position.X < -constants.DistrictExtent:
		mapX--
		p.Position.X = constants.DistrictExtent - 1
	case p.Position.Z > constants.DistrictExtent:
		mapY++
		p.Position.Z = -constants.DistrictExtent + 1
	case p.Position.Z < -constants.DistrictExtent:
		mapY--
		p.Position.Z = constants.DistrictExtent - 1
	default:
		return
	}
	ctx.Emit(events.EventDistrictChange, &events.DistrictChangePayload{MapX: mapX, MapY: mapY})
	ctx.ChangeDistrict(town.Generate(mapX, mapY, cfg.World.Seed))
}
