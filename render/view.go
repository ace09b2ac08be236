// Package render is the VFX/render collaborator: a tcell top-down debug
// view of the town. It reads core state and never mutates it.
package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/benjaminbreen/PlagueSimulator-sub002/components"
	"github.com/benjaminbreen/PlagueSimulator-sub002/systems"
	"github.com/benjaminbreen/PlagueSimulator-sub002/vmath"
)

const (
	// cellsPerUnit scales world units to terminal cells; the terminal grid
	// is wider than tall, so X gets double density
	cellsPerUnitX = 2.0
	cellsPerUnitZ = 1.0

	puffLifetime   = 400 * time.Millisecond
	noticeLifetime = 2 * time.Second
)

var (
	styleDefault  = tcell.StyleDefault
	styleBuilding = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleRoofEdge = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleClimb    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleRat      = tcell.StyleDefault.Foreground(tcell.ColorDarkGoldenrod)
	stylePuff     = tcell.StyleDefault.Foreground(tcell.ColorLightYellow).Bold(true)

	agentStyles = map[components.AgentState]tcell.Style{
		components.AgentHealthy:   tcell.StyleDefault.Foreground(tcell.ColorGreen),
		components.AgentInfected:  tcell.StyleDefault.Foreground(tcell.ColorRed),
		components.AgentDeceased:  tcell.StyleDefault.Foreground(tcell.ColorDarkRed),
		components.AgentFleeing:   tcell.StyleDefault.Foreground(tcell.ColorPurple),
		components.AgentMourning:  tcell.StyleDefault.Foreground(tcell.ColorBlue),
		components.AgentGathering: tcell.StyleDefault.Foreground(tcell.ColorTeal),
	}

	propRunes = map[components.PropKind]rune{
		components.PropCrate:       '#',
		components.PropJar:         'u',
		components.PropBench:       '=',
		components.PropBoulder:     'O',
		components.PropBarrel:      '8',
		components.PropDroppedItem: '*',
	}
)

// puff is a short-lived impact flash
type puff struct {
	pos     vmath.Vec3
	expires time.Time
}

// View draws the town centered on the player
type View struct {
	screen tcell.Screen
	puffs  []puff

	notice        string
	noticeExpires time.Time
}

// NewView creates a view on an initialized screen
func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// AddPuff registers an impact flash; wire this to the core's OnImpactPuff
func (v *View) AddPuff(pos vmath.Vec3, intensity float64) {
	if intensity <= 0 {
		return
	}
	v.puffs = append(v.puffs, puff{pos: pos, expires: time.Now().Add(puffLifetime)})
}

// SetNotice shows a transient banner line, e.g. on district change
func (v *View) SetNotice(text string) {
	v.notice = text
	v.noticeExpires = time.Now().Add(noticeLifetime)
}

// Draw renders one frame
func (v *View) Draw(ctx *systems.SimContext) {
	v.screen.Clear()
	w, h := v.screen.Size()
	center := ctx.Player.Position

	toScreen := func(p vmath.Vec3) (int, int) {
		sx := w/2 + int((p.X-center.X)*cellsPerUnitX)
		sy := h/2 + int((p.Z-center.Z)*cellsPerUnitZ)
		return sx, sy
	}
	put := func(p vmath.Vec3, r rune, style tcell.Style) {
		sx, sy := toScreen(p)
		if sx >= 0 && sx < w && sy >= 0 && sy < h {
			v.screen.SetContent(sx, sy, r, nil, style)
		}
	}

	v.drawFootprints(ctx, toScreen, w, h)

	for _, c := range ctx.Town.Climbables {
		put(c.GroundAnchor, 'H', styleClimb)
	}
	for _, p := range ctx.Props.All() {
		if p.IsShattered {
			put(p.Position, '%', styleRoofEdge)
			continue
		}
		put(p.Position, propRunes[p.Kind], styleObstacle)
	}
	for _, r := range ctx.Rats.Rats() {
		put(r.Position, 'r', styleRat)
	}
	for _, a := range ctx.Agents.Agents() {
		put(a.Position, '&', agentStyles[a.State])
	}

	v.drawPuffs(put)
	put(center, '@', stylePlayer)
	v.drawStatus(ctx, w, h)
	v.drawNotice(w)

	v.screen.Show()
}

func (v *View) drawFootprints(ctx *systems.SimContext, toScreen func(vmath.Vec3) (int, int), w, h int) {
	for i := range ctx.Town.Footprints {
		f := &ctx.Town.Footprints[i]
		if f.Shape == components.FootprintCircle {
			sx, sy := toScreen(f.Position)
			if sx >= 0 && sx < w && sy >= 0 && sy < h {
				v.screen.SetContent(sx, sy, 'o', nil, styleObstacle)
			}
			continue
		}
		minX, minY := toScreen(vmath.Vec3{X: f.Position.X - f.HalfExtent, Z: f.Position.Z - f.HalfExtent})
		maxX, maxY := toScreen(vmath.Vec3{X: f.Position.X + f.HalfExtent, Z: f.Position.Z + f.HalfExtent})
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if x < 0 || x >= w || y < 0 || y >= h {
					continue
				}
				r := '█'
				style := styleBuilding
				if y == minY || y == maxY || x == minX || x == maxX {
					r = '▒'
					style = styleRoofEdge
				}
				v.screen.SetContent(x, y, r, nil, style)
			}
		}
	}
}

func (v *View) drawPuffs(put func(vmath.Vec3, rune, tcell.Style)) {
	now := time.Now()
	live := v.puffs[:0]
	for _, p := range v.puffs {
		if now.After(p.expires) {
			continue
		}
		put(p.pos, '+', stylePuff)
		live = append(live, p)
	}
	v.puffs = live
}

func (v *View) drawNotice(w int) {
	if v.notice == "" || time.Now().After(v.noticeExpires) {
		return
	}
	for i, r := range " " + v.notice + " " {
		if i >= w {
			break
		}
		v.screen.SetContent(i, 0, r, nil, stylePlayer)
	}
}

func (v *View) drawStatus(ctx *systems.SimContext, w, h int) {
	st := ctx.Player.Loco
	line := fmt.Sprintf(" (%.1f, %.1f, %.1f) %s props:%d ",
		ctx.Player.Position.X, ctx.Player.Position.Y, ctx.Player.Position.Z,
		st.Phase, ctx.Props.Count())
	if st.JumpCharge > 0 {
		line += fmt.Sprintf("charge:%.0f%% ", st.JumpCharge*100)
	}
	for i, r := range line {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, r, nil, styleDefault)
	}
}
