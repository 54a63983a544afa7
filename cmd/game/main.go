package main

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"artillery-engine/internal/ballistics"
	"artillery-engine/internal/debug"
	"artillery-engine/internal/engineconfig"
	"artillery-engine/internal/env"
	"artillery-engine/internal/gamemath"
	"artillery-engine/internal/graphics"
	"artillery-engine/internal/logger"
)

// aim holds one player's turret state between turns.
type aim struct {
	angle float32
	power float32
	round ballistics.RoundKind
}

type game struct {
	cfg     engineconfig.Config
	log     *logger.Logger
	session *ballistics.Session
	overlay *debug.Overlay

	players []*ballistics.Vehicle
	aims    []aim
	current int
	fired   bool
	paused  bool
	faults  int
}

func main() {
	_ = env.Load(".env")

	level := zapcore.InfoLevel
	if l, err := zapcore.ParseLevel(env.String("ARTILLERY_LOG_LEVEL", "info")); err == nil {
		level = l
	}
	log := logger.New(level)
	defer log.Sync()

	cfg, _ := engineconfig.Load()
	g, err := newGame(cfg, log)
	if err != nil {
		log.Error("setup failed", zap.Error(err))
		os.Exit(1)
	}

	graphics.Run(int32(cfg.Terrain.Width), int32(cfg.Terrain.WorldBottom), "artillery", g.update, g.draw)
}

func newGame(cfg engineconfig.Config, log *logger.Logger) (*game, error) {
	session, err := ballistics.NewSession(cfg, log)
	if err != nil {
		return nil, err
	}
	g := &game{
		cfg:     cfg,
		log:     log,
		session: session,
		overlay: debug.New(),
		aims: []aim{
			{angle: 60, power: 70},
			{angle: 120, power: 70},
		},
	}
	if err := g.placeVehicles(); err != nil {
		return nil, err
	}
	session.RollWind()
	return g, nil
}

// placeVehicles spawns the two players on platform-ish spots found by the
// terrain. The placement search may come up short; fall back to fixed
// columns so a match always starts.
func (g *game) placeVehicles() error {
	width := float32(g.cfg.Terrain.Width)
	spots := g.session.Terrain().FindSuitablePositions(2, width/4)
	columns := []float32{width * 0.15, width * 0.85}
	for i, c := range columns {
		x := c
		if i < len(spots) {
			x = spots[i].X
		}
		v, err := g.session.SpawnVehicle(x, 24, 12, 100, 100)
		if err != nil {
			return err
		}
		g.players = append(g.players, v)
	}
	return nil
}

func (g *game) update() {
	if rl.IsKeyPressed(rl.KeyF3) {
		g.overlay.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.session.Terrain().Regenerate()
	}
	if g.paused {
		return
	}

	g.handleAim()

	results, err := g.session.Update(1)
	if err != nil {
		// Invariant violation: quarantine already happened in the core;
		// pause the match instead of crashing.
		g.faults++
		g.paused = true
		g.log.Error("simulation fault, match paused", zap.Error(err))
	}
	for _, r := range results {
		g.log.Info("impact",
			zap.Float32("x", r.Position.X),
			zap.Float32("y", r.Position.Y),
			zap.Int("damage", r.Damage))
	}
	// Turn ends once every shell from the shot has settled or expired.
	if g.fired && g.session.InFlight() == 0 {
		g.fired = false
		g.nextTurn()
	}

	g.overlay.SetStats(len(g.session.World().Bodies()), g.faults)
}

func (g *game) handleAim() {
	a := &g.aims[g.current]
	switch {
	case rl.IsKeyDown(rl.KeyLeft):
		a.angle = gamemath.Clamp(a.angle+1, 0, 180)
	case rl.IsKeyDown(rl.KeyRight):
		a.angle = gamemath.Clamp(a.angle-1, 0, 180)
	}
	switch {
	case rl.IsKeyDown(rl.KeyUp):
		a.power = gamemath.Clamp(a.power+1, 5, 100)
	case rl.IsKeyDown(rl.KeyDown):
		a.power = gamemath.Clamp(a.power-1, 5, 100)
	}
	switch {
	case rl.IsKeyPressed(rl.KeyOne):
		a.round = ballistics.RoundStandard
	case rl.IsKeyPressed(rl.KeyTwo):
		a.round = ballistics.RoundFragmentation
	case rl.IsKeyPressed(rl.KeyThree):
		a.round = ballistics.RoundGuided
	}

	if rl.IsKeyPressed(rl.KeySpace) && g.session.InFlight() == 0 {
		player := g.players[g.current]
		if !player.Alive() {
			g.nextTurn()
			return
		}
		if _, err := g.session.Fire(player, a.angle, a.power, g.roundSpec(*a)); err != nil {
			g.log.Warn("fire rejected", zap.Error(err))
		} else {
			g.fired = true
		}
	}
}

func (g *game) roundSpec(a aim) ballistics.RoundSpec {
	switch a.round {
	case ballistics.RoundFragmentation:
		return ballistics.FragmentationRound()
	case ballistics.RoundGuided:
		return ballistics.GuidedRound(g.players[1-g.current].Body.Center())
	default:
		return ballistics.StandardRound()
	}
}

func (g *game) nextTurn() {
	g.current = 1 - g.current
	g.session.RollWind()
}

func (g *game) draw() {
	g.drawTerrain()
	g.drawBodies()
	g.drawGuide()
	g.drawHUD()
	g.overlay.Draw()
}

// drawTerrain fills each column from its surface height down to the world
// bottom.
func (g *game) drawTerrain() {
	heights := g.session.Terrain().Snapshot()
	bottom := g.cfg.Terrain.WorldBottom
	for x, h := range heights {
		rl.DrawLine(int32(x), int32(h), int32(x), int32(bottom), rl.DarkGreen)
	}
}

func (g *game) drawBodies() {
	for _, b := range g.session.World().Snapshot() {
		rect := b.Rect()
		var color rl.Color
		switch {
		case b.Faulted():
			color = rl.Red
		case b.Sensor:
			color = rl.Yellow
		default:
			color = rl.SkyBlue
		}
		rl.DrawRectangleRec(rect, color)
	}
}

// drawGuide dots the predicted arc for the current aim while no shell is in
// flight. Prediction is pure: drawing it every frame never disturbs the sim.
func (g *game) drawGuide() {
	if g.session.InFlight() > 0 {
		return
	}
	player := g.players[g.current]
	if !player.Alive() {
		return
	}
	a := g.aims[g.current]
	for i, p := range g.session.PredictShot(player, a.angle, a.power) {
		if i%3 == 0 {
			rl.DrawCircle(int32(p.X), int32(p.Y), 1.5, rl.Fade(rl.White, 0.6))
		}
	}
}

func (g *game) drawHUD() {
	a := g.aims[g.current]
	rl.DrawText(fmt.Sprintf("player %d", g.current+1), 12, 12, 18, rl.White)
	rl.DrawText(fmt.Sprintf("angle %.0f  power %.0f  round %s", a.angle, a.power, a.round), 12, 34, 18, rl.LightGray)
	rl.DrawText(fmt.Sprintf("wind %.1f", g.session.Wind()), 12, 56, 18, rl.LightGray)
	for i, p := range g.players {
		rl.DrawText(fmt.Sprintf("p%d hp %d", i+1, p.Health), 12, 78+int32(i)*20, 18, rl.SkyBlue)
	}
	if g.paused {
		rl.DrawText("PAUSED (P to resume)", 12, 122, 18, rl.Red)
	}
}
