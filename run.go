package howitzer

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// HideHUD turns off the score and camera overlay.
	HideHUD bool
	// ExitWhenScriptDone ends the game loop once an attached TestRunner has
	// finished, after the final frame is drawn.
	ExitWhenScriptDone bool
}

// Run opens a window and drives the scene at a fixed 60 ticks per second:
// keyboard input is queued, Scene.Update runs, then the frame is drawn with
// a ScreenDrawer and the HUD on top. It blocks until the window is closed.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1024
	}
	if cfg.Height <= 0 {
		cfg.Height = 768
	}
	if cfg.Title == "" {
		cfg.Title = "howitzer"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(1 / TickSeconds))

	g := &game{scene: scene, cfg: cfg, drawer: NewScreenDrawer(nil)}
	scene.log.Info().Str("title", cfg.Title).Int("width", cfg.Width).Int("height", cfg.Height).Msg("starting")
	return ebiten.RunGame(g)
}

type game struct {
	scene     *Scene
	cfg       RunConfig
	drawer    *ScreenDrawer
	finishing bool
}

func (g *game) Update() error {
	if g.finishing {
		return ebiten.Termination
	}
	g.scene.processInput(ebitenKeys{})
	g.scene.Update()
	if g.cfg.ExitWhenScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() {
		// Let one more frame draw and flush pending screenshots.
		g.finishing = true
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	s := g.scene
	screen.Fill(s.ClearColor.toRGBA())

	b := screen.Bounds()
	g.drawer.SetTarget(screen)
	s.Draw(g.drawer, float64(b.Dx()), float64(b.Dy()))

	s.flushScreenshots(screen)

	var lines []string
	if !g.cfg.HideHUD {
		lines = append(lines, hudLines(s)...)
	}
	if g.cfg.ShowFPS {
		lines = append(lines, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	if len(lines) > 0 {
		ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// hudLines describes the score and camera state for the overlay.
func hudLines(s *Scene) []string {
	cam := s.camera
	lines := []string{
		fmt.Sprintf("Score: %d  Best: %d  Streak: %d", s.score.Score, s.score.Best, s.score.Streak),
	}

	var view string
	switch {
	case cam.MultiView:
		view = "multi"
	case cam.ViewIndex >= 0 && cam.ViewIndex < len(CameraPresets):
		view = CameraPresets[cam.ViewIndex].Name
	}
	proj := "orthographic"
	if cam.Perspective {
		proj = "perspective"
	}
	lines = append(lines, fmt.Sprintf("View: %s  %s  Zoom: %.2f", view, proj, cam.Zoom))

	if !cam.MultiView && cam.ViewIndex == PlaygroundView {
		if cam.Family == FamilyOblique {
			lines = append(lines, fmt.Sprintf("Oblique: angle %.0f  magnitude %.2f", cam.ObliqueAngle, cam.ObliqueMagnitude))
		} else {
			lines = append(lines, fmt.Sprintf("Axonometric: x %.0f  y %.0f", cam.AxonometricX, cam.AxonometricY))
		}
	}
	if cam.Wireframe {
		lines = append(lines, "Wireframe")
	}
	lines = append(lines, fmt.Sprintf("Pitch: %.0f  Shells: %d", s.CannonPitch(), len(s.projectiles)))
	return lines
}
