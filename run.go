package viewport

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and interaction for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool

	// Interaction is the Manager configuration. The zero value uses
	// DefaultConfig.
	Interaction Config

	// Script, if set, is replayed through the input adapter one step per
	// frame.
	Script *Script

	// Setup, if set, is called once with the Manager before the window
	// opens, e.g. to register listeners.
	Setup func(m *Manager)

	// OnUpdate, if set, is called every tick after input is processed.
	OnUpdate func(m *Manager) error
}

// runGame is the ebiten.Game driving a Scene for Run.
type runGame struct {
	scene   *Scene
	manager *Manager
	input   *EbitenInput
	runner  *ScriptRunner
	cfg     RunConfig
}

// resetKeys resets the camera when R is pressed.
type resetKeys struct {
	scene    *Scene
	duration float32
}

func (k *resetKeys) OnInteraction(InteractionEvent) {}

func (k *resetKeys) OnKeyPress(e KeyEvent) {
	if e.Key == "R" {
		k.scene.ResetCameraAnimated(k.duration)
	}
}

// Run opens a window showing scene, with camera and object interaction
// wired to the mouse. Pressing R animates the camera back to frame all
// props. It blocks until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	g, err := newRunGame(scene, cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	return ebiten.RunGame(g)
}

func newRunGame(scene *Scene, cfg RunConfig) (*runGame, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	if cfg.Title == "" {
		cfg.Title = "viewport"
	}
	if cfg.Interaction == (Config{}) {
		cfg.Interaction = DefaultConfig()
	}
	if err := cfg.Interaction.Validate(); err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	scene.Resize(cfg.Width, cfg.Height)
	m := NewManager(scene, cfg.Interaction)
	m.AddInteractor(&resetKeys{scene: scene, duration: float32(cfg.Interaction.FlyDuration)})
	g := &runGame{
		scene:   scene,
		manager: m,
		input:   NewEbitenInput(m),
		cfg:     cfg,
	}
	if cfg.Script != nil {
		g.runner = cfg.Script.Runner(g.input)
	}
	if cfg.Setup != nil {
		cfg.Setup(m)
	}
	return g, nil
}

func (g *runGame) Update() error {
	if g.runner != nil {
		g.runner.Step()
		if err := g.runner.Err(); err != nil {
			return err
		}
	}
	g.input.Update()
	g.scene.Update()
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate(g.manager)
	}
	return nil
}

func (g *runGame) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.cfg.ShowFPS {
		drawFPS(screen)
	}
}

func (g *runGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
