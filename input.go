package howitzer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Held keys repeat after keyRepeatDelay ticks, then every keyRepeatInterval
// ticks.
const (
	keyRepeatDelay    = 18
	keyRepeatInterval = 4
)

// KeyBinding maps a key to the command queued when it is pressed.
type KeyBinding struct {
	Key     ebiten.Key
	Command Command
	Repeat  bool // held key re-queues the command
}

// DefaultBindings is the standard keyboard layout.
var DefaultBindings = []KeyBinding{
	{Key: ebiten.Key1, Command: Command{Type: CmdSelectView, View: 0}},
	{Key: ebiten.Key2, Command: Command{Type: CmdSelectView, View: 1}},
	{Key: ebiten.Key3, Command: Command{Type: CmdSelectView, View: 2}},
	{Key: ebiten.Key4, Command: Command{Type: CmdSelectView, View: 3}},
	{Key: ebiten.KeyM, Command: Command{Type: CmdToggleMultiView}},
	{Key: ebiten.KeyP, Command: Command{Type: CmdToggleProjectionFamily}},
	{Key: ebiten.KeyO, Command: Command{Type: CmdTogglePerspective}},
	{Key: ebiten.KeyArrowLeft, Command: Command{Type: CmdAdjustProjection, Axis: AxisHorizontal, Sign: -1}, Repeat: true},
	{Key: ebiten.KeyArrowRight, Command: Command{Type: CmdAdjustProjection, Axis: AxisHorizontal, Sign: 1}, Repeat: true},
	{Key: ebiten.KeyArrowDown, Command: Command{Type: CmdAdjustProjection, Axis: AxisVertical, Sign: -1}, Repeat: true},
	{Key: ebiten.KeyArrowUp, Command: Command{Type: CmdAdjustProjection, Axis: AxisVertical, Sign: 1}, Repeat: true},
	{Key: ebiten.KeyR, Command: Command{Type: CmdResetProjection}},
	{Key: ebiten.KeyA, Command: Command{Type: CmdRotateCabin, Sign: 1}, Repeat: true},
	{Key: ebiten.KeyD, Command: Command{Type: CmdRotateCabin, Sign: -1}, Repeat: true},
	{Key: ebiten.KeyW, Command: Command{Type: CmdPitchCannon, Sign: 1}, Repeat: true},
	{Key: ebiten.KeyS, Command: Command{Type: CmdPitchCannon, Sign: -1}, Repeat: true},
	{Key: ebiten.KeyQ, Command: Command{Type: CmdMoveTank, Sign: -1}, Repeat: true},
	{Key: ebiten.KeyE, Command: Command{Type: CmdMoveTank, Sign: 1}, Repeat: true},
	{Key: ebiten.KeyF, Command: Command{Type: CmdToggleWireframe}},
	{Key: ebiten.KeyEqual, Command: Command{Type: CmdZoom, Sign: 1}, Repeat: true},
	{Key: ebiten.KeyKPAdd, Command: Command{Type: CmdZoom, Sign: 1}, Repeat: true},
	{Key: ebiten.KeyMinus, Command: Command{Type: CmdZoom, Sign: -1}, Repeat: true},
	{Key: ebiten.KeyKPSubtract, Command: Command{Type: CmdZoom, Sign: -1}, Repeat: true},
	{Key: ebiten.KeySpace, Command: Command{Type: CmdFire}},
	{Key: ebiten.KeyN, Command: Command{Type: CmdResetScore}},
	{Key: ebiten.KeyB, Command: Command{Type: CmdResetBestScore}},
}

// keyState reports how long a key has been held, in ticks. Zero means up.
type keyState interface {
	KeyPressDuration(key ebiten.Key) int
}

type ebitenKeys struct{}

func (ebitenKeys) KeyPressDuration(key ebiten.Key) int {
	return inpututil.KeyPressDuration(key)
}

// triggered reports whether a key held for d ticks fires this tick.
func (b KeyBinding) triggered(d int) bool {
	switch {
	case d == 1:
		return true
	case !b.Repeat || d < keyRepeatDelay:
		return false
	default:
		return (d-keyRepeatDelay)%keyRepeatInterval == 0
	}
}

// SetBindings replaces the keyboard layout. A nil slice disables keyboard
// input; commands can still be queued directly.
func (s *Scene) SetBindings(bindings []KeyBinding) {
	s.bindings = bindings
}

// processInput queues the command of every binding triggered this tick.
func (s *Scene) processInput(keys keyState) int {
	n := 0
	for _, b := range s.bindings {
		if b.triggered(keys.KeyPressDuration(b.Key)) {
			s.Queue(b.Command)
			n++
		}
	}
	return n
}
