package howitzer

import "fmt"

// Tank control tuning.
const (
	CabinStep = 5.0   // degrees per rotate-cabin command
	PitchStep = 2.0   // degrees per pitch-cannon command
	MinPitch  = -17.0 // degrees
	MaxPitch  = 80.0  // degrees
	MoveStep  = 0.25  // world units per move-tank command
	WheelStep = 20.0  // degrees of wheel spin per move-tank command
)

// CommandType identifies an input action.
type CommandType uint8

const (
	CmdSelectView CommandType = iota
	CmdToggleMultiView
	CmdToggleProjectionFamily
	CmdAdjustProjection
	CmdResetProjection
	CmdTogglePerspective
	CmdRotateCabin
	CmdPitchCannon
	CmdMoveTank
	CmdToggleWireframe
	CmdZoom
	CmdFire
	CmdResetScore
	CmdResetBestScore
)

var commandNames = [...]string{
	CmdSelectView:             "selectView",
	CmdToggleMultiView:        "toggleMultiView",
	CmdToggleProjectionFamily: "toggleProjectionFamily",
	CmdAdjustProjection:       "adjustProjection",
	CmdResetProjection:        "resetProjection",
	CmdTogglePerspective:      "togglePerspective",
	CmdRotateCabin:            "rotateCabin",
	CmdPitchCannon:            "pitchCannon",
	CmdMoveTank:               "moveTank",
	CmdToggleWireframe:        "toggleWireframe",
	CmdZoom:                   "zoom",
	CmdFire:                   "fire",
	CmdResetScore:             "resetScore",
	CmdResetBestScore:         "resetBestScore",
}

func (t CommandType) String() string {
	if int(t) < len(commandNames) {
		return commandNames[t]
	}
	return fmt.Sprintf("CommandType(%d)", t)
}

// ParseCommandType resolves a command name as used in test scripts.
func ParseCommandType(name string) (CommandType, error) {
	for i, n := range commandNames {
		if n == name {
			return CommandType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// Command is a discrete input action. Sign is used by the stepping
// commands, View by CmdSelectView and Axis by CmdAdjustProjection.
type Command struct {
	Type CommandType
	Sign int
	View int
	Axis Axis
}

// Apply executes cmd immediately. It returns false when the command was
// rejected or had nothing to act on (for example a missing tank node).
func (s *Scene) Apply(cmd Command) bool {
	cam := s.camera
	switch cmd.Type {
	case CmdSelectView:
		return cam.SelectView(cmd.View)
	case CmdToggleMultiView:
		cam.ToggleMultiView()
	case CmdToggleProjectionFamily:
		cam.ToggleFamily()
	case CmdAdjustProjection:
		cam.AdjustProjection(cmd.Axis, cmd.Sign)
	case CmdResetProjection:
		cam.ResetProjection()
	case CmdTogglePerspective:
		return cam.TogglePerspective()
	case CmdRotateCabin:
		return s.RotateCabin(cmd.Sign)
	case CmdPitchCannon:
		return s.PitchCannon(cmd.Sign)
	case CmdMoveTank:
		return s.MoveTank(cmd.Sign)
	case CmdToggleWireframe:
		cam.ToggleWireframe()
	case CmdZoom:
		cam.ZoomBy(cmd.Sign)
	case CmdFire:
		return s.Fire()
	case CmdResetScore:
		s.ResetScore()
	case CmdResetBestScore:
		s.ResetBestScore()
	default:
		return false
	}
	return true
}

// RotateCabin turns the cabin about Y by one step, wrapped into [0, 360).
func (s *Scene) RotateCabin(sign int) bool {
	cabin := s.graph.Find(NodeCabin)
	if cabin == nil {
		return false
	}
	cabin.Rotation[1] = wrapDegrees(cabin.Rotation[1] + float64(signOf(sign))*CabinStep)
	return true
}

// PitchCannon raises (positive sign) or lowers the cannon base by one step,
// clamped to [MinPitch, MaxPitch].
func (s *Scene) PitchCannon(sign int) bool {
	base := s.graph.Find(NodeCannonBase)
	if base == nil {
		return false
	}
	base.Rotation[2] = clamp(base.Rotation[2]+float64(signOf(sign))*PitchStep, MinPitch, MaxPitch)
	return true
}

// CannonPitch returns the cannon base pitch in degrees, or 0 without one.
func (s *Scene) CannonPitch() float64 {
	if base := s.graph.Find(NodeCannonBase); base != nil {
		return base.Rotation[2]
	}
	return 0
}

// MoveTank moves the whole tank along X by one step and spins every wheel in
// both wheel groups by the same amount, wrapped into [0, 360).
func (s *Scene) MoveTank(sign int) bool {
	if s.graph.Len() == 0 {
		return false
	}
	sg := float64(signOf(sign))
	root := s.graph.Node(s.graph.Root())
	root.Translation[0] += sg * MoveStep

	for _, group := range [...]string{NodeWheelsLeft, NodeWheelsRight} {
		id, ok := s.graph.Lookup(group)
		if !ok {
			continue
		}
		for _, wid := range s.graph.Node(id).Children() {
			w := s.graph.Node(wid)
			w.Rotation[2] = wrapDegrees(w.Rotation[2] + sg*WheelStep)
		}
	}
	return true
}

// Fire spawns a projectile at the cannon muzzle. Returns false when the
// scene has no cannon.
func (s *Scene) Fire() bool {
	id, ok := s.graph.Lookup(NodeCannon)
	if !ok {
		return false
	}
	p := spawnProjectile(s.graph.WorldPose(id, muzzleOffset, muzzleDirection))
	s.projectiles = append(s.projectiles, p)
	s.log.Debug().Floats64("position", p.Position[:]).Floats64("velocity", p.Velocity[:]).Msg("fired")
	s.emit(GameEvent{Type: EventFired, Position: p.Position})
	return true
}

// ResetScore clears score and streak. The best score is kept.
func (s *Scene) ResetScore() {
	s.scorer().reset()
	s.emit(GameEvent{Type: EventScoreReset})
}

// ResetBestScore clears the best score in memory and in the store.
func (s *Scene) ResetBestScore() {
	s.scorer().resetBest()
	s.emit(GameEvent{Type: EventBestReset})
}
