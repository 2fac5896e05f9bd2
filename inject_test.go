package howitzer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestQueueDeferredToUpdate(t *testing.T) {
	s := NewScene(nil)
	s.Queue(Command{Type: CmdPitchCannon, Sign: 1})
	s.Queue(Command{Type: CmdFire})

	if s.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", s.Pending())
	}
	if s.CannonPitch() != 0 || len(s.Projectiles()) != 0 {
		t.Fatal("queued commands applied before Update")
	}

	s.Update()
	if s.Pending() != 0 {
		t.Errorf("Pending after Update = %d", s.Pending())
	}
	assertNear(t, "pitch", s.CannonPitch(), PitchStep)
	if len(s.Projectiles()) != 1 {
		t.Errorf("projectiles = %d, want 1", len(s.Projectiles()))
	}
}

func TestQueueRepeat(t *testing.T) {
	s := NewScene(nil)
	s.QueueRepeat(Command{Type: CmdRotateCabin, Sign: 1}, 4)
	s.QueueRepeat(Command{Type: CmdFire}, 0)
	if s.Pending() != 4 {
		t.Fatalf("Pending = %d, want 4", s.Pending())
	}
	s.Update()
	assertNear(t, "cabin", s.Graph().Find(NodeCabin).Rotation[1], 4*CabinStep)
}

func TestQueueKeepsOrder(t *testing.T) {
	s := NewScene(nil)
	// Fire before pitching: the projectile leaves at pitch 0.
	s.Queue(Command{Type: CmdFire})
	s.QueueRepeat(Command{Type: CmdPitchCannon, Sign: 1}, 20)
	s.Update()
	if len(s.Projectiles()) != 1 {
		t.Fatalf("projectiles = %d", len(s.Projectiles()))
	}
	v := s.Projectiles()[0].Velocity
	if v[1] > 0 {
		t.Errorf("velocity %v should not be climbing at pitch 0", v)
	}
}

func TestRejectedCommandLogged(t *testing.T) {
	var buf bytes.Buffer
	s := NewScene(nil)
	s.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	s.Queue(Command{Type: CmdSelectView, View: 42})
	s.Update()
	if !strings.Contains(buf.String(), "command rejected") {
		t.Errorf("log = %q", buf.String())
	}
	if s.Camera().ViewIndex != 0 {
		t.Errorf("view = %d", s.Camera().ViewIndex)
	}
}
