package network

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/shared/protocol"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []messages.Message
	err  error
}

func (f *fakeSender) Send(msg messages.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) messages() []messages.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]messages.Message, len(f.sent))
	copy(out, f.sent)
	return out
}

func (f *fakeSender) updates() []messages.Update {
	var out []messages.Update
	for _, m := range f.messages() {
		if u, ok := m.(messages.Update); ok {
			out = append(out, u)
		}
	}
	return out
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func joined(t *testing.T) (*Reconciler, *fakeSender, *fakeClock, string) {
	t.Helper()
	fs := &fakeSender{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	r := NewReconciler(fs, ReconcilerOptions{ResendInterval: time.Second, Now: clock.now})
	id, err := r.Join("me")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	local := messages.Player{ID: id, Nickname: "me", Position: protocol.SpawnPosition, HP: 100, Team: messages.TeamBlue}
	other := messages.Player{ID: "b", Nickname: "b", Position: protocol.SpawnPosition, HP: 100, Team: messages.TeamRed}
	r.HandleMessage(messages.Sync{Players: map[string]messages.Player{id: local, "b": other}})
	return r, fs, clock, id
}

func TestReconcilerJoinSendsJoin(t *testing.T) {
	fs := &fakeSender{}
	r := NewReconciler(fs, ReconcilerOptions{})
	id, err := r.Join("Ann")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if id == "" || r.LocalID() != id {
		t.Fatalf("local id = %q, returned %q", r.LocalID(), id)
	}
	sent := fs.messages()
	if len(sent) != 1 || sent[0] != (messages.Join{ID: id, Nickname: "Ann"}) {
		t.Fatalf("sent = %+v", sent)
	}
}

func TestReconcilerFlushUpdateOnlyOnChange(t *testing.T) {
	r, fs, clock, id := joined(t)

	if !r.FlushUpdate() {
		t.Fatalf("first flush should send")
	}
	clock.advance(33 * time.Millisecond)
	if r.FlushUpdate() {
		t.Fatalf("unchanged pose was resent before the resend interval")
	}

	pos := gamemath.Vec3{X: 1, Y: 1, Z: 1}
	r.SetLocalPose(pos, 0.5)
	clock.advance(33 * time.Millisecond)
	if !r.FlushUpdate() {
		t.Fatalf("changed pose was not sent")
	}
	ups := fs.updates()
	if last := ups[len(ups)-1]; last != (messages.Update{ID: id, Position: pos, Rotation: 0.5}) {
		t.Fatalf("last update = %+v", last)
	}

	clock.advance(time.Second)
	if !r.FlushUpdate() {
		t.Fatalf("pose was not resent after the resend interval")
	}
	if len(fs.updates()) != 3 {
		t.Fatalf("updates = %d, want 3", len(fs.updates()))
	}
}

func TestReconcilerFlushBeforeJoinSendsNothing(t *testing.T) {
	fs := &fakeSender{}
	r := NewReconciler(fs, ReconcilerOptions{})
	r.SetLocalPose(gamemath.Vec3{X: 1}, 0)
	if r.FlushUpdate() || len(fs.messages()) != 0 {
		t.Fatalf("sent before join: %+v", fs.messages())
	}
}

func TestReconcilerFailedSendIsNotRetried(t *testing.T) {
	r, fs, _, _ := joined(t)
	fs.err = ErrNotConnected
	if r.FlushUpdate() {
		t.Fatalf("flush reported success with a failing sender")
	}
	fs.err = nil
	if len(fs.updates()) != 0 {
		t.Fatalf("failed update was queued: %+v", fs.updates())
	}
}

func TestReconcilerLocalPoseSurvivesEcho(t *testing.T) {
	r, _, _, id := joined(t)
	pos := gamemath.Vec3{X: 1, Y: 1, Z: 1}
	r.SetLocalPose(pos, 0)

	r.HandleMessage(messages.Update{ID: id, Position: gamemath.Vec3{X: 50}})
	r.HandleMessage(messages.Sync{Players: r.Mirror().Snapshot()})

	local, _ := r.Mirror().Local()
	if local.Position != pos {
		t.Fatalf("local position = %+v, want %+v", local.Position, pos)
	}
}

func TestReconcilerShootIsOptimistic(t *testing.T) {
	r, fs, clock, id := joined(t)

	b, err := r.Shoot(gamemath.Vec3{Y: 1}, gamemath.Vec3{Z: 2})
	if err != nil {
		t.Fatalf("Shoot: %v", err)
	}
	if b.OwnerID != id || !b.Local || b.Direction != (gamemath.Vec3{Z: 1}) || !b.SpawnedAt.Equal(clock.t) {
		t.Fatalf("bullet = %+v", b)
	}
	bullets := r.DrainBullets()
	if len(bullets) != 1 || bullets[0].ID != b.ID {
		t.Fatalf("drained = %+v", bullets)
	}
	sent := fs.messages()
	shot, ok := sent[len(sent)-1].(messages.Shoot)
	if !ok || shot.ID != id || shot.Direction != (gamemath.Vec3{Z: 1}) {
		t.Fatalf("last sent = %+v", sent[len(sent)-1])
	}
}

func TestReconcilerShootSurvivesSendFailure(t *testing.T) {
	r, fs, _, _ := joined(t)
	fs.err = ErrSendQueueFull

	if _, err := r.Shoot(gamemath.Vec3{}, gamemath.Vec3{X: 1}); err != ErrSendQueueFull {
		t.Fatalf("err = %v", err)
	}
	if len(r.DrainBullets()) != 1 {
		t.Fatalf("local bullet missing after failed send")
	}
}

func TestReconcilerShootRejectsZeroDirection(t *testing.T) {
	r, _, _, _ := joined(t)
	if _, err := r.Shoot(gamemath.Vec3{}, gamemath.Vec3{}); err != ErrZeroDirection {
		t.Fatalf("err = %v", err)
	}
}

func TestReconcilerRemoteShootSpawnsBullet(t *testing.T) {
	r, _, _, id := joined(t)

	r.HandleMessage(messages.Shoot{ID: "b", Position: gamemath.Vec3{X: 3}, Direction: gamemath.Vec3{X: -5}})
	r.HandleMessage(messages.Shoot{ID: id, Position: gamemath.Vec3{}, Direction: gamemath.Vec3{X: 1}})

	bullets := r.DrainBullets()
	if len(bullets) != 1 {
		t.Fatalf("bullets = %+v", bullets)
	}
	if b := bullets[0]; b.OwnerID != "b" || b.Local || b.Direction != (gamemath.Vec3{X: -1}) {
		t.Fatalf("bullet = %+v", b)
	}
}

func TestReconcilerReportHitOwnerOnly(t *testing.T) {
	r, fs, _, id := joined(t)

	tests := []struct {
		name   string
		owner  string
		target string
		want   bool
	}{
		{name: "own bullet", owner: id, target: "b", want: true},
		{name: "someone else's bullet", owner: "b", target: id, want: false},
		{name: "self", owner: id, target: id, want: false},
		{name: "unknown target", owner: id, target: "ghost", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(fs.messages())
			if got := r.ReportHit(tt.owner, tt.target); got != tt.want {
				t.Fatalf("ReportHit = %v, want %v", got, tt.want)
			}
			sent := fs.messages()[before:]
			if !tt.want {
				if len(sent) != 0 {
					t.Fatalf("sent %+v", sent)
				}
				return
			}
			want := messages.Hit{TargetID: tt.target, SourceID: id, Damage: protocol.HitDamage}
			if len(sent) != 1 || sent[0] != want {
				t.Fatalf("sent %+v, want %+v", sent, want)
			}
		})
	}
}

func TestReconcilerHitEventsAndDeath(t *testing.T) {
	r, _, _, id := joined(t)

	for i := 0; i < 10; i++ {
		r.HandleMessage(messages.Hit{TargetID: id, SourceID: "b", Damage: 10})
	}
	if hits := r.DrainHits(); len(hits) != 10 {
		t.Fatalf("hit events = %d, want 10", len(hits))
	}
	local, _ := r.Mirror().Local()
	if !local.IsDead || local.HP != 0 {
		t.Fatalf("local = %+v", local)
	}
	if _, err := r.Shoot(gamemath.Vec3{}, gamemath.Vec3{X: 1}); err != ErrDead {
		t.Fatalf("dead Shoot err = %v", err)
	}
	if r.FlushUpdate() {
		t.Fatalf("dead player sent an update")
	}
}

func TestReconcilerRunOutboundStopsOnCancel(t *testing.T) {
	fs := &fakeSender{}
	r := NewReconciler(fs, ReconcilerOptions{UpdateHz: 200})
	if _, err := r.Join("me"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.RunOutbound(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for len(fs.updates()) == 0 {
		select {
		case <-deadline:
			t.Fatalf("no update sent")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("RunOutbound did not return")
	}
}
