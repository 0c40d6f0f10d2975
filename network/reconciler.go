package network

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/shared/protocol"
	"github.com/google/uuid"
)

var (
	ErrNotJoined     = errors.New("not joined")
	ErrDead          = errors.New("local player is dead")
	ErrZeroDirection = errors.New("shoot direction has no length")
)

// Sender delivers a message to the relay without blocking.
type Sender interface {
	Send(messages.Message) error
}

// BulletSpawn describes a bullet to create locally. Local is true for bullets
// fired by this client.
type BulletSpawn struct {
	ID        string
	OwnerID   string
	Position  gamemath.Vec3
	Direction gamemath.Vec3
	SpawnedAt time.Time
	Local     bool
}

// ReconcilerOptions tunes a Reconciler. Zero values fall back to the shared
// protocol defaults.
type ReconcilerOptions struct {
	UpdateHz       int
	ResendInterval time.Duration
	EventBuffer    int
	Damage         int
	Now            func() time.Time
}

// Reconciler sits between the input/physics collaborators, the relay
// connection and the render loop. It owns the Mirror and the local pose.
type Reconciler struct {
	sender     Sender
	mirror     *Mirror
	prediction *LocalPrediction

	updateEvery time.Duration
	resendEvery time.Duration
	damage      int
	now         func() time.Time

	bullets chan BulletSpawn
	hits    chan messages.Hit

	// Outbound bookkeeping, guarded by outMu.
	outMu    sync.Mutex
	lastSeq  uint32
	lastSent time.Time
	sentAny  bool
}

func NewReconciler(sender Sender, opts ReconcilerOptions) *Reconciler {
	if opts.UpdateHz <= 0 {
		opts.UpdateHz = protocol.UpdateHz
	}
	if opts.ResendInterval <= 0 {
		opts.ResendInterval = time.Second
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = 64
	}
	if opts.Damage <= 0 {
		opts.Damage = protocol.HitDamage
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Reconciler{
		sender:      sender,
		mirror:      NewMirror(),
		prediction:  NewLocalPrediction(protocol.SpawnPosition, 0),
		updateEvery: time.Second / time.Duration(opts.UpdateHz),
		resendEvery: opts.ResendInterval,
		damage:      opts.Damage,
		now:         opts.Now,
		bullets:     make(chan BulletSpawn, opts.EventBuffer),
		hits:        make(chan messages.Hit, opts.EventBuffer),
	}
}

func (r *Reconciler) Mirror() *Mirror {
	return r.mirror
}

func (r *Reconciler) LocalID() string {
	return r.mirror.LocalID()
}

// Join picks a fresh session id and asks the relay to create the player. The
// local pose is reset to the spawn point.
func (r *Reconciler) Join(nickname string) (string, error) {
	id := uuid.NewString()
	r.mirror.SetLocalID(id)
	r.prediction.Reset(protocol.SpawnPosition, 0)
	r.mirror.SetLocalPose(protocol.SpawnPosition, 0)
	return id, r.sender.Send(messages.Join{ID: id, Nickname: protocol.ClampNickname(nickname)})
}

// HandleMessage applies an inbound relay message. It is the Client's message
// handler and runs on the network reader goroutine.
func (r *Reconciler) HandleMessage(msg messages.Message) {
	r.mirror.Apply(msg)

	switch m := msg.(type) {
	case messages.Shoot:
		if m.ID == r.mirror.LocalID() {
			return
		}
		r.pushBullet(BulletSpawn{
			ID:        uuid.NewString(),
			OwnerID:   m.ID,
			Position:  m.Position,
			Direction: m.Direction.Normalized(),
			SpawnedAt: r.now(),
		})
	case messages.Hit:
		select {
		case r.hits <- m:
		default:
			log.Printf("[client] hit event queue full, dropping hit on %s", m.TargetID)
		}
	}
}

// SetLocalPose records the pose predicted by the physics collaborator.
func (r *Reconciler) SetLocalPose(pos gamemath.Vec3, rot float64) {
	r.prediction.Store(pos, rot)
	r.mirror.SetLocalPose(pos, rot)
}

// Shoot spawns a local bullet immediately and announces it to the relay. The
// bullet exists locally even if the send fails.
func (r *Reconciler) Shoot(pos, dir gamemath.Vec3) (BulletSpawn, error) {
	id := r.mirror.LocalID()
	if id == "" {
		return BulletSpawn{}, ErrNotJoined
	}
	if local, ok := r.mirror.Local(); ok && local.IsDead {
		return BulletSpawn{}, ErrDead
	}
	dir = dir.Normalized()
	if dir == (gamemath.Vec3{}) {
		return BulletSpawn{}, ErrZeroDirection
	}

	b := BulletSpawn{
		ID:        uuid.NewString(),
		OwnerID:   id,
		Position:  pos,
		Direction: dir,
		SpawnedAt: r.now(),
		Local:     true,
	}
	r.pushBullet(b)
	return b, r.sender.Send(messages.Shoot{ID: id, Position: pos, Direction: dir})
}

// ReportHit sends a hit for a bullet that touched targetID. Only the bullet's
// owner reports; every other observer sees the same intersection and must
// stay silent. It reports whether a hit was sent.
func (r *Reconciler) ReportHit(ownerID, targetID string) bool {
	id := r.mirror.LocalID()
	if id == "" || ownerID != id || targetID == id {
		return false
	}
	if target, ok := r.mirror.Get(targetID); !ok || target.IsDead {
		return false
	}
	if err := r.sender.Send(messages.Hit{TargetID: targetID, SourceID: id, Damage: r.damage}); err != nil {
		log.Printf("[client] hit on %s dropped: %v", targetID, err)
		return false
	}
	return true
}

// RunOutbound samples the local pose at the update rate until ctx is done.
func (r *Reconciler) RunOutbound(ctx context.Context) {
	ticker := time.NewTicker(r.updateEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.FlushUpdate()
		}
	}
}

// FlushUpdate sends the local pose if it changed since the last send or the
// resend interval has passed. Unchanged poses are not re-sent every tick;
// updates are idempotent on the relay. It reports whether an update was sent.
func (r *Reconciler) FlushUpdate() bool {
	id := r.mirror.LocalID()
	if id == "" {
		return false
	}
	if local, ok := r.mirror.Local(); ok && local.IsDead {
		return false
	}

	r.outMu.Lock()
	defer r.outMu.Unlock()

	pose := r.prediction.Latest()
	now := r.now()
	if r.sentAny && pose.Seq == r.lastSeq && now.Sub(r.lastSent) < r.resendEvery {
		return false
	}
	err := r.sender.Send(messages.Update{ID: id, Position: pose.Position, Rotation: pose.Rotation})
	if err != nil {
		return false
	}
	r.sentAny = true
	r.lastSeq = pose.Seq
	r.lastSent = now
	return true
}

// DrainBullets returns all pending bullet spawns, non-blocking.
func (r *Reconciler) DrainBullets() []BulletSpawn {
	return drainChan(r.bullets)
}

// DrainHits returns all pending hit events, non-blocking.
func (r *Reconciler) DrainHits() []messages.Hit {
	return drainChan(r.hits)
}

func (r *Reconciler) pushBullet(b BulletSpawn) {
	select {
	case r.bullets <- b:
	default:
		log.Printf("[client] bullet queue full, dropping bullet from %s", b.OwnerID)
	}
}
