// Package messages defines the wire message variants exchanged between the
// relay and its clients. Every frame is one JSON object whose "type" field
// selects the variant; encoding and decoding live in shared/protocol.
package messages

import "github.com/automoto/arena-mp/shared/gamemath"

// Kind is the wire discriminator.
type Kind string

const (
	KindJoin   Kind = "join"
	KindUpdate Kind = "update"
	KindShoot  Kind = "shoot"
	KindHit    Kind = "hit"
	KindSync   Kind = "sync"
	KindKill   Kind = "kill" // reserved; never emitted by the relay
)

// Message is implemented by every wire variant.
type Message interface {
	Kind() Kind
}

// Join is sent once by a client to create (or reset) its player record.
type Join struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// Update carries the sender's latest predicted pose.
type Update struct {
	ID       string        `json:"id"`
	Position gamemath.Vec3 `json:"position"`
	Rotation float64       `json:"rotation"`
}

// Shoot announces a bullet spawn. Velocity is not networked; observers apply
// the shared bullet speed along Direction.
type Shoot struct {
	ID        string        `json:"id"`
	Position  gamemath.Vec3 `json:"position"`
	Direction gamemath.Vec3 `json:"direction"`
}

// Hit reports damage dealt to TargetID by SourceID. From the relay, Damage is
// the amount actually applied after clamping.
type Hit struct {
	TargetID string `json:"targetId"`
	SourceID string `json:"sourceId"`
	Damage   int    `json:"damage"`
}

// Sync is the full authoritative player table.
type Sync struct {
	Players map[string]Player `json:"players"`
}

// Kill is reserved for an explicit death notice.
type Kill struct {
	KillerID string `json:"killerId"`
	VictimID string `json:"victimId"`
}

func (Join) Kind() Kind   { return KindJoin }
func (Update) Kind() Kind { return KindUpdate }
func (Shoot) Kind() Kind  { return KindShoot }
func (Hit) Kind() Kind    { return KindHit }
func (Sync) Kind() Kind   { return KindSync }
func (Kill) Kind() Kind   { return KindKill }
