package core

import (
	"sort"

	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/automoto/arena-mp/shared/protocol"
	"github.com/yohamta/donburi"
)

// Store is the relay's session store: one donburi entity per player plus an
// id index. It is not safe for concurrent use; the Relay goroutine owns it.
type Store struct {
	world   donburi.World
	index   map[string]donburi.Entity
	joinSeq uint64
}

// HitResult describes the effect of an applied hit.
type HitResult struct {
	Applied int  // hp actually removed after clamping
	Killed  bool // target transitioned to dead on this hit
}

func NewStore() *Store {
	return &Store{
		world: donburi.NewWorld(),
		index: make(map[string]donburi.Entity),
	}
}

// Join inserts a fresh player record for id, overwriting any existing one.
// The team is chosen from the player count before the write, so a re-join
// counts its own previous record.
func (s *Store) Join(id, nickname string) messages.Player {
	p := messages.Player{
		ID:       id,
		Nickname: nickname,
		Position: protocol.SpawnPosition,
		HP:       messages.MaxHP,
		Team:     messages.TeamForCount(len(s.index)),
	}

	entity, ok := s.index[id]
	if !ok || !s.world.Valid(entity) {
		entity = s.world.Create(netcomponents.NetPlayer)
		s.index[id] = entity
	}

	s.joinSeq++
	netcomponents.NetPlayer.Set(s.world.Entry(entity), &netcomponents.NetPlayerData{
		Player:  p,
		JoinSeq: s.joinSeq,
	})
	return p
}

// Update overwrites position and rotation. It reports false for unknown ids.
func (s *Store) Update(id string, pos gamemath.Vec3, rot float64) bool {
	data, ok := s.data(id)
	if !ok {
		return false
	}
	data.Position = pos
	data.Rotation = rot
	return true
}

// Hit applies damage from source to target. It reports false, changing
// nothing, when the target is unknown or already dead.
func (s *Store) Hit(targetID, sourceID string, damage int) (HitResult, bool) {
	target, ok := s.data(targetID)
	if !ok || target.IsDead {
		return HitResult{}, false
	}

	before := target.HP
	target.HP = gamemath.ClampInt(before-damage, 0, messages.MaxHP)
	res := HitResult{Applied: before - target.HP}

	if target.HP == 0 {
		target.IsDead = true
		res.Killed = true
		if source, ok := s.data(sourceID); ok {
			source.Score++
		}
	}
	return res, true
}

// Remove deletes id's record. It reports whether the id was present.
func (s *Store) Remove(id string) bool {
	entity, ok := s.index[id]
	if !ok {
		return false
	}
	delete(s.index, id)
	if s.world.Valid(entity) {
		s.world.Remove(entity)
	}
	return true
}

// Get returns a copy of id's record.
func (s *Store) Get(id string) (messages.Player, bool) {
	data, ok := s.data(id)
	if !ok {
		return messages.Player{}, false
	}
	return data.Player, true
}

// Len returns the number of players.
func (s *Store) Len() int {
	return len(s.index)
}

// Snapshot returns a copy of every record keyed by id.
func (s *Store) Snapshot() map[string]messages.Player {
	out := make(map[string]messages.Player, len(s.index))
	netcomponents.NetPlayer.Each(s.world, func(entry *donburi.Entry) {
		p := netcomponents.NetPlayer.Get(entry).Player
		out[p.ID] = p
	})
	return out
}

// Players returns every record ordered by most recent join.
func (s *Store) Players() []messages.Player {
	type seqPlayer struct {
		seq uint64
		p   messages.Player
	}
	all := make([]seqPlayer, 0, len(s.index))
	netcomponents.NetPlayer.Each(s.world, func(entry *donburi.Entry) {
		d := netcomponents.NetPlayer.Get(entry)
		all = append(all, seqPlayer{seq: d.JoinSeq, p: d.Player})
	})
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })

	out := make([]messages.Player, len(all))
	for i, sp := range all {
		out[i] = sp.p
	}
	return out
}

func (s *Store) data(id string) (*netcomponents.NetPlayerData, bool) {
	entity, ok := s.index[id]
	if !ok || !s.world.Valid(entity) {
		return nil, false
	}
	return netcomponents.NetPlayer.Get(s.world.Entry(entity)), true
}
