package network

import (
	"sync"

	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/messages"
)

// Mirror is the client's copy of the relay's player table plus the id of the
// locally controlled player. Incoming messages only ever replace entries, so
// the render loop may take a Snapshot at any time.
type Mirror struct {
	mu      sync.RWMutex
	localID string
	players map[string]messages.Player

	// Pose authored locally; wins over anything the relay says about the
	// local player's position or rotation.
	localPos gamemath.Vec3
	localRot float64
}

func NewMirror() *Mirror {
	return &Mirror{players: make(map[string]messages.Player)}
}

func (m *Mirror) SetLocalID(id string) {
	m.mu.Lock()
	m.localID = id
	m.mu.Unlock()
}

func (m *Mirror) LocalID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.localID
}

// SetLocalPose writes the predicted pose into the local entry.
func (m *Mirror) SetLocalPose(pos gamemath.Vec3, rot float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.localPos, m.localRot = pos, rot
	if p, ok := m.players[m.localID]; ok {
		p.Position, p.Rotation = pos, rot
		m.players[m.localID] = p
	}
}

// Apply folds one relay message into the mirror.
func (m *Mirror) Apply(msg messages.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch v := msg.(type) {
	case messages.Join:
		m.players[v.ID] = m.withLocalPose(messages.Player{
			ID:       v.ID,
			Nickname: v.Nickname,
			Position: gamemath.Vec3{X: 0, Y: 1, Z: 0},
			HP:       messages.MaxHP,
			Team:     messages.TeamForCount(len(m.players)),
		})
	case messages.Update:
		p, ok := m.players[v.ID]
		if !ok || v.ID == m.localID {
			return
		}
		p.Position, p.Rotation = v.Position, v.Rotation
		m.players[v.ID] = p
	case messages.Hit:
		m.applyHit(v)
	case messages.Sync:
		next := make(map[string]messages.Player, len(v.Players))
		for id, p := range v.Players {
			next[id] = m.withLocalPose(p)
		}
		m.players = next
	default:
		// shoot carries no player state; kill is reserved.
	}
}

func (m *Mirror) applyHit(h messages.Hit) {
	target, ok := m.players[h.TargetID]
	if !ok || target.IsDead {
		return
	}
	target.HP = gamemath.ClampInt(target.HP-h.Damage, 0, messages.MaxHP)
	if target.HP == 0 {
		target.IsDead = true
		if h.SourceID == h.TargetID {
			target.Score++
		} else if src, ok := m.players[h.SourceID]; ok {
			src.Score++
			m.players[h.SourceID] = src
		}
	}
	m.players[h.TargetID] = target
}

func (m *Mirror) withLocalPose(p messages.Player) messages.Player {
	if p.ID == m.localID && m.localID != "" {
		p.Position, p.Rotation = m.localPos, m.localRot
	}
	return p
}

// Snapshot returns a copy of every mirrored player.
func (m *Mirror) Snapshot() map[string]messages.Player {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return messages.CloneSync(m.players).Players
}

// Local returns the local player's entry once the relay has announced it.
func (m *Mirror) Local() (messages.Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[m.localID]
	return p, ok
}

func (m *Mirror) Get(id string) (messages.Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	return p, ok
}
