package network

import (
	"sync"

	"github.com/automoto/arena-mp/shared/gamemath"
)

// PoseRecord is one locally predicted pose.
type PoseRecord struct {
	Seq      uint32
	Position gamemath.Vec3
	Rotation float64
}

// LocalPrediction holds the latest pose written by the physics collaborator.
// Seq advances only when the pose actually changes, so the outbound loop can
// tell whether there is anything new to send.
type LocalPrediction struct {
	mu   sync.RWMutex
	last PoseRecord
}

func NewLocalPrediction(pos gamemath.Vec3, rot float64) *LocalPrediction {
	return &LocalPrediction{last: PoseRecord{Position: pos, Rotation: rot}}
}

// Store records a pose and returns the resulting record.
func (lp *LocalPrediction) Store(pos gamemath.Vec3, rot float64) PoseRecord {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.last.Position == pos && lp.last.Rotation == rot {
		return lp.last
	}
	lp.last = PoseRecord{Seq: lp.last.Seq + 1, Position: pos, Rotation: rot}
	return lp.last
}

// Reset replaces the pose and advances Seq even if nothing changed. Used after
// a respawn so the new pose is always announced.
func (lp *LocalPrediction) Reset(pos gamemath.Vec3, rot float64) {
	lp.mu.Lock()
	lp.last = PoseRecord{Seq: lp.last.Seq + 1, Position: pos, Rotation: rot}
	lp.mu.Unlock()
}

// Latest returns the newest pose.
func (lp *LocalPrediction) Latest() PoseRecord {
	lp.mu.RLock()
	defer lp.mu.RUnlock()
	return lp.last
}
