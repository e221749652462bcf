package world

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/conquergate/conquergate/internal/model"
	"github.com/conquergate/conquergate/internal/protocol"
)

// Region is one partition of the world holding the entities currently
// present in it. Membership is kept as an immutable slice snapshot swapped
// under a writer mutex: range queries on the broadcast path iterate a
// consistent snapshot and never block on or observe a partial mutation.
type Region struct {
	id     uint32
	logger *slog.Logger

	mu      sync.Mutex // serializes writers
	members atomic.Pointer[[]model.Entity]
}

// NewRegion creates an empty region with the given id
func NewRegion(id uint32, logger *slog.Logger) *Region {
	r := &Region{
		id:     id,
		logger: logger.With(slog.String("component", "world"), slog.Uint64("region", uint64(id))),
	}
	empty := make([]model.Entity, 0)
	r.members.Store(&empty)
	return r
}

// ID returns the region's stable numeric id
func (r *Region) ID() uint32 {
	return r.id
}

// Add inserts an entity into the region. Adding an entity that is already
// a member is a no-op.
func (r *Region) Add(e model.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.members.Load()
	for _, m := range current {
		if m.Identity() == e.Identity() {
			return
		}
	}

	next := make([]model.Entity, len(current), len(current)+1)
	copy(next, current)
	next = append(next, e)
	r.members.Store(&next)
}

// Remove deletes an entity from the region and delivers a remove
// notification to every player still in range of the entity's last known
// location. Removing a non-member is a no-op.
func (r *Region) Remove(e model.Entity) {
	last := e.Location()

	r.mu.Lock()
	current := *r.members.Load()
	idx := -1
	for i, m := range current {
		if m.Identity() == e.Identity() {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return
	}

	next := make([]model.Entity, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)
	r.members.Store(&next)
	r.mu.Unlock()

	frame := []byte(protocol.NewLeave(e.Identity()))
	for _, p := range r.playersNear(last, 0) {
		if err := p.Send(frame); err != nil {
			r.logger.Warn("remove broadcast failed",
				slog.Uint64("entity", e.Identity()),
				slog.Uint64("player", p.Identity()),
				slog.String("error", err.Error()))
		}
	}
}

// Entities returns the current membership snapshot
func (r *Region) Entities() []model.Entity {
	return *r.members.Load()
}

// EntitiesInRange returns all members other than the subject whose
// location is within view of the subject's location.
func (r *Region) EntitiesInRange(subject model.Entity) []model.Entity {
	loc := subject.Location()
	var result []model.Entity
	for _, e := range *r.members.Load() {
		if e.Identity() == subject.Identity() {
			continue
		}
		if e.Location().InView(loc) {
			result = append(result, e)
		}
	}
	return result
}

// PlayersInRange returns the player members within view of the subject.
// The includeSelf flag controls whether the subject itself appears in the
// result; movement echo wants the mover included.
func (r *Region) PlayersInRange(subject model.Entity, includeSelf bool) []*model.Player {
	loc := subject.Location()
	var result []*model.Player
	for _, e := range *r.members.Load() {
		p, ok := e.(*model.Player)
		if !ok {
			continue
		}
		if p.Identity() == subject.Identity() {
			if includeSelf {
				result = append(result, p)
			}
			continue
		}
		if p.Location().InView(loc) {
			result = append(result, p)
		}
	}
	return result
}

// playersNear returns players within view of a raw location, excluding
// the given identity (0 excludes nobody: entity identities start well
// above zero).
func (r *Region) playersNear(loc model.Location, exclude uint64) []*model.Player {
	var result []*model.Player
	for _, e := range *r.members.Load() {
		p, ok := e.(*model.Player)
		if !ok || p.Identity() == exclude {
			continue
		}
		if p.Location().InView(loc) {
			result = append(result, p)
		}
	}
	return result
}
