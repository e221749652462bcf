package world

import (
	"log/slog"

	"github.com/conquergate/conquergate/internal/model"
)

// CentralPlain is the region every fresh character spawns into
const CentralPlain uint32 = 1002

// DefaultRegionIDs lists the regions created for a default world
var DefaultRegionIDs = []uint32{CentralPlain}

// Registry holds all regions of the world. Regions are created once at
// construction and never destroyed; only their membership mutates.
type Registry struct {
	regions map[uint32]*Region
}

// NewRegistry creates a registry with the given region ids
func NewRegistry(ids []uint32, logger *slog.Logger) *Registry {
	regions := make(map[uint32]*Region, len(ids))
	for _, id := range ids {
		regions[id] = NewRegion(id, logger)
		logger.Info("region initialized", slog.Uint64("region", uint64(id)))
	}
	return &Registry{regions: regions}
}

// Region looks up a region by id
func (r *Registry) Region(id uint32) (*Region, error) {
	region, ok := r.regions[id]
	if !ok {
		return nil, model.ErrRegionNotFound
	}
	return region, nil
}

// RegionFor returns the region an entity's location places it in
func (r *Registry) RegionFor(e model.Entity) (*Region, error) {
	return r.Region(e.Location().MapID)
}
