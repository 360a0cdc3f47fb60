package ecs

// WorldStats is a point-in-time summary of a world.
type WorldStats struct {
	EntityCount int
	SystemCount int
	HasMap      bool
	CurrentMap  SystemId
	Systems     []SystemInfo
}

// SystemInfo describes one registered system.
type SystemInfo struct {
	Id           SystemId
	Lifecycle    Lifecycle
	Capabilities Capability
	Paused       bool
	EntityCount  int
}

// CollectStats gathers statistics about the world and its systems.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		EntityCount: w.entities.Len(),
		SystemCount: len(w.order),
		Systems:     make([]SystemInfo, 0, len(w.order)),
	}
	if m, ok := w.currentMap.Get(); ok {
		stats.HasMap = true
		stats.CurrentMap = m.Id()
	}
	for _, sys := range w.Systems() {
		stats.Systems = append(stats.Systems, SystemInfo{
			Id:           sys.Id(),
			Lifecycle:    sys.Lifecycle(),
			Capabilities: sys.Capabilities(),
			Paused:       sys.Paused(),
			EntityCount:  len(sys.EntityIds()),
		})
	}
	return stats
}
