package ecs

// EntityId is the world-assigned handle of an entity. Zero is never allocated.
type EntityId uint32

// Entity holds one opaque component slot per system that manages it.
// Entities are owned by the World; systems only track their ids.
type Entity struct {
	Id         EntityId
	components map[SystemId]any
}

func newEntity(id EntityId) *Entity {
	return &Entity{
		Id:         id,
		components: make(map[SystemId]any, 4),
	}
}

// Component returns the slot stored under the given system id.
func (e *Entity) Component(sys SystemId) (any, bool) {
	c, ok := e.components[sys]
	return c, ok
}

// HasComponent reports whether the entity has a slot for the given system id.
func (e *Entity) HasComponent(sys SystemId) bool {
	_, ok := e.components[sys]
	return ok
}

// SetComponent stores data under the given system id, replacing any previous slot.
func (e *Entity) SetComponent(sys SystemId, data any) {
	e.components[sys] = data
}

// DeleteComponent drops the slot for the given system id.
func (e *Entity) DeleteComponent(sys SystemId) {
	delete(e.components, sys)
}

// SystemIds returns the ids of every system holding a slot on this entity.
func (e *Entity) SystemIds() []SystemId {
	ids := make([]SystemId, 0, len(e.components))
	for id := range e.components {
		ids = append(ids, id)
	}
	return ids
}

// Positioned is implemented by component payloads that carry a position.
// Any system a viewport follows entities through must store such payloads.
type Positioned interface {
	Pos() Vec2
}
