package ecs

// SystemId names a system's slot in every entity's component mapping.
type SystemId string

const DefaultSystemId SystemId = "default_id"

// Capability tags what a system can take part in.
type Capability uint8

const (
	// CanUpdate systems are ticked by the Scheduler every frame.
	CanUpdate Capability = 1 << iota
	// CanRender systems receive render-only frames when a camera moves.
	CanRender
)

func (c Capability) Has(other Capability) bool {
	return c&other == other
}

func (c Capability) String() string {
	switch c {
	case 0:
		return "none"
	case CanUpdate:
		return "update"
	case CanRender:
		return "render"
	case CanUpdate | CanRender:
		return "update|render"
	}
	return "unknown"
}

// Lifecycle is the position of a system in its state machine:
//
//	Uninitialized -> Initialized -> Active <-> Inactive -> Deleted
type Lifecycle uint8

const (
	Uninitialized Lifecycle = iota
	Initialized
	Active
	Inactive
	Deleted
)

func (l Lifecycle) String() string {
	switch l {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// System represents a behavior that owns one kind of component across many
// entities. Most implementations embed BaseSystem and override the hooks
// they care about, calling through to the embedded version.
type System interface {
	Id() SystemId
	Capabilities() Capability
	Lifecycle() Lifecycle
	Paused() bool

	// EntityIds lists the entities holding a component for this system in
	// the order they were added.
	EntityIds() []EntityId
	Tracks(id EntityId) bool
	RemoveEntity(id EntityId) error

	// Update advances the system by frame.DeltaTime. A frame with RenderOnly
	// set asks the system to recompute visuals without advancing time.
	Update(frame *UpdateFrame) error

	OnInitSystem(world *World) error
	OnAddSystem() error
	OnRemoveSystem() error
	OnDeleteSystem() error
}

// PersistentSystem is implemented by systems whose components can be saved
// and restored without knowing their concrete payload type.
type PersistentSystem interface {
	System
	SaveComponentValue(id EntityId) (any, error)
	LoadComponent(id EntityId, decode func(v any) error) error
}

// ShouldUpdate reports whether the scheduler ticks the system this frame.
// Paused systems are skipped even when they can update.
func ShouldUpdate(s System) bool {
	return s.Lifecycle() == Active && s.Capabilities().Has(CanUpdate) && !s.Paused()
}

// ShouldRender reports whether the system takes part in a render-only pass.
func ShouldRender(s System) bool {
	return s.Lifecycle() == Active && s.Capabilities().Has(CanRender)
}
