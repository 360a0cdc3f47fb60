package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// ComponentCodec converts component payloads between their external form
// (files, snapshots) and the form stored on entities.
type ComponentCodec[T any] interface {
	// GenerateComponentData runs when a component is created.
	GenerateComponentData(data T) (T, error)
	// GenerateEntityComponentDict runs when a component is saved.
	GenerateEntityComponentDict(data T) (T, error)
}

// BaseSystem implements the System contract for components of type T.
// Embed it by value and construct it with NewBaseSystem.
type BaseSystem[T any] struct {
	id        SystemId
	caps      Capability
	paused    bool
	lifecycle Lifecycle
	viewport  SystemId
	entities  EntitySet
	codec     ComponentCodec[T]

	world *World
	log   *zap.Logger
}

// SystemOption configures a BaseSystem.
type SystemOption[T any] func(*BaseSystem[T])

// WithViewport names the viewport responsible for rendering the system's entities.
func WithViewport[T any](viewport SystemId) SystemOption[T] {
	return func(s *BaseSystem[T]) {
		s.viewport = viewport
	}
}

// WithCodec installs load/save transforms for the system's components.
func WithCodec[T any](codec ComponentCodec[T]) SystemOption[T] {
	return func(s *BaseSystem[T]) {
		s.codec = codec
	}
}

// Paused starts the system paused.
func Paused[T any]() SystemOption[T] {
	return func(s *BaseSystem[T]) {
		s.paused = true
	}
}

func NewBaseSystem[T any](id SystemId, caps Capability, opts ...SystemOption[T]) BaseSystem[T] {
	s := BaseSystem[T]{
		id:       id,
		caps:     caps,
		viewport: "default_gameview",
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s *BaseSystem[T]) Id() SystemId {
	return s.id
}

func (s *BaseSystem[T]) Capabilities() Capability {
	return s.caps
}

func (s *BaseSystem[T]) Lifecycle() Lifecycle {
	return s.lifecycle
}

func (s *BaseSystem[T]) Paused() bool {
	return s.paused
}

func (s *BaseSystem[T]) SetPaused(paused bool) {
	s.paused = paused
}

func (s *BaseSystem[T]) Viewport() SystemId {
	return s.viewport
}

func (s *BaseSystem[T]) World() *World {
	return s.world
}

func (s *BaseSystem[T]) Logger() *zap.Logger {
	return s.log
}

func (s *BaseSystem[T]) EntityIds() []EntityId {
	return s.entities.Ids()
}

func (s *BaseSystem[T]) Tracks(id EntityId) bool {
	return s.entities.Has(id)
}

func (s *BaseSystem[T]) EntityCount() int {
	return s.entities.Len()
}

func (s *BaseSystem[T]) SetCapabilities(c Capability) {
	s.caps = c
}

// Update does nothing; systems with per-frame behavior override it.
func (s *BaseSystem[T]) Update(frame *UpdateFrame) error {
	return nil
}

// CreateComponent attaches data to the entity under this system's id and
// starts tracking the entity.
func (s *BaseSystem[T]) CreateComponent(id EntityId, data T) error {
	if s.world == nil {
		return fmt.Errorf("%s: %w", s.id, ErrDetached)
	}
	entity, err := s.world.Entity(id)
	if err != nil {
		return fmt.Errorf("%s: create component: %w", s.id, err)
	}
	if entity.HasComponent(s.id) || s.entities.Has(id) {
		return fmt.Errorf("%s: entity %d: %w", s.id, id, ErrDuplicateComponent)
	}

	stored := data
	if s.codec != nil {
		stored, err = s.codec.GenerateComponentData(data)
		if err != nil {
			return fmt.Errorf("%s: generate component data for entity %d: %w", s.id, id, err)
		}
	}

	entity.SetComponent(s.id, &stored)
	s.entities.Add(id)
	return nil
}

// Component returns a pointer to the stored component of the entity.
func (s *BaseSystem[T]) Component(id EntityId) (*T, error) {
	if s.world == nil {
		return nil, fmt.Errorf("%s: %w", s.id, ErrDetached)
	}
	return ReadComponent[T](s.world, id, s.id)
}

// SaveComponent returns the entity's component in its external form.
func (s *BaseSystem[T]) SaveComponent(id EntityId) (T, error) {
	var zero T
	comp, err := s.Component(id)
	if err != nil {
		return zero, err
	}
	if s.codec == nil {
		return *comp, nil
	}
	out, err := s.codec.GenerateEntityComponentDict(*comp)
	if err != nil {
		return zero, fmt.Errorf("%s: generate component dict for entity %d: %w", s.id, id, err)
	}
	return out, nil
}

func (s *BaseSystem[T]) SaveComponentValue(id EntityId) (any, error) {
	return s.SaveComponent(id)
}

// LoadComponent decodes a payload into T and creates the component from it.
func (s *BaseSystem[T]) LoadComponent(id EntityId, decode func(v any) error) error {
	var data T
	if err := decode(&data); err != nil {
		return fmt.Errorf("%s: decode component for entity %d: %w", s.id, id, err)
	}
	return s.CreateComponent(id, data)
}

// RemoveEntity stops tracking the entity. The stored component is left for
// the caller to dispose of.
func (s *BaseSystem[T]) RemoveEntity(id EntityId) error {
	if !s.entities.Remove(id) {
		return fmt.Errorf("%s: entity %d: %w", s.id, id, ErrEntityNotTracked)
	}
	return nil
}

func (s *BaseSystem[T]) OnInitSystem(world *World) error {
	if world == nil {
		panic("ecs: OnInitSystem called with nil world")
	}
	if s.lifecycle != Uninitialized {
		return s.transitionError("init")
	}
	s.world = world
	s.log = world.Logger().Named(string(s.id))
	s.lifecycle = Initialized
	s.log.Debug("system initialized")
	return nil
}

func (s *BaseSystem[T]) OnAddSystem() error {
	switch s.lifecycle {
	case Initialized, Inactive:
		s.lifecycle = Active
		s.log.Debug("system added")
		return nil
	case Active:
		return nil
	}
	return s.transitionError("add")
}

func (s *BaseSystem[T]) OnRemoveSystem() error {
	switch s.lifecycle {
	case Active, Initialized:
		s.lifecycle = Inactive
		s.log.Debug("system removed")
		return nil
	case Inactive:
		return nil
	}
	return s.transitionError("remove")
}

func (s *BaseSystem[T]) OnDeleteSystem() error {
	if s.lifecycle == Deleted {
		return fmt.Errorf("%s: %w", s.id, ErrSystemDeleted)
	}
	s.lifecycle = Deleted
	s.log.Debug("system deleted")
	return nil
}

func (s *BaseSystem[T]) transitionError(op string) error {
	if s.lifecycle == Deleted {
		return fmt.Errorf("%s: %s: %w", s.id, op, ErrSystemDeleted)
	}
	return fmt.Errorf("%s: %s from %s: %w", s.id, op, s.lifecycle, ErrInvalidLifecycle)
}
