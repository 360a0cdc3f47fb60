package ecs

import "errors"

// Commands provides a buffer for deferred world operations that are executed
// at the end of a frame. This lets systems stop tracking or destroy entities
// while other systems are still iterating over them.
type Commands struct {
	removes  []removeEntityCommand
	destroys []EntityId
	defers   []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func() error
}

type removeEntityCommand struct {
	system SystemId
	entity EntityId
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func() error) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// RemoveEntity queues a RemoveEntity call on the named system.
func (c *Commands) RemoveEntity(system SystemId, entity EntityId) {
	c.removes = append(c.removes, removeEntityCommand{
		system: system,
		entity: entity,
	})
}

// DestroyEntity queues an entity destruction.
func (c *Commands) DestroyEntity(entity EntityId) {
	c.destroys = append(c.destroys, entity)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.removes) + len(c.destroys) + len(c.defers)
}

// Flush applies all commands to the world, resetting the buffer state.
// Every command runs; the returned error joins all failures.
func (c *Commands) Flush(world *World) error {
	var errs []error
	destroyed := make(map[EntityId]bool, len(c.destroys))

	for _, id := range c.destroys {
		if destroyed[id] {
			continue
		}
		if err := world.DestroyEntity(id); err != nil {
			errs = append(errs, err)
		}
		destroyed[id] = true
	}

	for _, cmd := range c.removes {
		if destroyed[cmd.entity] {
			continue
		}
		sys, err := world.System(cmd.system)
		if err == nil {
			err = sys.RemoveEntity(cmd.entity)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	for _, df := range c.defers {
		if err := df.fn(); err != nil {
			errs = append(errs, err)
		}
	}

	c.removes = c.removes[:0]
	c.destroys = c.destroys[:0]
	c.defers = c.defers[:0]
	return errors.Join(errs...)
}
