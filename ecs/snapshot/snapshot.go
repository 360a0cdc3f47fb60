// Package snapshot saves and restores entity components as YAML using each
// system's save and load hooks.
package snapshot

import (
	"errors"
	"fmt"
	"slices"

	"github.com/plus3/tileview/ecs"
	"gopkg.in/yaml.v3"
)

var ErrUnknownSystem = errors.New("component belongs to an unknown or non-persistent system")

type document struct {
	Entities []entityDoc `yaml:"entities"`
}

type entityDoc struct {
	Id         ecs.EntityId         `yaml:"id"`
	Components map[ecs.SystemId]any `yaml:"components"`
}

type loadDocument struct {
	Entities []struct {
		Id         ecs.EntityId               `yaml:"id"`
		Components map[ecs.SystemId]yaml.Node `yaml:"components"`
	} `yaml:"entities"`
}

// Save encodes every component of the given entities.
func Save(world *ecs.World, ids []ecs.EntityId) ([]byte, error) {
	doc := document{Entities: make([]entityDoc, 0, len(ids))}
	for _, id := range ids {
		entity, err := world.Entity(id)
		if err != nil {
			return nil, err
		}
		ed := entityDoc{Id: id, Components: make(map[ecs.SystemId]any)}
		for _, sysId := range sortedIds(entity.SystemIds()) {
			sys, err := persistent(world, sysId)
			if err != nil {
				return nil, fmt.Errorf("save entity %d: %w", id, err)
			}
			data, err := sys.SaveComponentValue(id)
			if err != nil {
				return nil, fmt.Errorf("save entity %d: %w", id, err)
			}
			ed.Components[sysId] = data
		}
		doc.Entities = append(doc.Entities, ed)
	}
	return yaml.Marshal(&doc)
}

// Load creates one new entity per saved entity and recreates its components.
// It returns the new ids in document order. An entity that fails to load is
// destroyed again, so the ids returned are exactly the entities left behind.
func Load(world *ecs.World, data []byte) ([]ecs.EntityId, error) {
	var doc loadDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	ids := make([]ecs.EntityId, 0, len(doc.Entities))
	for _, saved := range doc.Entities {
		id := world.CreateEntity()
		keys := make([]ecs.SystemId, 0, len(saved.Components))
		for sysId := range saved.Components {
			keys = append(keys, sysId)
		}
		if err := loadComponents(world, id, saved.Components, sortedIds(keys)); err != nil {
			err = fmt.Errorf("load entity %d: %w", saved.Id, err)
			if derr := world.DestroyEntity(id); derr != nil {
				err = errors.Join(err, derr)
			}
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func loadComponents(world *ecs.World, id ecs.EntityId, components map[ecs.SystemId]yaml.Node, order []ecs.SystemId) error {
	for _, sysId := range order {
		sys, err := persistent(world, sysId)
		if err != nil {
			return err
		}
		node := components[sysId]
		if err := sys.LoadComponent(id, node.Decode); err != nil {
			return err
		}
	}
	return nil
}

func persistent(world *ecs.World, id ecs.SystemId) (ecs.PersistentSystem, error) {
	sys, err := world.System(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownSystem)
	}
	p, ok := sys.(ecs.PersistentSystem)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownSystem)
	}
	return p, nil
}

func sortedIds(ids []ecs.SystemId) []ecs.SystemId {
	slices.Sort(ids)
	return ids
}
