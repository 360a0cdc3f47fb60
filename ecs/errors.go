package ecs

import "errors"

var (
	ErrEntityNotFound     = errors.New("entity not found")
	ErrComponentNotFound  = errors.New("component not found")
	ErrEntityNotTracked   = errors.New("entity not tracked by system")
	ErrDuplicateComponent = errors.New("entity already has a component for this system")
	ErrSystemNotFound     = errors.New("system not found")
	ErrDuplicateSystem    = errors.New("system id already registered")
	ErrSystemDeleted      = errors.New("system has been deleted")
	ErrNoCurrentMap       = errors.New("no current map")
)

var (
	ErrInvalidLifecycle = errors.New("invalid lifecycle transition")
	ErrDetached         = errors.New("system is not attached to a world")
	ErrComponentType    = errors.New("component has unexpected type")
)
