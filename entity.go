package gwr

import "strings"

// Entity is a named, identified node in the simulation tree: the unit of
// naming and tracing. It is immutable after creation and lives for the
// duration of the engine that created it.
type Entity struct {
	id     Id
	name   string
	parent *Entity
}

// ID returns the entity's unique identifier.
func (e *Entity) ID() Id { return e.id }

// Name returns the entity's name, unique only among its siblings.
func (e *Entity) Name() string { return e.name }

// Parent returns the entity's parent, or nil for the root entity.
func (e *Entity) Parent() *Entity { return e.parent }

// Path renders the full, "::"-joined path from the root entity to this one,
// used in diagnostics (e.g. "top::source").
func (e *Entity) Path() string {
	if e.parent == nil {
		return e.name
	}
	var parts []string
	for n := e; n != nil; n = n.parent {
		parts = append(parts, n.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "::")
}
