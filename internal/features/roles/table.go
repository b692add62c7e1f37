package roles

import (
	"slices"
	"sort"
)

// Role is implemented by the role identifiers of each scope kind. Team
// services are generic over it so workspace and project teams share one
// lifecycle.
type Role interface {
	~string

	IsValid() bool
	Level() int
	HasPermission(permission Permission) bool
	CanViewMembers() bool
	CanInviteMembers() bool
	CanManageMembers() bool
	IsTop() bool
}

// Definition describes one role of a universe.
type Definition[R ~string] struct {
	ID          R            `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
	Level       int          `json:"level"`
}

type entry struct {
	name        string
	description string
	level       int
	permissions map[Permission]struct{}
}

// table is built once at package init and never mutated afterwards.
type table[R ~string] struct {
	entries map[R]entry
	top     R
}

func newTable[R ~string](definitions ...Definition[R]) table[R] {
	t := table[R]{entries: make(map[R]entry, len(definitions))}

	topLevel := 0
	for _, definition := range definitions {
		permissions := make(map[Permission]struct{}, len(definition.Permissions))
		for _, permission := range definition.Permissions {
			permissions[permission] = struct{}{}
		}

		t.entries[definition.ID] = entry{
			name:        definition.Name,
			description: definition.Description,
			level:       definition.Level,
			permissions: permissions,
		}

		if definition.Level > topLevel {
			topLevel = definition.Level
			t.top = definition.ID
		}
	}

	return t
}

func (t table[R]) has(role R, permission Permission) bool {
	e, ok := t.entries[role]
	if !ok {
		return false
	}

	_, ok = e.permissions[permission]
	return ok
}

func (t table[R]) level(role R) int {
	return t.entries[role].level
}

func (t table[R]) isValid(role R) bool {
	_, ok := t.entries[role]
	return ok
}

// definitions returns copies ordered from the highest level down.
func (t table[R]) definitions() []Definition[R] {
	result := make([]Definition[R], 0, len(t.entries))

	for id, e := range t.entries {
		permissions := make([]Permission, 0, len(e.permissions))
		for permission := range e.permissions {
			permissions = append(permissions, permission)
		}
		slices.Sort(permissions)

		result = append(result, Definition[R]{
			ID:          id,
			Name:        e.name,
			Description: e.description,
			Permissions: permissions,
			Level:       e.level,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Level > result[j].Level
	})

	return result
}
