package engine

import (
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/faewild/faemaze/core"
)

// Entity is a unique identifier for an entity
type Entity uint64

// Component is a marker interface; components are registered as pointers so
// systems mutate them in place
type Component interface{}

// System is an interface that all systems must implement
type System interface {
	Update(ctx *GameContext, dt time.Duration)
	Priority() int // Lower values run first
}

// World contains all entities and their components.
// Mutation happens from the game loop; the lock exists for the input
// goroutine's read-only HUD queries.
type World struct {
	mu               sync.RWMutex
	nextEntityID     Entity
	entities         map[Entity]map[reflect.Type]Component
	componentsByType map[reflect.Type][]Entity // Reverse index: component type -> entities

	// Spatial index: several visitors may share a tile
	cellIndex map[core.Point]map[Entity]struct{}
	entityPos map[Entity]core.Point

	systems []System
}

// NewWorld creates a new ECS world
func NewWorld() *World {
	return &World{
		nextEntityID:     1,
		entities:         make(map[Entity]map[reflect.Type]Component),
		componentsByType: make(map[reflect.Type][]Entity),
		cellIndex:        make(map[core.Point]map[Entity]struct{}),
		entityPos:        make(map[Entity]core.Point),
	}
}

// CreateEntity creates a new entity and returns its ID
func (w *World) CreateEntity() Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	w.entities[id] = make(map[reflect.Type]Component)
	return id
}

// DestroyEntity removes an entity, its components, and its spatial entry
func (w *World) DestroyEntity(entity Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()

	components, ok := w.entities[entity]
	if !ok {
		return
	}
	for compType := range components {
		w.removeFromTypeIndex(entity, compType)
	}
	delete(w.entities, entity)

	if pos, ok := w.entityPos[entity]; ok {
		delete(w.cellIndex[pos], entity)
		if len(w.cellIndex[pos]) == 0 {
			delete(w.cellIndex, pos)
		}
		delete(w.entityPos, entity)
	}
}

// AddComponent attaches a component to an entity
func (w *World) AddComponent(entity Entity, component Component) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.entities[entity]; !ok {
		return // Entity doesn't exist
	}

	compType := reflect.TypeOf(component)
	w.entities[entity][compType] = component
	w.addToTypeIndex(entity, compType)
}

// GetComponent retrieves a component from an entity
func (w *World) GetComponent(entity Entity, componentType reflect.Type) (Component, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if components, ok := w.entities[entity]; ok {
		if comp, ok := components[componentType]; ok {
			return comp, true
		}
	}
	return nil, false
}

// RemoveComponent detaches a component from an entity
func (w *World) RemoveComponent(entity Entity, componentType reflect.Type) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if components, ok := w.entities[entity]; ok {
		delete(components, componentType)
		w.removeFromTypeIndex(entity, componentType)
	}
}

// HasComponent checks if an entity has a specific component
func (w *World) HasComponent(entity Entity, componentType reflect.Type) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if components, ok := w.entities[entity]; ok {
		_, ok := components[componentType]
		return ok
	}
	return false
}

// GetEntitiesWith returns all entities carrying every given component type,
// sorted by entity ID so system iteration order is deterministic
func (w *World) GetEntitiesWith(componentTypes ...reflect.Type) []Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if len(componentTypes) == 0 {
		return nil
	}

	candidates := w.componentsByType[componentTypes[0]]
	if candidates == nil {
		return nil
	}

	result := make([]Entity, 0, len(candidates))
	for _, entity := range candidates {
		hasAll := true
		for _, compType := range componentTypes[1:] {
			if _, ok := w.entities[entity][compType]; !ok {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, entity)
		}
	}

	// The type index uses swap-removal, so restore creation order here
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// --- Spatial index ---

// SetPosition moves an entity to a tile, maintaining the cell index
func (w *World) SetPosition(entity Entity, p core.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.entities[entity]; !ok {
		return
	}

	if old, ok := w.entityPos[entity]; ok {
		delete(w.cellIndex[old], entity)
		if len(w.cellIndex[old]) == 0 {
			delete(w.cellIndex, old)
		}
	}
	if w.cellIndex[p] == nil {
		w.cellIndex[p] = make(map[Entity]struct{})
	}
	w.cellIndex[p][entity] = struct{}{}
	w.entityPos[entity] = p
}

// Position returns an entity's tile, false if it has none
func (w *World) Position(entity Entity) (core.Point, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	p, ok := w.entityPos[entity]
	return p, ok
}

// EntitiesAt returns every entity on a tile, sorted by ID
func (w *World) EntitiesAt(p core.Point) []Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()

	cell := w.cellIndex[p]
	if len(cell) == 0 {
		return nil
	}
	result := make([]Entity, 0, len(cell))
	for e := range cell {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// --- Systems ---

// AddSystem adds a system to the world, keeping the list priority-sorted
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Update runs all systems in priority order
func (w *World) Update(ctx *GameContext, dt time.Duration) {
	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		system.Update(ctx, dt)
	}
}

// EntityCount returns the number of live entities
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}

// --- Type index maintenance (lock held) ---

func (w *World) addToTypeIndex(entity Entity, componentType reflect.Type) {
	entities := w.componentsByType[componentType]
	for _, e := range entities {
		if e == entity {
			return
		}
	}
	w.componentsByType[componentType] = append(entities, entity)
}

func (w *World) removeFromTypeIndex(entity Entity, componentType reflect.Type) {
	entities := w.componentsByType[componentType]
	for i, e := range entities {
		if e == entity {
			entities[i] = entities[len(entities)-1]
			w.componentsByType[componentType] = entities[:len(entities)-1]
			return
		}
	}
}
