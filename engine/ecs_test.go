package engine

import (
	"reflect"
	"testing"
	"time"

	"github.com/faewild/faemaze/core"
)

type tagComponent struct{ Label string }
type counterComponent struct{ N int }

var (
	tagType     = reflect.TypeOf(&tagComponent{})
	counterType = reflect.TypeOf(&counterComponent{})
)

func TestComponentsMutateInPlace(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.AddComponent(e, &counterComponent{N: 1})

	comp, ok := w.GetComponent(e, counterType)
	if !ok {
		t.Fatal("component not found")
	}
	comp.(*counterComponent).N = 7

	comp, _ = w.GetComponent(e, counterType)
	if got := comp.(*counterComponent).N; got != 7 {
		t.Errorf("N = %d, want 7 (pointer components mutate in place)", got)
	}
}

func TestGetEntitiesWithFiltersAndSorts(t *testing.T) {
	w := NewWorld()

	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()
	w.AddComponent(a, &tagComponent{})
	w.AddComponent(a, &counterComponent{})
	w.AddComponent(b, &tagComponent{})
	w.AddComponent(c, &tagComponent{})
	w.AddComponent(c, &counterComponent{})

	got := w.GetEntitiesWith(tagType, counterType)
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("GetEntitiesWith = %v, want [%d %d]", got, a, c)
	}

	// Removal must not disturb ordering of the rest
	w.DestroyEntity(a)
	got = w.GetEntitiesWith(tagType)
	if len(got) != 2 || got[0] != b || got[1] != c {
		t.Errorf("after destroy = %v, want [%d %d]", got, b, c)
	}
}

func TestSpatialIndexTracksMoves(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	cell := core.Point{X: 2, Y: 3}

	w.SetPosition(a, cell)
	w.SetPosition(b, cell)
	if got := w.EntitiesAt(cell); len(got) != 2 {
		t.Fatalf("EntitiesAt = %v, want both entities", got)
	}

	w.SetPosition(a, core.Point{X: 5, Y: 5})
	if got := w.EntitiesAt(cell); len(got) != 1 || got[0] != b {
		t.Errorf("EntitiesAt after move = %v, want [%d]", got, b)
	}
	if pos, ok := w.Position(a); !ok || (pos != core.Point{X: 5, Y: 5}) {
		t.Errorf("Position = %v, %v", pos, ok)
	}
}

func TestDestroyEntityClearsSpatialEntry(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	cell := core.Point{X: 1, Y: 1}
	w.AddComponent(e, &tagComponent{})
	w.SetPosition(e, cell)

	w.DestroyEntity(e)
	if got := w.EntitiesAt(cell); len(got) != 0 {
		t.Errorf("EntitiesAt after destroy = %v, want empty", got)
	}
	if got := w.GetEntitiesWith(tagType); len(got) != 0 {
		t.Errorf("GetEntitiesWith after destroy = %v, want empty", got)
	}
	if w.EntityCount() != 0 {
		t.Errorf("EntityCount = %d, want 0", w.EntityCount())
	}
}

type orderedSystem struct {
	priority int
	order    *[]int
}

func (s *orderedSystem) Priority() int { return s.priority }
func (s *orderedSystem) Update(ctx *GameContext, dt time.Duration) {
	*s.order = append(*s.order, s.priority)
}

func TestSystemsRunInPriorityOrder(t *testing.T) {
	w := NewWorld()
	var order []int
	w.AddSystem(&orderedSystem{priority: 40, order: &order})
	w.AddSystem(&orderedSystem{priority: 10, order: &order})
	w.AddSystem(&orderedSystem{priority: 25, order: &order})

	w.Update(nil, time.Millisecond)
	want := []int{10, 25, 40}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestMockTimeProviderAdvances(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if !mock.Now().Equal(start) {
		t.Fatalf("Now = %v, want %v", mock.Now(), start)
	}
	mock.Advance(90 * time.Second)
	if got := mock.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Errorf("Now after advance = %v", got)
	}
}
