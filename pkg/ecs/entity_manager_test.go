package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if em.Count() != 2 {
		t.Errorf("Count() = %d, want 2", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("Velocity component should not be found")
	}
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("HasComponent should report the position component")
	}
}

func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})
	em.RemoveComponent(id, reflect.TypeOf(&testPositionComponent{}))

	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Component should have been removed")
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)
	if !em.Exists(id) {
		t.Error("Entity should survive until RemoveMarkedEntities")
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("RemoveMarkedEntities() = %d, want 1", removed)
	}
	if em.Exists(id) {
		t.Error("Entity should be removed")
	}

	// 重复标记不会重复计数
	em.DestroyEntity(id)
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("RemoveMarkedEntities() = %d, want 0", removed)
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()
	a := em.CreateEntity()
	b := em.CreateEntity()
	c := em.CreateEntity()
	em.AddComponent(a, &testPositionComponent{})
	em.AddComponent(b, &testPositionComponent{})
	em.AddComponent(b, &testVelocityComponent{})
	em.AddComponent(c, &testVelocityComponent{})

	if got := GetEntitiesWith1[*testPositionComponent](em); !reflect.DeepEqual(got, []EntityID{a, b}) {
		t.Errorf("GetEntitiesWith1 = %v, want [%d %d]", got, a, b)
	}
	if got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em); !reflect.DeepEqual(got, []EntityID{b}) {
		t.Errorf("GetEntitiesWith2 = %v, want [%d]", got, b)
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	em.CreateEntity()
	em.CreateEntity()
	em.Clear()
	if em.Count() != 0 {
		t.Errorf("Count() after Clear = %d, want 0", em.Count())
	}
}
