package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/pratica/pkg/components"
	"github.com/decker502/pratica/pkg/ecs"
)

func TestConfettiBurstCreatesParticles(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := NewConfettiSystem(em, rand.New(rand.NewSource(1)))

	cs.Burst(640, 432, 120, 70)

	ids := ecs.GetEntitiesWith2[*components.ConfettiComponent, *components.LifetimeComponent](em)
	if len(ids) != 120 {
		t.Fatalf("Expected 120 confetti entities, got %d", len(ids))
	}
	for _, id := range ids {
		c, _ := ecs.GetComponent[*components.ConfettiComponent](em, id)
		// 70° 扇形全部朝上
		if c.VelocityY >= 0 {
			t.Errorf("Entity %d launched downward: vy=%f", id, c.VelocityY)
		}
	}
	if !cs.Active() {
		t.Error("Active() should be true right after a burst")
	}
}

func TestConfettiFallsAndExpires(t *testing.T) {
	em := ecs.NewEntityManager()
	cs := NewConfettiSystem(em, rand.New(rand.NewSource(2)))
	lifetime := NewLifetimeSystem(em)

	cs.Burst(100, 100, 5, 70)
	id := ecs.GetEntitiesWith1[*components.ConfettiComponent](em)[0]
	c, _ := ecs.GetComponent[*components.ConfettiComponent](em, id)
	vy := c.VelocityY

	cs.Update(0.1)
	if c.VelocityY <= vy {
		t.Errorf("Gravity should increase vy: before=%f after=%f", vy, c.VelocityY)
	}

	// 最长寿命 2.8 秒
	for i := 0; i < 200; i++ {
		cs.Update(1.0 / 60)
		lifetime.Update(1.0 / 60)
		em.RemoveMarkedEntities()
	}
	if cs.Active() {
		t.Error("All confetti should have expired")
	}
}
