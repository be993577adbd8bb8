package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	name         string
	updateCalled bool
	deltaTime    float64
	disposed     int
	log          *[]string
	onUpdate     func()
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
	if m.onUpdate != nil {
		m.onUpdate()
	}
}

func (m *MockScene) Draw(screen *ebiten.Image) {}

func (m *MockScene) Dispose() {
	m.disposed++
	if m.log != nil {
		*m.log = append(*m.log, "dispose "+m.name)
	}
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
	// 没有场景时不应 panic
	sm.Update(0.016)
	sm.Draw(nil)
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Update(0.016)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != 0.016 {
		t.Errorf("Expected deltaTime 0.016, got %f", mockScene.deltaTime)
	}
}

// TestSwitchToDisposesPrevious 切换时释放旧场景
func TestSwitchToDisposesPrevious(t *testing.T) {
	sm := NewSceneManager()
	first := &MockScene{}
	sm.SwitchTo(first)
	sm.SwitchTo(&MockScene{})

	if first.disposed != 1 {
		t.Errorf("Expected first scene disposed once, got %d", first.disposed)
	}
}

// TestNavigateDisposesBeforeCreating 旧场景必须在新场景创建之前释放
func TestNavigateDisposesBeforeCreating(t *testing.T) {
	var events []string
	sm := NewSceneManager()
	round := &MockScene{name: "round", log: &events}
	sm.SetSceneFactory(func(req SceneRequest) Scene {
		events = append(events, "create "+req.ID.String())
		return &MockScene{name: req.ID.String(), log: &events}
	})
	sm.SwitchTo(round)

	// 场景在自己的 Update 中请求切换
	round.onUpdate = func() { sm.Navigate(SceneRequest{ID: SceneResults}) }
	sm.Update(0.016)

	want := []string{"dispose round", "create results"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
	if round.disposed != 1 {
		t.Errorf("Expected round disposed exactly once, got %d", round.disposed)
	}
	if cur := sm.GetCurrentScene().(*MockScene); cur.name != "results" {
		t.Errorf("current scene = %s, want results", cur.name)
	}
}

func TestNavigateWithoutFactoryKeepsScene(t *testing.T) {
	sm := NewSceneManager()
	scene := &MockScene{}
	sm.SwitchTo(scene)
	sm.Navigate(SceneRequest{ID: SceneMenu})
	sm.Update(0.016)

	if sm.GetCurrentScene() != scene {
		t.Error("scene should be kept when no factory is set")
	}
}
