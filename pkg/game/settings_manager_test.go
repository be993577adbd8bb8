package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.ReducedMotion {
		t.Error("ReducedMotion: got true, want false")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if !settings.AssistantEnabled {
		t.Error("AssistantEnabled: got false, want true")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	sm.SetReducedMotion(true)
	if !sm.ReducedMotion() {
		t.Error("in-memory setting should be applied")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
}

// TestSettingsSaveAndLoad 测试保存后重新加载
func TestSettingsSaveAndLoad(t *testing.T) {
	m := openTestGdata(t, "test_pratica_settings")

	sm := NewSettingsManager(m)
	sm.SetReducedMotion(true)
	sm.SetFullscreen(true)
	sm.SetAssistantEnabled(false)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(m)
	got := reloaded.GetSettings()
	if !got.ReducedMotion || !got.Fullscreen || got.AssistantEnabled {
		t.Errorf("reloaded settings = %+v", got)
	}
}

// TestSettingsLoadCorruptedData 测试损坏的数据回退到默认值
func TestSettingsLoadCorruptedData(t *testing.T) {
	m := openTestGdata(t, "test_pratica_settings_corrupt")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("reducedMotion: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := &SettingsManager{gdataManager: m, settings: DefaultSettings()}
	if err := sm.Load(); err == nil {
		t.Error("Load() should fail on corrupted YAML")
	}
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("settings after failed load = %+v, want defaults", sm.GetSettings())
	}
}
