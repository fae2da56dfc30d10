package plugin

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/dinojump/internal/game"
)

func writeManifest(t *testing.T, root string, m Manifest) string {
	t.Helper()
	pluginDir := filepath.Join(root, m.Name)
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	manifestBytes, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), manifestBytes, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return pluginDir
}

func TestManager_Discover(t *testing.T) {
	tmpDir := t.TempDir()
	pluginDir := writeManifest(t, tmpDir, Manifest{
		Name:        "test-plugin",
		Version:     "1.0.0",
		Description: "A test plugin",
		Executable:  "test-plugin",
		Events:      []string{"game_over", "high_score"},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := manager.List()
	if len(plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(plugins))
	}

	plugin := plugins[0]
	if plugin.Manifest.Name != "test-plugin" {
		t.Errorf("expected plugin name 'test-plugin', got %q", plugin.Manifest.Name)
	}
	if plugin.Manifest.Description != "A test plugin" {
		t.Errorf("expected description 'A test plugin', got %q", plugin.Manifest.Description)
	}
	if len(plugin.Manifest.Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(plugin.Manifest.Events))
	}
	if plugin.Path != pluginDir {
		t.Errorf("expected path %q, got %q", pluginDir, plugin.Path)
	}
	if want := filepath.Join(pluginDir, "test-plugin"); plugin.Executable != want {
		t.Errorf("expected executable %q, got %q", want, plugin.Executable)
	}
}

func TestManager_Discover_MultiplePluginsSorted(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"plugin-b", "plugin-a"} {
		writeManifest(t, tmpDir, Manifest{Name: name, Version: "1.0.0", Executable: name})
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := manager.List()
	if len(plugins) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(plugins))
	}
	if plugins[0].Manifest.Name != "plugin-a" || plugins[1].Manifest.Name != "plugin-b" {
		t.Errorf("expected plugins sorted by name, got %q, %q", plugins[0].Manifest.Name, plugins[1].Manifest.Name)
	}
}

func TestManager_Discover_SkipsBadManifests(t *testing.T) {
	tmpDir := t.TempDir()

	badDir := filepath.Join(tmpDir, "bad-plugin")
	if err := os.MkdirAll(badDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(badDir, "plugin.json"), []byte("not valid json"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	writeManifest(t, tmpDir, Manifest{Name: "no-exec", Version: "1.0.0"})
	if err := os.MkdirAll(filepath.Join(tmpDir, "no-manifest"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed unexpectedly: %v", err)
	}

	if plugins := manager.List(); len(plugins) != 0 {
		t.Fatalf("expected 0 plugins, got %d", len(plugins))
	}
}

func TestManager_Discover_MissingDir(t *testing.T) {
	for _, dir := range []string{"", "/path/that/does/not/exist"} {
		manager := NewManager(dir)
		if err := manager.Discover(); err != nil {
			t.Fatalf("Discover(%q) failed: %v", dir, err)
		}
		if plugins := manager.List(); len(plugins) != 0 {
			t.Fatalf("expected 0 plugins, got %d", len(plugins))
		}
	}
}

func TestManager_Get(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, Manifest{Name: "my-plugin", Version: "2.0.0", Executable: "my-plugin-bin"})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugin, err := manager.Get("my-plugin")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if plugin.Manifest.Version != "2.0.0" {
		t.Errorf("expected version '2.0.0', got %q", plugin.Manifest.Version)
	}

	if _, err := manager.Get("nonexistent-plugin"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("expected ErrPluginNotFound, got %v", err)
	}
}

func TestManager_Subscribers(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, Manifest{Name: "notify", Executable: "notify", Events: []string{"game_over", "high_score"}})
	writeManifest(t, tmpDir, Manifest{Name: "logger", Executable: "logger", Events: []string{"game_over", "milestone"}})
	writeManifest(t, tmpDir, Manifest{Name: "silent", Executable: "silent"})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	tests := []struct {
		kind game.EventKind
		want []string
	}{
		{game.EventGameOver, []string{"logger", "notify"}},
		{game.EventHighScore, []string{"notify"}},
		{game.EventMilestone, []string{"logger"}},
		{game.EventGameStarted, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			var got []string
			for _, p := range manager.Subscribers(tt.kind) {
				got = append(got, p.Manifest.Name)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Subscribers(%s) = %v, want %v", tt.kind, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Subscribers(%s)[%d] = %q, want %q", tt.kind, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestManager_PluginDir(t *testing.T) {
	pluginDir := "/path/to/plugins"
	manager := NewManager(pluginDir)

	if manager.PluginDir() != pluginDir {
		t.Errorf("expected plugin dir %q, got %q", pluginDir, manager.PluginDir())
	}
}
