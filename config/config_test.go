package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default config failed validation: %v", err)
	}
	if c.Addr != ":5000" || c.Backend != BackendUSB || c.FPS != 15 {
		t.Errorf("Unexpected defaults: %+v", c)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Backend = "v4l2" }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"quality too low", func(c *Config) { c.JPEGQuality = 0 }},
		{"quality too high", func(c *Config) { c.JPEGQuality = 101 }},
	}
	for _, tc := range cases {
		c := Default()
		tc.mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("Expected %s to fail validation", tc.name)
		}
	}
}

// TestConfigFromFilePartial verifies fields absent from the file keep
// their defaults.
func TestConfigFromFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"backend": "fake", "fps": 30}`), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := configFromFile(path)
	if err != nil {
		t.Fatalf("Loading config: %v", err)
	}
	if c.Backend != BackendFake || c.FPS != 30 {
		t.Errorf("Expected fake backend at 30fps, got %q at %d", c.Backend, c.FPS)
	}
	if c.Width != 640 || c.JPEGQuality != 80 {
		t.Errorf("Defaults not preserved: %+v", c)
	}
}

func TestConfigFromFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"backend": `), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := configFromFile(path); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestConfigFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"fps": -1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := configFromFile(path); err == nil {
		t.Error("Expected a validation error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := Load(ctx, filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

// TestLoadWatchesFile verifies the global snapshot follows edits to the
// config file, and that a reload that fails to parse keeps the previous
// snapshot.
func TestLoadWatchesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"fps": 10}`), 0644); err != nil {
		t.Fatal(err)
	}

	defer Set(Default())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := Load(ctx, path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := Get().FPS; got != 10 {
		t.Fatalf("Expected FPS 10 after load, got %d", got)
	}

	// A broken rewrite must not disturb the running config.
	if err := os.WriteFile(path, []byte(`{"fps": `), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if got := Get().FPS; got != 10 {
		t.Fatalf("Config changed after a failed reload: FPS %d", got)
	}

	// Rewrite until the watcher picks up the new value. The watch is
	// registered asynchronously, so a single write can land too early.
	deadline := time.Now().Add(3 * time.Second)
	for Get().FPS != 20 {
		if time.Now().After(deadline) {
			t.Fatal("Config change was not picked up")
		}
		if err := os.WriteFile(path, []byte(`{"fps": 20}`), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
