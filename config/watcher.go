package config

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

var (
	gLock   sync.RWMutex
	gConfig = Default()
)

func configFromFile(path string) (*Config, error) {
	// Decode over a copy of the defaults so absent fields keep their
	// default values.
	config := Default()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p := json.NewDecoder(f)
	if err := p.Decode(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	log.Infof("Loaded configuration: %v", spew.Sdump(config))
	return config, nil
}

func Get() *Config {
	gLock.RLock()
	defer gLock.RUnlock()
	return gConfig
}

// Set replaces the global configuration. Used by binaries that configure
// through flags only, and by tests.
func Set(c *Config) {
	gLock.Lock()
	defer gLock.Unlock()
	gConfig = c
}

func waitForChange(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-watcher.Events:
	}
	// Editors often replace the file with a rename + write pair; settle
	// before rereading.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Second / 10):
	}
	return ctx.Err()
}

// Load reads the config file and installs it as the global snapshot, then
// watches the file and reloads on change. A reload that fails to parse or
// validate keeps the previous snapshot.
func Load(ctx context.Context, path string) error {
	config, err := configFromFile(path)
	if err != nil {
		return err
	}
	Set(config)
	go func() {
		for ctx.Err() == nil {
			if err := waitForChange(ctx, path); err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Errorf("Error waiting for config change: %v", err)
				time.Sleep(time.Second)
				continue
			}

			config, err := configFromFile(path)
			if err != nil {
				log.Errorf("Failed to load new config: %v", err)
				continue
			}
			Set(config)
		}
	}()
	return nil
}
