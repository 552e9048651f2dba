package config

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/apex/log"
)

// MapConfig answers lookups from a fixed map. Used in tests and for daemons
// that are configured programmatically.
type MapConfig struct {
	mu           sync.RWMutex
	configValues map[string]string
}

func NewMapConfig(entries map[string]string) *MapConfig {
	c := &MapConfig{configValues: make(map[string]string)}

	for key, entry := range entries {
		c.configValues[key] = entry
	}

	return c
}

func (c *MapConfig) LoadFromPath(_ string) error {
	return fmt.Errorf("LoadFromPath not supported for MapConfig")
}

func (c *MapConfig) Load() error {
	return nil
}

func (c *MapConfig) SetKey(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configValues[key] = value
}

func (c *MapConfig) GetKey(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.configValues[key]
}

func (c *MapConfig) MustGetKey(key string) string {
	val := c.GetKey(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func (c *MapConfig) GetKeyWithDefault(key, defaultValue string) string {
	if val := c.GetKey(key); val != "" {
		return val
	}

	return defaultValue
}

func (c *MapConfig) GetIntKey(key string) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return 0
	}

	return intVal
}

func (c *MapConfig) MustGetIntKey(key string) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		log.Fatalf("Required config key either doesn't exist or isn't an int: '%s': %s", key, err)
	}

	return intVal
}

func (c *MapConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}
