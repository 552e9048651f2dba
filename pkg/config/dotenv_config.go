package config

import (
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/subosito/gotenv"
)

// DotenvConfig loads configuration from a dotenv file into the process
// environment and resolves keys against os.Getenv. A missing dotenv file is
// not an error; the environment may already carry everything needed.
type DotenvConfig struct {
	DotenvPath string
}

func NewDotenvConfig(path string) *DotenvConfig {
	return &DotenvConfig{DotenvPath: path}
}

func (c *DotenvConfig) LoadFromPath(path string) error {
	c.DotenvPath = path
	return c.Load()
}

func (c *DotenvConfig) Load() error {
	if c.DotenvPath == "" {
		return nil
	}

	if _, err := os.Stat(c.DotenvPath); os.IsNotExist(err) {
		return nil
	}

	return gotenv.Load(c.DotenvPath)
}

func (c *DotenvConfig) GetKey(key string) string {
	return os.Getenv(key)
}

func (c *DotenvConfig) MustGetKey(key string) string {
	val := c.GetKey(key)
	if val == "" {
		log.Fatalf("No such required config key: '%s'", key)
	}

	return val
}

func (c *DotenvConfig) GetKeyWithDefault(key, defaultValue string) string {
	if val := c.GetKey(key); val != "" {
		return val
	}

	return defaultValue
}

func (c *DotenvConfig) GetIntKey(key string) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return 0
	}

	return intVal
}

func (c *DotenvConfig) MustGetIntKey(key string) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		log.Fatalf("Required config key either doesn't exist or isn't an int: '%s': %s", key, err)
	}

	return intVal
}

func (c *DotenvConfig) GetIntKeyWithDefault(key string, defaultValue int) int {
	intVal, err := strconv.Atoi(c.GetKey(key))
	if err != nil {
		return defaultValue
	}

	return intVal
}
