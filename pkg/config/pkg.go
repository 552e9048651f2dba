package config

import (
	"github.com/apex/log"
	"github.com/mitchellh/go-homedir"
)

// DefaultDotenvPath is where MustLoadFromRepofsDotenv looks for the daemon's
// dotenv file unless REPOFS_DOTENV points elsewhere.
const DefaultDotenvPath = ".env"

// MustLoadFromRepofsDotenv loads the repofs dotenv configuration and returns
// the Configer for it. A missing dotenv file is tolerated; a malformed one is
// fatal.
func MustLoadFromRepofsDotenv() Configer {
	c := NewDotenvConfig(DefaultDotenvPath)

	if path := c.GetKey("REPOFS_DOTENV"); path != "" {
		c.DotenvPath = path
	}

	if err := c.Load(); err != nil {
		log.Fatalf("Failed loading dotenv config from %s: %s", c.DotenvPath, err)
	}

	return c
}

// ExpandUserPath expands a leading ~ in p to the current user's home
// directory. Paths that fail to expand are returned unchanged.
func ExpandUserPath(p string) string {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return p
	}

	return expanded
}
