package config

// Configer is the configuration lookup interface the daemon depends on.
// Implementations load key/value pairs from somewhere (dotenv file, map) and
// answer string and int lookups with optional defaults.
type Configer interface {
	LoadFromPath(path string) error
	Load() error
	GetKey(key string) string
	MustGetKey(key string) string
	GetKeyWithDefault(key, defaultValue string) string
	GetIntKey(key string) int
	MustGetIntKey(key string) int
	GetIntKeyWithDefault(key string, defaultValue int) int
}
