package config

import (
	"strings"
	"time"
)

// Config is a read-only view over a decoded settings document.
//
// Keys may be dotted paths ("vector.capacity") that walk nested maps. Every
// accessor returns its default when the key is missing or holds a value that
// cannot be converted without loss.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// lookup resolves a dotted key. An exact match on the whole key wins over
// path traversal, so flat documents with dotted keys still work.
func (c Config) lookup(key string) (any, bool) {
	if v, ok := c.data[key]; ok {
		return v, true
	}
	head, rest, found := strings.Cut(key, ".")
	if !found {
		return nil, false
	}
	sub, ok := asMap(c.data[head])
	if !ok {
		return nil, false
	}
	return Config{data: sub}.lookup(rest)
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Section returns the nested map at key as its own Config.
// Missing or non-map values yield an empty Config.
func (c Config) Section(key string) Config {
	v, _ := c.lookup(key)
	m, _ := asMap(v)
	return New(m)
}

// String returns the string value for key, or defaultVal.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.value(key).(string); ok {
		return s
	}
	return defaultVal
}

func (c Config) value(key string) any {
	v, _ := c.lookup(key)
	return v
}

// Duration returns the duration value for key, or defaultVal.
//
// Strings are parsed with time.ParseDuration; bare numbers are seconds.
func (c Config) Duration(key string, defaultVal time.Duration) time.Duration {
	switch val := c.value(key).(type) {
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	case float64:
		return time.Duration(val * float64(time.Second))
	case int:
		return time.Duration(val) * time.Second
	case int64:
		return time.Duration(val) * time.Second
	case time.Duration:
		return val
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal.
func (c Config) Bool(key string, defaultVal bool) bool {
	if b, ok := c.value(key).(bool); ok {
		return b
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal.
// Floats are accepted only when they have no fractional part.
func (c Config) Int(key string, defaultVal int) int {
	switch val := c.value(key).(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	}
	return defaultVal
}

// Float returns the float64 value for key, or defaultVal.
func (c Config) Float(key string, defaultVal float64) float64 {
	switch val := c.value(key).(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	return defaultVal
}

// StringSlice returns the string list for key, or defaultVal if any element
// is not a string.
func (c Config) StringSlice(key string, defaultVal []string) []string {
	switch val := c.value(key).(type) {
	case []string:
		return val
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return defaultVal
			}
			result = append(result, s)
		}
		return result
	}
	return defaultVal
}

// Has reports whether key resolves to a value.
func (c Config) Has(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

// Raw returns the underlying map. It must not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}
