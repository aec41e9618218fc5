package source

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAMLSeed stores every top-level entry of a YAML mapping as its own
// definition. Each value is re-encoded as a standalone YAML document, so
//
//	ship:
//	  speed: 3
//	rock:
//	  speed: 1
//
// yields definitions "ship" and "rock". Returns the number stored.
func LoadYAMLSeed(ctx context.Context, store Store, data []byte) (int, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse seed: %w", err)
	}

	n := 0
	for name, node := range doc {
		body, err := yaml.Marshal(&node)
		if err != nil {
			return n, fmt.Errorf("encode %q: %w", name, err)
		}
		if _, err := store.Put(ctx, name, body); err != nil {
			return n, fmt.Errorf("store %q: %w", name, err)
		}
		n++
	}
	return n, nil
}

// LoadYAMLSeedFile reads path and passes it to LoadYAMLSeed.
func LoadYAMLSeedFile(ctx context.Context, store Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	return LoadYAMLSeed(ctx, store, data)
}
