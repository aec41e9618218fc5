package rescache

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/safevec/pkg/safevec/source"
)

// Decoder turns a stored definition into a value.
type Decoder[V any] func(name string, data []byte) (V, error)

// SourceLoader loads definitions from store and decodes them.
func SourceLoader[V any](store source.Store, decode Decoder[V]) Loader[V] {
	return func(ctx context.Context, name string) (V, error) {
		data, err := store.Get(ctx, name)
		if err != nil {
			var zero V
			return zero, err
		}
		return decode(name, data)
	}
}

// DecodeYAML decodes a YAML definition into a new T.
func DecodeYAML[T any](name string, data []byte) (*T, error) {
	v := new(T)
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return v, nil
}
