// Package rescache provides a load-once cache of named resources.
//
// A Cache resolves a name through its Loader the first time it is looked up
// and returns the same value for every later lookup until Flush:
//
//	models := rescache.New(rescache.SourceLoader(store, rescache.DecodeYAML[Model]))
//
//	ship, err := models.Lookup(ctx, "ship")
//	if errors.Is(err, rescache.ErrNotFound) {
//	    // unknown model, or its definition failed to load
//	}
//
// Failed loads are not cached; the next lookup tries again.
//
// Flush drops every value, closing those that implement io.Closer. Values
// handed out earlier must not be used after a Flush.
//
// # Thread Safety
//
// All Cache methods are safe for concurrent use. The loader runs at most once
// per name even under concurrent lookups.
package rescache
