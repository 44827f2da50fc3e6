// Package kvstore defines the key-value capability the guest store runs
// against. Production uses the in-memory implementation; tests can inject
// whatever satisfies the interface.
package kvstore

// Store is a flat string key-value store
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}
