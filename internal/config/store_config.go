package config

import (
	"encoding/json"
	"sort"
)

// StoreScopedValue is a configuration value that is either a single literal
// applied to every store, or a per-store map parsed from a JSON object such
// as {"storeA": "PRODUCTION"}.
type StoreScopedValue struct {
	literal  string
	perStore map[string]string
	keys     []string
}

// ParseStoreScoped interprets the raw configuration string. A value that
// parses as a JSON object becomes a per-store map; anything else is kept as
// a literal.
func ParseStoreScoped(raw string) StoreScopedValue {
	perStore := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &perStore); err == nil && len(perStore) > 0 {
		keys := make([]string, 0, len(perStore))
		for k := range perStore {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return StoreScopedValue{perStore: perStore, keys: keys}
	}
	return StoreScopedValue{literal: raw}
}

// Resolve returns the value for the given store key. A literal applies to
// all stores regardless of key. For a per-store map an unknown or empty key
// resolves to "", which callers must treat as "use the default", never as
// an error.
func (v StoreScopedValue) Resolve(storeKey string) string {
	if v.perStore == nil {
		return v.literal
	}
	if storeKey == "" {
		return ""
	}
	return v.perStore[storeKey]
}

// Default returns the literal, or the first map value when the value is
// per-store. Map iteration order is not stable in Go, so "first" means the
// first key in lexical order.
func (v StoreScopedValue) Default() string {
	if v.perStore == nil {
		return v.literal
	}
	return v.perStore[v.keys[0]]
}

// IsPerStore reports whether the value was parsed as a per-store map.
func (v StoreScopedValue) IsPerStore() bool {
	return v.perStore != nil
}
