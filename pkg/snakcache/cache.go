// Package snakcache memoizes the parsed structured value of each submitted
// field for the duration of one request. Both the validation pass and the
// final statement assembly need the parsed value; the cache guarantees the
// (externally delegated, possibly expensive) parse runs at most once per
// field. A cache lives for exactly one submission and is never shared
// between requests, so it needs no locking.
package snakcache

import "github.com/goliatone/go-wbforms/pkg/datamodel"

// Cache maps field keys to their parsed snak.
type Cache struct {
	snaks map[string]datamodel.Snak
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{snaks: make(map[string]datamodel.Snak)}
}

// Get returns the cached snak for a field key.
func (c *Cache) Get(fieldKey string) (datamodel.Snak, bool) {
	snak, ok := c.snaks[fieldKey]
	return snak, ok
}

// Put stores the parsed snak for a field key.
func (c *Cache) Put(fieldKey string, snak datamodel.Snak) {
	c.snaks[fieldKey] = snak
}

// GetOrParse returns the cached snak for a field key, invoking parse and
// caching its result on the first call. Parse failures are returned without
// being cached, so a later caller sees the same failure rather than a stale
// entry.
func (c *Cache) GetOrParse(fieldKey string, parse func() (datamodel.Snak, error)) (datamodel.Snak, error) {
	if snak, ok := c.snaks[fieldKey]; ok {
		return snak, nil
	}
	snak, err := parse()
	if err != nil {
		return datamodel.Snak{}, err
	}
	c.snaks[fieldKey] = snak
	return snak, nil
}

// Len reports the number of cached fields.
func (c *Cache) Len() int {
	return len(c.snaks)
}
