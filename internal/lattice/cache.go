package lattice

import (
	"sync"

	"github.com/san-kum/beamline/internal/track"
)

// Cache holds built tracking parameters per element, so the conversion
// from lattice properties runs once per element configuration and the
// result is reused across all particles and turns. The build path is
// mutex-guarded; during tracking the returned Params are read-only and
// need no locking.
type Cache struct {
	mu     sync.RWMutex
	params map[*Element]*track.Params
}

func NewCache() *Cache {
	return &Cache{params: make(map[*Element]*track.Params)}
}

// Params returns the cached parameters for el, building them on first
// use.
func (c *Cache) Params(el *Element) (*track.Params, error) {
	c.mu.RLock()
	p, ok := c.params[el]
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.params[el]; ok {
		return p, nil
	}
	p, err := BuildParams(el)
	if err != nil {
		return nil, err
	}
	c.params[el] = p
	return p, nil
}

// Invalidate drops the cached parameters for el, forcing a rebuild the
// next time it is tracked. Call it after changing element properties.
func (c *Cache) Invalidate(el *Element) {
	c.mu.Lock()
	delete(c.params, el)
	c.mu.Unlock()
}
