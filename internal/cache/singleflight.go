package cache

import "sync"

// call represents an in-flight or completed derivation
type call struct {
	wg   sync.WaitGroup
	val  []byte
	err  error
	dups int
}

// SingleFlight deduplicates concurrent derivations of the same key so the
// KDF runs at most once per cache miss.
type SingleFlight struct {
	mu sync.Mutex
	m  map[string]*call
}

// NewSingleFlight creates a new SingleFlight instance
func NewSingleFlight() *SingleFlight {
	return &SingleFlight{
		m: make(map[string]*call),
	}
}

// Do executes fn only once for concurrent calls with the same key.
// Returns the result and whether this call was shared with others.
func (g *SingleFlight) Do(key string, fn func() ([]byte, error)) ([]byte, error, bool) {
	g.mu.Lock()
	if c, ok := g.m[key]; ok {
		c.dups++
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}
	c := new(call)
	c.wg.Add(1)
	g.m[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	c.wg.Done()

	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()

	return c.val, c.err, c.dups > 0
}

// Forget removes a key from the in-flight map
func (g *SingleFlight) Forget(key string) {
	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()
}
