package probe

// Environment is the shared mutable context handed to every source during a
// run. It is deliberately unsynchronized: the pipeline interleaves sources on
// one logical goroutine, so only one source touches it at any suspension-free
// instant. Callers that reuse an Environment across runs keep whatever the
// sources cached in it; pass a fresh Environment to start clean.
type Environment struct {
	stash    map[string]any
	lastGood map[string]any
}

// NewEnvironment returns an empty shared context.
func NewEnvironment() *Environment {
	return &Environment{
		stash:    make(map[string]any),
		lastGood: make(map[string]any),
	}
}

// Stash caches an intermediate value under key for later stages or sources.
func (e *Environment) Stash(key string, value any) {
	if e == nil {
		return
	}
	e.stash[key] = value
}

// Fetch returns a previously stashed value.
func (e *Environment) Fetch(key string) (any, bool) {
	if e == nil {
		return nil, false
	}
	value, ok := e.stash[key]
	return value, ok
}

// RememberGood records a last-known-good value for key. Sources that suffer
// transient zero readings store their most recent non-empty measurement here
// and fall back to it on the next run. The slot survives as long as the
// Environment does and resets with a fresh Environment.
func (e *Environment) RememberGood(key string, value any) {
	if e == nil || value == nil {
		return
	}
	e.lastGood[key] = value
}

// LastGood returns the last-known-good value recorded for key.
func (e *Environment) LastGood(key string) (any, bool) {
	if e == nil {
		return nil, false
	}
	value, ok := e.lastGood[key]
	return value, ok
}
