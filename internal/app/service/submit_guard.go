package service

import "sync"

// SubmitGuard rejects overlapping submits for the same key. It never queues.
type SubmitGuard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewSubmitGuard() *SubmitGuard {
	return &SubmitGuard{inflight: make(map[string]struct{})}
}

// Acquire marks key busy. The returned release must be called once the submit finishes.
func (g *SubmitGuard) Acquire(key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inflight[key]; busy {
		return nil, ErrSubmitInProgress
	}
	g.inflight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inflight, key)
			g.mu.Unlock()
		})
	}, nil
}

// submitKey scopes a guard to one operator session and one form
func submitKey(sessionID, entity, id string) string {
	if id == "" {
		id = "new"
	}
	return sessionID + ":" + entity + ":" + id
}
