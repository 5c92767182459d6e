package application

import "sync"

// Listener forwards session and search changes to a single callback. Each
// Replace drops the previous callback.
type Listener struct {
	mu          sync.Mutex
	unsubscribe func()
}

func (l *Listener) Replace(sessions *SessionManager, orchestrator *Orchestrator, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.unsubscribe != nil {
		l.unsubscribe()
	}
	orchestrator.OnChange(fn)
	l.unsubscribe = sessions.Subscribe(func(SessionSnapshot) { fn() })
}
