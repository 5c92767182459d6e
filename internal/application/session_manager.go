package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
)

// SessionSnapshot is a consistent view of the manager. Seq grows with every
// transition so listeners can discard snapshots that arrive out of order.
type SessionSnapshot struct {
	Seq     uint64
	State   domain.SessionState
	Session *domain.Session
	Err     error
}

func (s SessionSnapshot) Connected() bool {
	return s.State == domain.SessionConnected && s.Session != nil
}

type SessionManager struct {
	connector ports.WalletConnector
	record    credentialRecord
	logger    *slog.Logger

	mu            sync.Mutex
	state         domain.SessionState
	session       *domain.Session
	lastErr       error
	seq           uint64
	epoch         uint64
	cancelConnect context.CancelFunc
	// teardown is closed once the running Disconnect reaches Disconnected.
	teardown chan struct{}

	listenersMu sync.Mutex
	listeners   map[int]func(SessionSnapshot)
	nextID      int
}

func NewSessionManager(store ports.PersistentStore, connector ports.WalletConnector, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionManager{
		connector: connector,
		record:    credentialRecord{store: store},
		logger:    logger,
		state:     domain.SessionDisconnected,
		listeners: map[int]func(SessionSnapshot){},
	}
}

// Restore reconnects from the persisted record without touching the wallet.
// An unusable record is cleared and the manager stays disconnected.
func (m *SessionManager) Restore(ctx context.Context) error {
	m.mu.Lock()
	if m.state != domain.SessionDisconnected {
		m.mu.Unlock()
		return nil
	}

	session, ok, err := m.record.load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrCorruptRecord) {
			m.mu.Unlock()
			return fmt.Errorf("restore session: %w", err)
		}

		m.logger.Warn("discarding persisted session", "error", err)
		if clearErr := m.record.clear(ctx); clearErr != nil {
			m.logger.Warn("clear persisted session", "error", clearErr)
		}
		m.mu.Unlock()
		return nil
	}
	if !ok {
		m.mu.Unlock()
		return nil
	}

	m.session = &session
	m.lastErr = nil
	snapshot := m.transitionLocked(domain.SessionConnected)
	m.mu.Unlock()

	m.logger.Debug("session restored", "address", session.Address)
	m.notify(snapshot)
	return nil
}

// Connect runs the wallet exchange. It is a no-op while another connect is in
// flight or a session already exists, and returns domain.ErrConnectAborted
// when Disconnect cancels the exchange.
func (m *SessionManager) Connect(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "session.connect")
	var err error
	defer func() { endSpan(span, err) }()

	m.mu.Lock()
	switch m.state {
	case domain.SessionConnecting, domain.SessionConnected:
		m.mu.Unlock()
		return nil
	case domain.SessionDisconnecting:
		m.mu.Unlock()
		err = domain.ErrDisconnecting
		return err
	}

	m.epoch++
	epoch := m.epoch
	acquireCtx, cancel := context.WithCancel(ctx)
	m.cancelConnect = cancel
	m.lastErr = nil
	snapshot := m.transitionLocked(domain.SessionConnecting)
	m.mu.Unlock()
	m.notify(snapshot)

	credential, acquireErr := m.connector.Acquire(acquireCtx)
	cancel()

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		m.logger.Debug("discarding wallet exchange result after disconnect")
		err = domain.ErrConnectAborted
		return err
	}
	m.cancelConnect = nil

	if acquireErr == nil {
		session := domain.Session{Address: credential.Address, Handle: credential.Handle, Connected: true}
		if acquireErr = session.Validate(); acquireErr == nil {
			acquireErr = m.record.save(ctx, session)
		}
		if acquireErr == nil {
			m.session = &session
			snapshot = m.transitionLocked(domain.SessionConnected)
			m.mu.Unlock()

			span.SetAttributes(attribute.String("wallet.address", session.Address))
			m.logger.Info("wallet connected", "address", session.Address, "handle", session.Handle)
			m.notify(snapshot)
			return nil
		}
	}

	err = fmt.Errorf("connect wallet: %w", acquireErr)
	m.lastErr = err
	snapshot = m.transitionLocked(domain.SessionDisconnected)
	m.mu.Unlock()

	m.notify(snapshot)
	return err
}

// Disconnect always ends Disconnected with the record cleared. Release and
// clear failures are logged, never returned. A call that overlaps a running
// teardown waits for it to finish.
func (m *SessionManager) Disconnect(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "session.disconnect")
	defer span.End()

	m.mu.Lock()
	switch m.state {
	case domain.SessionDisconnected:
		m.mu.Unlock()
		return nil
	case domain.SessionDisconnecting:
		teardown := m.teardown
		m.mu.Unlock()
		select {
		case <-teardown:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.epoch++
	if m.cancelConnect != nil {
		m.cancelConnect()
		m.cancelConnect = nil
	}
	previous := m.session
	m.session = nil
	teardown := make(chan struct{})
	m.teardown = teardown
	snapshot := m.transitionLocked(domain.SessionDisconnecting)
	m.mu.Unlock()
	m.notify(snapshot)

	if previous != nil {
		if err := m.connector.Release(ctx, *previous); err != nil {
			m.logger.Warn("release wallet session", "address", previous.Address, "error", err)
		}
	}
	if err := m.record.clear(ctx); err != nil {
		m.logger.Warn("clear persisted session", "error", err)
	}

	m.mu.Lock()
	m.lastErr = nil
	m.teardown = nil
	snapshot = m.transitionLocked(domain.SessionDisconnected)
	m.mu.Unlock()
	close(teardown)

	m.logger.Info("wallet disconnected")
	m.notify(snapshot)
	return nil
}

func (m *SessionManager) Snapshot() SessionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snapshotLocked()
}

// Subscribe registers fn for every later transition. The returned func
// removes it.
func (m *SessionManager) Subscribe(fn func(SessionSnapshot)) func() {
	m.listenersMu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.listenersMu.Unlock()

	return func() {
		m.listenersMu.Lock()
		delete(m.listeners, id)
		m.listenersMu.Unlock()
	}
}

func (m *SessionManager) transitionLocked(state domain.SessionState) SessionSnapshot {
	m.state = state
	m.seq++
	return m.snapshotLocked()
}

func (m *SessionManager) snapshotLocked() SessionSnapshot {
	snapshot := SessionSnapshot{Seq: m.seq, State: m.state, Err: m.lastErr}
	if m.session != nil {
		session := *m.session
		snapshot.Session = &session
	}

	return snapshot
}

func (m *SessionManager) notify(snapshot SessionSnapshot) {
	m.listenersMu.Lock()
	listeners := make([]func(SessionSnapshot), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
