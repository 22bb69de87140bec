package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"riskpilot/internal/common"
)

const DefaultExpiry = 24 * time.Hour

// Manager maps signed session tokens to portfolio stores. Sessions are
// pruned lazily: expired entries are dropped while resolving or creating,
// not by a background sweeper.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Store
	secret   []byte
	expiry   time.Duration
	defaults defaults
	logger   *common.Logger
	now      func() time.Time
}

type defaults struct {
	symbols    []string
	weights    []float64
	investment float64
}

// ManagerOption configures the manager
type ManagerOption func(*Manager)

// WithExpiry sets the session lifetime
func WithExpiry(expiry time.Duration) ManagerOption {
	return func(m *Manager) {
		if expiry > 0 {
			m.expiry = expiry
		}
	}
}

// WithDefaultPortfolio seeds new sessions with a starting portfolio
func WithDefaultPortfolio(symbols []string, weights []float64, investment float64) ManagerOption {
	return func(m *Manager) {
		m.defaults = defaults{symbols: symbols, weights: weights, investment: investment}
	}
}

// WithManagerLogger sets the logger
func WithManagerLogger(logger *common.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock replaces the manager's clock. Test hook.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a session manager signing tokens with secret.
func NewManager(secret string, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions: make(map[string]*Store),
		secret:   []byte(secret),
		expiry:   DefaultExpiry,
		logger:   common.NewSilentLogger(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Create starts a new session seeded with the default portfolio, returning
// the session ID and its signed token.
func (m *Manager) Create() (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()

	id := uuid.New().String()
	store := NewStore(m.defaults.symbols, m.defaults.weights, m.defaults.investment)
	store.now = m.now
	store.lastAccess = m.now()
	m.sessions[id] = store

	token, err := m.signToken(id)
	if err != nil {
		delete(m.sessions, id)
		return "", "", err
	}

	m.logger.Debug().Str("session_id", id).Msg("Session created")
	return id, token, nil
}

// Resolve validates a token and returns its session's store. Expired or
// unknown sessions fail.
func (m *Manager) Resolve(token string) (*Store, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !parsed.Valid || claims.SessionID == "" {
		return nil, fmt.Errorf("invalid session token")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()

	store, ok := m.sessions[claims.SessionID]
	if !ok {
		return nil, fmt.Errorf("session expired or unknown")
	}
	return store, nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()
	return len(m.sessions)
}

func (m *Manager) signToken(sessionID string) (string, error) {
	now := m.now()
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			Issuer:    "riskpilot",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (m *Manager) pruneLocked() {
	cutoff := m.now().Add(-m.expiry)
	for id, store := range m.sessions {
		if store.LastAccess().Before(cutoff) {
			delete(m.sessions, id)
			m.logger.Debug().Str("session_id", id).Msg("Session expired")
		}
	}
}
