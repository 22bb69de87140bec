// Package session holds per-session portfolio state and the token-based
// session registry. Nothing here survives a process restart.
package session

import (
	"sync"
	"time"
)

const (
	// DefaultAddWeight is the allocation a new holding receives when none
	// is specified.
	DefaultAddWeight = 0.10

	// DefaultInvestment is the assumed account size for dollar valuations.
	DefaultInvestment = 100000.0
)

// Store is one session's portfolio: parallel symbol and weight slices kept
// normalized to sum 1.0 after every mutation.
type Store struct {
	mu         sync.RWMutex
	symbols    []string
	weights    []float64
	investment float64
	lastAccess time.Time
	now        func() time.Time
}

// NewStore creates a store seeded with the given portfolio. Weights are
// normalized on the way in; a nil or mismatched weight slice becomes equal
// weights.
func NewStore(symbols []string, weights []float64, investment float64) *Store {
	if investment <= 0 {
		investment = DefaultInvestment
	}
	s := &Store{
		investment: investment,
		now:        time.Now,
	}
	s.Set(symbols, weights)
	return s
}

// Get returns copies of the current symbols and weights.
func (s *Store) Get() ([]string, []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = s.now()

	symbols := make([]string, len(s.symbols))
	copy(symbols, s.symbols)
	weights := make([]float64, len(s.weights))
	copy(weights, s.weights)
	return symbols, weights
}

// Set replaces the portfolio. Weights are normalized to sum 1.0; nil or
// length-mismatched weights become equal weights. A weight vector summing
// to zero or less clears the portfolio entirely.
func (s *Store) Set(symbols []string, weights []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(symbols, weights)
}

func (s *Store) setLocked(symbols []string, weights []float64) {
	s.lastAccess = s.now()

	if len(symbols) == 0 {
		return
	}

	if weights == nil || len(weights) != len(symbols) {
		weights = make([]float64, len(symbols))
		for i := range weights {
			weights[i] = 1.0 / float64(len(symbols))
		}
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		s.symbols = nil
		s.weights = nil
		return
	}

	s.symbols = make([]string, len(symbols))
	copy(s.symbols, symbols)
	s.weights = make([]float64, len(weights))
	for i, w := range weights {
		s.weights[i] = w / total
	}
}

// Add inserts a new holding at the given weight, scaling every existing
// weight by (1 - weight) so the vector still sums to 1.0. Adding a symbol
// already present is a no-op; a non-positive weight uses the default.
func (s *Store) Add(symbol string, weight float64) {
	if weight <= 0 {
		weight = DefaultAddWeight
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.symbols {
		if existing == symbol {
			s.lastAccess = s.now()
			return
		}
	}

	reduction := 1.0 - weight
	symbols := make([]string, 0, len(s.symbols)+1)
	weights := make([]float64, 0, len(s.weights)+1)
	for i, sym := range s.symbols {
		symbols = append(symbols, sym)
		weights = append(weights, s.weights[i]*reduction)
	}
	symbols = append(symbols, symbol)
	weights = append(weights, weight)

	s.setLocked(symbols, weights)
}

// Remove drops a holding and redistributes its weight proportionally over
// the remainder. Removing an absent symbol is a no-op; removing the last
// holding leaves an empty portfolio.
func (s *Store) Remove(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, sym := range s.symbols {
		if sym == symbol {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.lastAccess = s.now()
		return
	}

	removed := s.weights[idx]
	symbols := make([]string, 0, len(s.symbols)-1)
	weights := make([]float64, 0, len(s.weights)-1)
	for i, sym := range s.symbols {
		if i == idx {
			continue
		}
		symbols = append(symbols, sym)
		weights = append(weights, s.weights[i])
	}

	if len(symbols) == 0 {
		s.lastAccess = s.now()
		s.symbols = nil
		s.weights = nil
		return
	}

	remaining := 0.0
	for _, w := range weights {
		remaining += w
	}
	if remaining > 0 {
		for i, w := range weights {
			weights[i] = (w / remaining) * (1.0 + removed/remaining)
		}
	}

	s.setLocked(symbols, weights)
}

// UpdateWeight assigns a new raw weight to one holding, then renormalizes
// the whole vector. Unknown symbols are ignored.
func (s *Store) UpdateWeight(symbol string, weight float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, sym := range s.symbols {
		if sym == symbol {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.lastAccess = s.now()
		return
	}

	weights := make([]float64, len(s.weights))
	copy(weights, s.weights)
	weights[idx] = weight

	symbols := make([]string, len(s.symbols))
	copy(symbols, s.symbols)

	s.setLocked(symbols, weights)
}

// Clear empties the portfolio.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = s.now()
	s.symbols = nil
	s.weights = nil
}

// Size returns the number of holdings.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.symbols)
}

// Investment returns the assumed account size.
func (s *Store) Investment() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.investment
}

// SetInvestment updates the assumed account size. Non-positive values are
// ignored.
func (s *Store) SetInvestment(amount float64) {
	if amount <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = s.now()
	s.investment = amount
}

// LastAccess reports when the store was last touched.
func (s *Store) LastAccess() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAccess
}
