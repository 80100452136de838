package application

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrDuplicateRequestID = errors.New("request id already pending")

// ValidationResult is what the catalog answers for one validation request.
type ValidationResult struct {
	Valid   bool
	Message string
}

// ValidationManager correlates stock validation responses arriving on the
// consumer goroutine back to the orchestrator call waiting for them. Each
// pending request owns a one-shot buffered channel; the first of Complete and
// Cancel to remove the map entry wins, the loser's effect is discarded. A
// response for an id that is no longer pending is an orphan, reported by
// Complete returning false.
type ValidationManager struct {
	mu      sync.Mutex
	pending map[uuid.UUID]chan ValidationResult
}

func NewValidationManager() *ValidationManager {
	return &ValidationManager{pending: make(map[uuid.UUID]chan ValidationResult)}
}

// Begin registers a pending validation and returns the channel its result
// will be delivered on. Request ids are caller-generated and unique per saga
// instance; reusing one is a programming error.
func (m *ValidationManager) Begin(requestID uuid.UUID) (<-chan ValidationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.pending[requestID]; exists {
		return nil, ErrDuplicateRequestID
	}
	ch := make(chan ValidationResult, 1)
	m.pending[requestID] = ch
	return ch, nil
}

// Complete fulfills a pending validation. The buffered send cannot block:
// ownership of the channel is taken by deleting the map entry under the lock,
// so at most one caller ever sends on it.
func (m *ValidationManager) Complete(requestID uuid.UUID, valid bool, message string) bool {
	m.mu.Lock()
	ch, ok := m.pending[requestID]
	if ok {
		delete(m.pending, requestID)
	}
	m.mu.Unlock()
	if !ok {
		return false
	}
	ch <- ValidationResult{Valid: valid, Message: message}
	return true
}

// Cancel abandons a pending validation after the wait deadline. A concurrent
// Complete for the same id is harmless: whichever removes the entry first
// wins.
func (m *ValidationManager) Cancel(requestID uuid.UUID) {
	m.mu.Lock()
	delete(m.pending, requestID)
	m.mu.Unlock()
}

// PendingCount reports how many validations are awaiting a response.
func (m *ValidationManager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
