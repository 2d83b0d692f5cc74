package reconciler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nightking/internal/instance"
)

// =============================================================================
// MockComputeAPI - scripted Compute API for reconciler tests
// =============================================================================

// call records one API invocation.
type call struct {
	Zone string
	Name string
}

// MockComputeAPI implements ComputeAPI for testing.
// GetInstance returns the scripted statuses in order and keeps returning the
// last one once the script is exhausted.
type MockComputeAPI struct {
	mu sync.Mutex

	Statuses []instance.Status
	GetError error

	// NilInstance makes GetInstance return neither an instance nor an error.
	NilInstance bool

	// GetPanics makes GetInstance panic.
	GetPanics bool

	StartOperation *instance.Operation
	StartError     error

	GetCalls   []call
	StartCalls []call
}

// NewMockComputeAPI creates a mock that reports statuses in order.
func NewMockComputeAPI(statuses ...instance.Status) *MockComputeAPI {
	return &MockComputeAPI{
		Statuses:       statuses,
		StartOperation: &instance.Operation{Name: "operation-start", OperationType: "start", Status: "RUNNING"},
	}
}

func (m *MockComputeAPI) GetInstance(ctx context.Context, zone, name string) (*instance.Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := len(m.GetCalls)
	m.GetCalls = append(m.GetCalls, call{Zone: zone, Name: name})

	if m.GetPanics {
		panic("compute client exploded")
	}
	if m.GetError != nil {
		return nil, m.GetError
	}
	if m.NilInstance {
		return nil, nil
	}
	if len(m.Statuses) == 0 {
		return nil, fmt.Errorf("no scripted status")
	}
	if idx >= len(m.Statuses) {
		idx = len(m.Statuses) - 1
	}
	return &instance.Instance{Name: name, Zone: zone, Status: m.Statuses[idx]}, nil
}

func (m *MockComputeAPI) StartInstance(ctx context.Context, zone, name string) (*instance.Operation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartCalls = append(m.StartCalls, call{Zone: zone, Name: name})
	if m.StartError != nil {
		return nil, m.StartError
	}
	return m.StartOperation, nil
}

// GetCount returns the number of GetInstance calls.
func (m *MockComputeAPI) GetCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GetCalls)
}

// StartCount returns the number of StartInstance calls.
func (m *MockComputeAPI) StartCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.StartCalls)
}

// =============================================================================
// recordingSleeper - Sleeper that returns immediately
// =============================================================================

type recordingSleeper struct {
	mu     sync.Mutex
	sleeps []time.Duration
	err    error
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleeps = append(s.sleeps, d)
	return s.err
}

func (s *recordingSleeper) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sleeps)
}
