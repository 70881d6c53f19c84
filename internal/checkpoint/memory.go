package checkpoint

import (
	"context"
	"sync"
)

// Memory is a process-local Store. It serves tests and credential-less local
// runs; the checkpoint does not survive a restart.
type Memory struct {
	mu      sync.Mutex
	version string
	found   bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (s *Memory) Get(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version, s.found, nil
}

func (s *Memory) Put(_ context.Context, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = version
	s.found = true
	return nil
}
