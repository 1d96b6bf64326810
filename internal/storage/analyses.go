package storage

import (
	"sync"

	"github.com/google/uuid"

	"vidinsight/internal/model"
)

// AnalysisStore holds completed pipeline runs so the report endpoint
// can re-render them after the fact.
type AnalysisStore struct {
	mu       sync.Mutex
	analyses map[uuid.UUID]*model.Analysis
}

func NewAnalysisStore() *AnalysisStore {
	return &AnalysisStore{analyses: make(map[uuid.UUID]*model.Analysis)}
}

// Save stores an analysis result
func (s *AnalysisStore) Save(a *model.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[a.ID] = a
}

// Get retrieves an analysis by ID
func (s *AnalysisStore) Get(id uuid.UUID) (*model.Analysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.analyses[id]
	if !ok {
		return nil, false
	}
	// Return a copy to avoid race conditions
	aCopy := *a
	return &aCopy, true
}
