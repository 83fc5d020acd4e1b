package repository

import (
	"context"
	"sync"

	"estatebackend/types"
)

// NegotiationRepository is the persistence sink for negotiation records.
// The engine only ever inserts; status transitions happen elsewhere.
type NegotiationRepository interface {
	Insert(ctx context.Context, record types.NegotiationRecord) (string, error)
}

// NegotiationRepositoryMemory keeps records in memory, for tests and for
// running without a database.
type NegotiationRepositoryMemory struct {
	mu      sync.Mutex
	records []types.NegotiationRecord
}

func NewNegotiationRepositoryMemory() *NegotiationRepositoryMemory {
	return &NegotiationRepositoryMemory{}
}

func (r *NegotiationRepositoryMemory) Insert(ctx context.Context, record types.NegotiationRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return record.ID, nil
}

// Records returns a copy of everything inserted so far.
func (r *NegotiationRepositoryMemory) Records() []types.NegotiationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.NegotiationRecord, len(r.records))
	copy(out, r.records)
	return out
}
