package batch

import (
	"sync"
	"time"
)

const percentMultiplier = 100

// Progress tracks processed items and batches. It is safe for concurrent use.
type Progress struct {
	totalItems       int
	processedItems   int
	totalBatches     int
	processedBatches int
	batchSize        int
	startTime        time.Time

	mu sync.RWMutex
}

// NewProgress creates a progress tracker starting now.
func NewProgress(totalItems, totalBatches, batchSize int) *Progress {
	return &Progress{
		totalItems:   totalItems,
		totalBatches: totalBatches,
		batchSize:    batchSize,
		startTime:    time.Now(),
	}
}

// AddProcessed records one completed batch of itemsProcessed items.
func (p *Progress) AddProcessed(itemsProcessed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processedItems += itemsProcessed
	p.processedBatches++
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.percentComplete()
}

// IsComplete reports whether all items have been processed.
func (p *Progress) IsComplete() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.processedItems >= p.totalItems
}

// Snapshot returns a copy of the current progress state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return ProgressSnapshot{
		TotalItems:       p.totalItems,
		ProcessedItems:   p.processedItems,
		TotalBatches:     p.totalBatches,
		ProcessedBatches: p.processedBatches,
		BatchSize:        p.batchSize,
		PercentComplete:  p.percentComplete(),
		ElapsedTime:      time.Since(p.startTime),
	}
}

// ProgressSnapshot is an immutable view of Progress.
type ProgressSnapshot struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
	BatchSize        int
	PercentComplete  float64
	ElapsedTime      time.Duration
}

// percentComplete must be called with the lock held.
func (p *Progress) percentComplete() float64 {
	if p.totalItems == 0 {
		return 0
	}
	return float64(p.processedItems) / float64(p.totalItems) * percentMultiplier
}
