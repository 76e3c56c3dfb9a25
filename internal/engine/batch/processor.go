package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Batch size limits.
const (
	// DefaultBatchSize is the default number of items per batch.
	DefaultBatchSize = 25

	// MinBatchSize is the minimum allowed batch size.
	MinBatchSize = 1

	// MaxBatchSize is the maximum allowed batch size.
	MaxBatchSize = 1000
)

// Batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("batch size must be between 1 and 1000")
	ErrNilCallback      = errors.New("batch callback cannot be nil")
	ErrEmptyItems       = errors.New("items slice cannot be empty")
)

// Span is one batch: the items plus the index of the first item in the
// original slice.
type Span[T any] struct {
	Index int
	Start int
	Items []T
}

// Callback processes a single batch.
type Callback[T any] func(ctx context.Context, span Span[T]) error

// ProgressCallback is invoked after each batch completes.
type ProgressCallback func(snapshot ProgressSnapshot)

// Processor runs a callback over fixed-size batches of a slice.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressCallback

	// mu serializes progress callbacks from concurrent batches.
	mu sync.Mutex
}

// NewProcessor creates a processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// NewProcessorWithDefaults creates a processor with DefaultBatchSize.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{batchSize: DefaultBatchSize}
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// BatchSize returns the configured batch size.
func (p *Processor[T]) BatchSize() int {
	return p.batchSize
}

// Process runs callback over each batch in order and stops on the first
// error or on context cancellation.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback Callback[T]) error {
	if err := p.check(items, callback); err != nil {
		return err
	}

	spans := p.Spans(items)
	progress := NewProgress(len(items), len(spans), p.batchSize)

	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := callback(ctx, span); err != nil {
			return fmt.Errorf("batch %d failed: %w", span.Index, err)
		}
		p.report(progress, len(span.Items))
	}
	return nil
}

// ProcessConcurrent runs up to maxConcurrency batches at a time. Every batch
// runs even when another fails; all batch errors are joined.
func (p *Processor[T]) ProcessConcurrent(
	ctx context.Context,
	items []T,
	callback Callback[T],
	maxConcurrency int,
) error {
	if err := p.check(items, callback); err != nil {
		return err
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	spans := p.Spans(items)
	progress := NewProgress(len(items), len(spans), p.batchSize)
	errs := make([]error, len(spans))

	var g errgroup.Group
	g.SetLimit(maxConcurrency)
	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			errs[span.Index] = err
			break
		}
		g.Go(func() error {
			if err := callback(ctx, span); err != nil {
				errs[span.Index] = fmt.Errorf("batch %d failed: %w", span.Index, err)
				return nil
			}
			p.report(progress, len(span.Items))
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// Spans splits items into batches.
func (p *Processor[T]) Spans(items []T) []Span[T] {
	spans := make([]Span[T], 0, p.totalBatches(len(items)))
	for start := 0; start < len(items); start += p.batchSize {
		end := min(start+p.batchSize, len(items))
		spans = append(spans, Span[T]{Index: len(spans), Start: start, Items: items[start:end]})
	}
	return spans
}

func (p *Processor[T]) check(items []T, callback Callback[T]) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if callback == nil {
		return ErrNilCallback
	}
	return nil
}

func (p *Processor[T]) totalBatches(totalItems int) int {
	return (totalItems + p.batchSize - 1) / p.batchSize
}

func (p *Processor[T]) report(progress *Progress, itemsProcessed int) {
	progress.AddProcessed(itemsProcessed)
	if p.onProgress == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onProgress(progress.Snapshot())
}
