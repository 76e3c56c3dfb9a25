// Package batch splits a slice into fixed-size batches and runs a callback
// over each batch, either sequentially or with bounded concurrency.
//
// The organization roll-up uses it to compute many project reports at once:
// each batch covers a contiguous index range, so callers can write results
// into a pre-sized slice by position and the final order never depends on
// goroutine scheduling.
package batch
