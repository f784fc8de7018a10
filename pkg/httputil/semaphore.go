package httputil

import "context"

// Semaphore is the admission gate for concurrent turn processing. Turns
// beyond capacity queue on Acquire rather than drop; backpressure surfaces
// as latency, never as a lost scammer message.
type Semaphore struct {
	sem chan struct{}
}

// NewSemaphore creates a semaphore admitting up to capacity holders.
// Values below 1 are raised to 1 so the gate can never deadlock shut.
func NewSemaphore(capacity int) *Semaphore {
	if capacity < 1 {
		capacity = 1
	}
	return &Semaphore{
		sem: make(chan struct{}, capacity),
	}
}

// Acquire blocks until a slot is free or the context expires.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot. Must be called exactly once per successful Acquire.
func (s *Semaphore) Release() {
	select {
	case <-s.sem:
	default:
	}
}

// InUse returns the number of slots currently held.
func (s *Semaphore) InUse() int {
	return len(s.sem)
}

// Stats snapshots the gate for the stats endpoint.
func (s *Semaphore) Stats() SemaphoreStats {
	inUse := len(s.sem)
	return SemaphoreStats{
		Capacity:  cap(s.sem),
		InUse:     inUse,
		Available: cap(s.sem) - inUse,
	}
}

// SemaphoreStats is the monitoring view of the admission gate.
type SemaphoreStats struct {
	Capacity  int `json:"capacity"`
	InUse     int `json:"in_use"`
	Available int `json:"available"`
}
