package services

import "time"

// Clock supplies the current time to every operation that stamps or compares
// timestamps, so engines stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// NewRealClock returns the wall clock used in production wiring.
func NewRealClock() Clock { return realClock{} }

// FixedClock always reports the same instant. Intended for tests.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
