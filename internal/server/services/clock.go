package services

import "time"

// Clock is an injectable time source so expiry logic is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
