package service

import (
	"time"

	"serenity/shared/timezone"
)

// Clock supplies "now" so the past-date check stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return timezone.Now()
}
