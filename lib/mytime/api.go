package mytime

import (
	"context"
	"time"
)

var (
	ExampleTime time.Time
)

func init() {
	ExampleTime, _ = time.Parse("2006-01-02T15:04:05Z", "2025-08-27T23:58:59Z")
}

//go:generate mockgen -source=api.go -package mytime -destination mytime_mock.go Nower,Sleeper
type Nower interface {
	Now() time.Time
}

// Sleeper exists so simulated settlement latency can be skipped in tests.
type Sleeper interface {
	Sleep(c context.Context, d time.Duration)
}

type RealNower struct{}

func (n RealNower) Now() time.Time {
	return time.Now()
}

type RealSleeper struct{}

func (s RealSleeper) Sleep(c context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-c.Done():
	}
}
