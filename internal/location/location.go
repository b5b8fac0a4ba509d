// Package location wraps a geolocation capability behind a hard deadline.
// The adapter never returns a stale or partial fix: a timeout is a failure,
// and retry policy belongs to the caller.
package location

import (
	"context"
	"time"

	"github.com/teresa-solution/tourist-safety-service/internal/fault"
	"github.com/teresa-solution/tourist-safety-service/internal/model"
)

// PanicTimeout is the short deadline used by the panic flow.
const PanicTimeout = 5 * time.Second

// DefaultTimeout is used by non-emergency flows.
const DefaultTimeout = 15 * time.Second

// Fix is a raw sensor reading.
type Fix struct {
	Coordinate model.Coordinate
	AccuracyM  float64
}

// Sensor is the underlying geolocation capability. Implementations should
// honor ctx cancellation; the Acquirer enforces the deadline either way and
// abandons slow sensors.
type Sensor interface {
	CurrentPosition(ctx context.Context, highAccuracy bool) (Fix, error)
}

// Acquirer resolves a coordinate from a Sensor with timeout and accuracy
// controls. It performs no retries.
type Acquirer struct {
	sensor Sensor
}

func NewAcquirer(sensor Sensor) *Acquirer {
	return &Acquirer{sensor: sensor}
}

// Acquire blocks until the sensor resolves, is denied, or timeout elapses,
// whichever comes first. Failures are fault.ErrLocationTimeout,
// fault.ErrLocationPermission, or fault.ErrLocationUnavailable.
func (a *Acquirer) Acquire(ctx context.Context, timeout time.Duration, highAccuracy bool) (model.Coordinate, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		fix Fix
		err error
	}
	// Buffered so an abandoned sensor goroutine can still complete its send.
	ch := make(chan result, 1)
	go func() {
		fix, err := a.sensor.CurrentPosition(ctx, highAccuracy)
		ch <- result{fix: fix, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			switch res.err {
			case fault.ErrLocationPermission, fault.ErrLocationTimeout:
				return model.Coordinate{}, res.err
			case context.DeadlineExceeded:
				return model.Coordinate{}, fault.ErrLocationTimeout
			}
			return model.Coordinate{}, fault.ErrLocationUnavailable
		}
		return res.fix.Coordinate, nil
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return model.Coordinate{}, fault.ErrLocationTimeout
		}
		return model.Coordinate{}, fault.ErrLocationUnavailable
	}
}

// StaticSensor resolves immediately with a fixed coordinate. The HTTP entry
// points use it to feed client-asserted coordinates through the same
// acquisition path as a live sensor.
type StaticSensor struct {
	Coord model.Coordinate
}

func (s StaticSensor) CurrentPosition(_ context.Context, _ bool) (Fix, error) {
	return Fix{Coordinate: s.Coord}, nil
}

// DeniedSensor always reports a permission refusal. Used when the client
// reports that it could not obtain a position.
type DeniedSensor struct{}

func (DeniedSensor) CurrentPosition(_ context.Context, _ bool) (Fix, error) {
	return Fix{}, fault.ErrLocationPermission
}
