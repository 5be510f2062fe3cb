// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock provides the current time. Scheduling logic depends on it instead of
// time.Now so ticks are deterministic in tests.
type Clock interface {
	Now() time.Time
}
