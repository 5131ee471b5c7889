package models

import "fmt"

// Duration is the closed set of supported class lengths, in minutes.
type Duration int

const (
	Duration25 Duration = 25
	Duration50 Duration = 50
	Duration80 Duration = 80
)

// unitPriceEUR is the static duration -> price table used by the cart and
// checkout flow.
var unitPriceEUR = map[Duration]int{
	Duration25: 6,
	Duration50: 12,
	Duration80: 16,
}

// ParseDuration validates a raw minute count against the supported set.
func ParseDuration(minutes int) (Duration, error) {
	d := Duration(minutes)
	if !d.Valid() {
		return 0, fmt.Errorf("duration must be 25, 50 or 80 minutes, got %d", minutes)
	}
	return d, nil
}

func (d Duration) Valid() bool {
	_, ok := unitPriceEUR[d]
	return ok
}

func (d Duration) Minutes() int { return int(d) }

func (d Duration) UnitPriceEUR() int { return unitPriceEUR[d] }

// Durations lists the supported durations in ascending order.
func Durations() []Duration {
	return []Duration{Duration25, Duration50, Duration80}
}

// InsufficientBalanceError identifies the exhausted balance bucket.
type InsufficientBalanceError struct {
	Duration Duration
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("no remaining balance for %d-minute classes", e.Duration.Minutes())
}
