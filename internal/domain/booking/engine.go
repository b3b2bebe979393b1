package booking

import "time"

const DefaultSearchHorizonDays = 90

// Engine answers availability questions over the calendar store. It holds
// no state between calls; every decision reads fresh data.
type Engine struct {
	repo        Repository
	now         func() time.Time
	horizonDays int
}

func NewEngine(repo Repository, now func() time.Time, horizonDays int) *Engine {
	if now == nil {
		now = time.Now
	}
	if horizonDays <= 0 {
		horizonDays = DefaultSearchHorizonDays
	}

	return &Engine{
		repo:        repo,
		now:         now,
		horizonDays: horizonDays,
	}
}
