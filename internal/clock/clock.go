package clock

import "time"

const DefaultTimezone = "America/Sao_Paulo"

// Clock resolves "now" and "today" in the clinic's local timezone. The
// nearest-slot search starts from this notion of today.
type Clock struct {
	loc *time.Location
}

func New(tz string) *Clock {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return &Clock{loc: loc}
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &Clock{loc: loc}
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *Clock) Location() *time.Location {
	return c.loc
}
