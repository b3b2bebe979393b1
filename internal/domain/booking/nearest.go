package booking

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// FindNearestAvailable scans forward one calendar day at a time, starting
// tomorrow (the current day is never considered), for the first doctor of
// the specialty with at least one open slot. Candidates on a day are tried
// in a deterministic order: earliest window start, then lowest doctor id.
// The scan is bounded by the configured horizon and honors cancellation,
// since it performs store round-trips per candidate day.
func (e *Engine) FindNearestAvailable(
	ctx context.Context,
	specialty string,
) (*NearestSlotResult, error) {

	today := DateOnly(e.now())

	for offset := 1; offset <= e.horizonDays; offset++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := today.AddDate(0, 0, offset)

		candidates, err := e.repo.DoctorsBySpecialtyAndDay(ctx, specialty, date.Weekday())
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			continue
		}

		ordered, err := orderCandidates(candidates)
		if err != nil {
			return nil, err
		}

		tried := make(map[uint]bool, len(ordered))
		for _, cand := range ordered {
			// A doctor with several windows that day appears once; the
			// free-slot sweep already covers all of their windows.
			if tried[cand.DoctorID] {
				continue
			}
			tried[cand.DoctorID] = true

			free, err := e.ComputeFreeSlots(ctx, cand.DoctorID, date)
			if err != nil {
				return nil, err
			}
			if len(free) == 0 {
				continue
			}

			return &NearestSlotResult{
				DoctorID:   cand.DoctorID,
				DoctorName: cand.DoctorName,
				Date:       date,
				TimeSlots:  free,
			}, nil
		}
	}

	return nil, httperr.ErrBusiness("no_doctor_available")
}

type orderedCandidate struct {
	DoctorDay
	start TimeOfDay
}

func orderCandidates(candidates []DoctorDay) ([]orderedCandidate, error) {
	ordered := make([]orderedCandidate, 0, len(candidates))
	for _, cand := range candidates {
		start, err := ParseTimeOfDay(cand.StartTime)
		if err != nil {
			return nil, err
		}
		ordered = append(ordered, orderedCandidate{DoctorDay: cand, start: start})
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].start != ordered[j].start {
			return ordered[i].start < ordered[j].start
		}
		return ordered[i].DoctorID < ordered[j].DoctorID
	})

	return ordered, nil
}
