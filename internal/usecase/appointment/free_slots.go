package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
)

// FreeSlotSource is the cached-read side of the slot cache.
type FreeSlotSource interface {
	SlotCache
	Get(ctx context.Context, doctorID uint, date time.Time) ([]domain.OpenInterval, bool)
	Set(ctx context.Context, doctorID uint, date time.Time, slots []domain.OpenInterval)
}

type GetFreeSlots struct {
	engine *domain.Engine
	cache  FreeSlotSource
}

func NewGetFreeSlots(engine *domain.Engine, cache FreeSlotSource) *GetFreeSlots {
	return &GetFreeSlots{engine: engine, cache: cache}
}

func (uc *GetFreeSlots) Execute(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) ([]domain.OpenInterval, error) {

	if uc.cache != nil {
		if slots, ok := uc.cache.Get(ctx, doctorID, date); ok {
			return slots, nil
		}
	}

	slots, err := uc.engine.ComputeFreeSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, doctorID, date, slots)
	}

	return slots, nil
}
