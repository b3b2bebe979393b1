package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type FindNearestSlot struct {
	engine *domain.Engine
}

func NewFindNearestSlot(engine *domain.Engine) *FindNearestSlot {
	return &FindNearestSlot{engine: engine}
}

func (uc *FindNearestSlot) Execute(
	ctx context.Context,
	specialty string,
) (*domain.NearestSlotResult, error) {

	if specialty == "" {
		return nil, httperr.ErrBusiness("missing_specialty")
	}

	return uc.engine.FindNearestAvailable(ctx, specialty)
}
