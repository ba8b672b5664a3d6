package booking

import (
	"context"

	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	studioID uint,
	dateStr string,
) ([]domain.SlotStatus, error) {

	studio, err := uc.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(studio.Timezone)

	date, err := domain.ParseDate(dateStr, loc)
	if err != nil {
		return nil, err
	}

	blocked, err := uc.repo.IsDayBlocked(ctx, dateStr)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.repo.ListActiveByDate(ctx, dateStr)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(studio.Timezone)

	return domain.ComputeAvailability(date, bookings, blocked, now), nil
}
