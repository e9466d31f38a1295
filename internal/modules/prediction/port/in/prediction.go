package in

import (
	"context"

	"whatdayisit/internal/modules/prediction/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.StartOutput, error)
	Reset(ctx context.Context) (dto.Snapshot, error)
	Snapshot(ctx context.Context) (dto.Snapshot, error)
	// Watch streams a snapshot per state change until ctx ends, then closes the channel.
	Watch(ctx context.Context) (<-chan dto.Snapshot, error)
	Close() error
}
