package in

import (
	"context"

	predictiondto "whatdayisit/internal/modules/prediction/dto"
	predictionin "whatdayisit/internal/modules/prediction/port/in"
)

type TUIHandler struct {
	usecase predictionin.Usecase
}

func NewTUIHandler(usecase predictionin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context) (predictiondto.StartOutput, error) {
	return h.usecase.Start(ctx)
}

func (h TUIHandler) Reset(ctx context.Context) (predictiondto.Snapshot, error) {
	return h.usecase.Reset(ctx)
}

func (h TUIHandler) Snapshot(ctx context.Context) (predictiondto.Snapshot, error) {
	return h.usecase.Snapshot(ctx)
}

func (h TUIHandler) Watch(ctx context.Context) (<-chan predictiondto.Snapshot, error) {
	return h.usecase.Watch(ctx)
}
