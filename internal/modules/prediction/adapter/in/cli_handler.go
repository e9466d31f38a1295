package in

import (
	"context"
	"fmt"

	predictiondto "whatdayisit/internal/modules/prediction/dto"
	predictionin "whatdayisit/internal/modules/prediction/port/in"
)

type CLIHandler struct {
	usecase predictionin.Usecase
}

func NewCLIHandler(usecase predictionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Predict runs one full sequence, calling onSnapshot for every state change,
// and returns the revealed snapshot.
func (h CLIHandler) Predict(ctx context.Context, onSnapshot func(predictiondto.Snapshot)) (predictiondto.Snapshot, error) {
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Subscribe before starting so the first message is not missed.
	updates, err := h.usecase.Watch(watchCtx)
	if err != nil {
		return predictiondto.Snapshot{}, err
	}
	if _, err := h.usecase.Start(ctx); err != nil {
		return predictiondto.Snapshot{}, err
	}

	for {
		select {
		case <-ctx.Done():
			return predictiondto.Snapshot{}, ctx.Err()
		case snap, ok := <-updates:
			if !ok {
				return predictiondto.Snapshot{}, fmt.Errorf("prediction feed closed before reveal")
			}
			if onSnapshot != nil {
				onSnapshot(snap)
			}
			if snap.Status == predictiondto.StatusRevealed {
				return snap, nil
			}
		}
	}
}
