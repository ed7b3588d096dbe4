package wizard

import (
	"github.com/archguru/advisor-backend/internal/entity"
	wizarduc "github.com/archguru/advisor-backend/internal/usecase/wizard"
)

// toSessionDTO converts a pipeline snapshot to the session DTO
func toSessionDTO(id string, pipeline *wizarduc.Pipeline) *entity.SessionDTO {
	state := pipeline.State()
	return &entity.SessionDTO{
		ID:           id,
		Phase:        state.Phase,
		CurrentRound: state.CurrentRound,
		TotalRounds:  pipeline.TotalRounds(),
		HasDocument:  state.Document != nil,
		CreatedAt:    state.CreatedAt,
		UpdatedAt:    state.UpdatedAt,
	}
}
