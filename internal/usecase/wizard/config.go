package wizard

import "github.com/archguru/advisor-backend/internal/entity"

// RoundConfig describes one question round: which prompt focus to render
// and which literal question list to substitute when the model reply
// cannot be parsed.
type RoundConfig struct {
	Kind     entity.RoundKind
	Fallback entity.QuestionSet
}

// Config parameterizes the pipeline. The same state machine serves any
// number of rounds; only the descriptor list changes between variants.
type Config struct {
	Rounds               []RoundConfig
	RequireMainChallenge bool
}

// DefaultConfig is the three-round variant: scope, solution, final.
func DefaultConfig() Config {
	return Config{
		Rounds: []RoundConfig{
			{Kind: entity.RoundKindScope, Fallback: fallbackScopeQuestions},
			{Kind: entity.RoundKindSolution, Fallback: fallbackSolutionQuestions},
			{Kind: entity.RoundKindFinal, Fallback: fallbackFinalQuestions},
		},
		RequireMainChallenge: true,
	}
}

// SingleRoundConfig is the minimal variant with one generic question round
// and no main-challenge requirement.
func SingleRoundConfig() Config {
	return Config{
		Rounds: []RoundConfig{
			{Kind: entity.RoundKindGeneric, Fallback: fallbackGenericQuestions},
		},
	}
}
