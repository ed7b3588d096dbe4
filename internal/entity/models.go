package entity

import (
	"fmt"
	"time"
)

type Phase string

// Phase represents the current step of the advisor wizard workflow
const (
	PhaseCollecting   Phase = "COLLECTING"   // Waiting for project facts
	PhaseQuestioning  Phase = "QUESTIONING"  // Waiting for answers to the current question round
	PhaseSynthesizing Phase = "SYNTHESIZING" // All rounds answered, recommendation not generated yet
	PhaseDone         Phase = "DONE"         // Recommendation document produced
)

type RoundKind string

const (
	RoundKindScope    RoundKind = "SCOPE"
	RoundKindSolution RoundKind = "SOLUTION"
	RoundKindFinal    RoundKind = "FINAL"
	RoundKindGeneric  RoundKind = "GENERIC"
)

type Challenge string

const (
	ChallengeSecurity       Challenge = "Security"
	ChallengeTimeToMarket   Challenge = "Time to Market"
	ChallengePerformance    Challenge = "Performance"
	ChallengeUserExperience Challenge = "User Experience"
	ChallengeScalability    Challenge = "Scalability"
	ChallengeCostEfficiency Challenge = "Cost Efficiency"
)

func (c Challenge) Validate() error {
	switch c {
	case ChallengeSecurity, ChallengeTimeToMarket, ChallengePerformance,
		ChallengeUserExperience, ChallengeScalability, ChallengeCostEfficiency:
		return nil
	default:
		return fmt.Errorf("%w: unknown challenge %q", ErrInvalidParameter, string(c))
	}
}

// ProjectFacts holds everything the user tells us before questioning starts.
// Immutable once the first question round has been generated.
type ProjectFacts struct {
	Name          string      `json:"name,omitempty"`
	Description   string      `json:"description"`
	MainChallenge string      `json:"main_challenge,omitempty"`
	Challenges    []Challenge `json:"challenges,omitempty"`
}

// QuestionSet is an ordered list of questions produced for one round.
// The requested length (5-12) is advisory and never enforced.
type QuestionSet []string

// AnswerMap maps question text to the user's free-text answer.
// Only non-empty answers are retained at intake.
type AnswerMap map[string]string

// Round captures one question round: what was asked, what was answered,
// and whether the questions came from the fallback list.
type Round struct {
	Kind      RoundKind   `json:"kind"`
	Questions QuestionSet `json:"questions"`
	Answers   AnswerMap   `json:"answers,omitempty"`
	Fallback  bool        `json:"fallback,omitempty"`
}

// RecommendationOption is one of the two proposed architectures.
// All fields are markdown text blocks.
type RecommendationOption struct {
	Overview       string `json:"overview"`
	Technical      string `json:"technical"`
	Implementation string `json:"implementation"`
	Rationale      string `json:"rationale"`
}

func (o *RecommendationOption) Complete() bool {
	return o.Overview != "" && o.Technical != "" && o.Implementation != "" && o.Rationale != ""
}

type RecommendationDocument struct {
	Option1 RecommendationOption `json:"option1"`
	Option2 RecommendationOption `json:"option2"`
}

func (d *RecommendationDocument) Complete() bool {
	return d.Option1.Complete() && d.Option2.Complete()
}

// WizardState is the full per-session state of the pipeline. It is owned by
// exactly one session and never shared between callers.
type WizardState struct {
	Phase        Phase                   `json:"phase"`
	CurrentRound int                     `json:"current_round"` // 1-based, valid while Phase == QUESTIONING
	Facts        ProjectFacts            `json:"facts"`
	Rounds       []Round                 `json:"rounds,omitempty"`
	Analysis     string                  `json:"analysis,omitempty"`
	Document     *RecommendationDocument `json:"document,omitempty"`
	DocFallback  bool                    `json:"document_fallback,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}
