package entity

import "time"

type SubmitProjectRequest struct {
	Name          string      `json:"name,omitempty"`
	Description   string      `json:"description"`
	MainChallenge string      `json:"main_challenge,omitempty"`
	Challenges    []Challenge `json:"challenges,omitempty"`
}

type SubmitAnswersRequest struct {
	Round   int       `json:"round"`
	Answers AnswerMap `json:"answers"`
}

type QuestionsResponse struct {
	SessionID string      `json:"session_id"`
	Round     int         `json:"round"`
	Kind      RoundKind   `json:"kind"`
	Questions QuestionSet `json:"questions"`
	Fallback  bool        `json:"fallback"`
}

type RecommendationResponse struct {
	SessionID string                  `json:"session_id"`
	Document  *RecommendationDocument `json:"document"`
	Fallback  bool                    `json:"fallback"`
}

type SessionDTO struct {
	ID           string    `json:"session_id"`
	Phase        Phase     `json:"phase"`
	CurrentRound int       `json:"current_round"`
	TotalRounds  int       `json:"total_rounds"`
	HasDocument  bool      `json:"has_document"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)
