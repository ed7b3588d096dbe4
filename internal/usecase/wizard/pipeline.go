// Package wizard implements the advisor pipeline: an N-round question/answer
// state machine over a single injected completion function. The pipeline
// never loops or schedules anything itself; it advances strictly on
// caller-supplied input and is synchronous end-to-end.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/archguru/advisor-backend/internal/entity"
	"github.com/archguru/advisor-backend/internal/prompt"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Pipeline owns the wizard state of one session. It assumes single-caller
// usage and holds no internal lock; the surrounding session layer serializes
// access.
type Pipeline struct {
	cfg       Config
	completer Completer
	logger    *zap.Logger
	state     entity.WizardState
}

// StepResult is the outcome of an answer submission: either the next
// question round or, after the final round, the recommendation document.
type StepResult struct {
	NextRound        *entity.Round
	NextRoundNumber  int
	Document         *entity.RecommendationDocument
	DocumentFallback bool
}

func NewPipeline(cfg Config, completer Completer, logger *zap.Logger) *Pipeline {
	now := time.Now()
	return &Pipeline{
		cfg:       cfg,
		completer: completer,
		logger:    logger,
		state: entity.WizardState{
			Phase:     entity.PhaseCollecting,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// TotalRounds returns the number of configured question rounds.
func (p *Pipeline) TotalRounds() int {
	return len(p.cfg.Rounds)
}

// State returns a copy of the current wizard state. Rounds and answer maps
// are copied so callers cannot mutate pipeline internals.
func (p *Pipeline) State() entity.WizardState {
	st := p.state
	st.Rounds = copyRounds(p.state.Rounds)
	if p.state.Document != nil {
		doc := *p.state.Document
		st.Document = &doc
	}
	return st
}

// SubmitProject validates and stores the project facts, generates the first
// question round and advances the pipeline to Questioning(1). On a malformed
// model reply the round carries the fixed fallback list and Fallback=true;
// the phase still advances.
func (p *Pipeline) SubmitProject(ctx context.Context, facts entity.ProjectFacts) (*entity.Round, error) {
	if p.state.Phase != entity.PhaseCollecting {
		return nil, fmt.Errorf("%w: submit project on phase '%s'", entity.ErrWrongPhase, p.state.Phase)
	}

	if err := p.validateFacts(facts); err != nil {
		return nil, err
	}

	round, err := p.generateRound(ctx, 0, facts, nil)
	if err != nil {
		return nil, err
	}

	p.state.Facts = facts
	p.state.Rounds = []entity.Round{*round}
	p.state.Phase = entity.PhaseQuestioning
	p.state.CurrentRound = 1
	p.touch()

	ctxzap.Info(ctx, "project submitted, first question round generated",
		zap.Int("question_count", len(round.Questions)),
		zap.Bool("fallback", round.Fallback),
	)

	return round, nil
}

// SubmitAnswers records the answers for the given round. For intermediate
// rounds it generates and returns the next round; after the final round it
// runs synthesis and returns the recommendation document. The round number
// must match the pipeline's current round.
func (p *Pipeline) SubmitAnswers(ctx context.Context, round int, answers entity.AnswerMap) (*StepResult, error) {
	switch p.state.Phase {
	case entity.PhaseQuestioning:
		if round != p.state.CurrentRound {
			return nil, fmt.Errorf("%w: answers for round %d while on round %d", entity.ErrWrongPhase, round, p.state.CurrentRound)
		}
	case entity.PhaseSynthesizing:
		// A failed synthesis leaves the final round's answers committed;
		// resubmitting that round retries synthesis.
		if round != len(p.cfg.Rounds) {
			return nil, fmt.Errorf("%w: answers for round %d while synthesizing", entity.ErrWrongPhase, round)
		}
	default:
		return nil, fmt.Errorf("%w: submit answers on phase '%s'", entity.ErrWrongPhase, p.state.Phase)
	}

	retained := filterAnswers(answers)

	if round < len(p.cfg.Rounds) {
		next, err := p.generateRound(ctx, round, p.state.Facts, p.state.Rounds[:round])
		if err != nil {
			// Upstream failure: nothing committed, retry is the same call.
			return nil, err
		}

		p.state.Rounds[round-1].Answers = retained
		p.state.Rounds = append(p.state.Rounds[:round], *next)
		p.state.CurrentRound = round + 1
		p.touch()

		ctxzap.Info(ctx, "answers recorded, next question round generated",
			zap.Int("round", round),
			zap.Int("answer_count", len(retained)),
			zap.Int("next_round", p.state.CurrentRound),
			zap.Bool("fallback", next.Fallback),
		)

		return &StepResult{NextRound: next, NextRoundNumber: p.state.CurrentRound}, nil
	}

	p.state.Rounds[round-1].Answers = retained
	p.state.Phase = entity.PhaseSynthesizing
	p.touch()

	doc, docFallback, err := p.Synthesize(ctx)
	if err != nil {
		return nil, err
	}

	return &StepResult{Document: doc, DocumentFallback: docFallback}, nil
}

// Synthesize performs the two chained completion calls: a free-form analysis
// of everything collected, then a schema-constrained recommendation that
// embeds the analysis verbatim and carries the full prior message history.
// A malformed recommendation reply yields the full fallback document; the
// pipeline still finishes in Done.
func (p *Pipeline) Synthesize(ctx context.Context) (*entity.RecommendationDocument, bool, error) {
	if p.state.Phase != entity.PhaseSynthesizing {
		return nil, false, fmt.Errorf("%w: synthesize on phase '%s'", entity.ErrWrongPhase, p.state.Phase)
	}

	analysisPrompt := prompt.RenderAnalysisPrompt(p.state.Facts, p.state.Rounds)
	messages := analysisPrompt.Messages()

	analysis, err := p.completer.Complete(ctx, messages)
	if err != nil {
		return nil, false, fmt.Errorf("analysis completion: %w", err)
	}

	analysis = strings.TrimSpace(analysis)
	if analysis == "" {
		ctxzap.Warn(ctx, "analysis reply is empty, using fallback analysis text")
		analysis = fallbackAnalysis
	}

	recPrompt := prompt.RenderRecommendationPrompt(analysis)
	messages = append(messages,
		entity.ChatMessage{Role: entity.RoleAssistant, Content: analysis},
		entity.ChatMessage{Role: entity.RoleUser, Content: recPrompt.User},
	)

	reply, err := p.completer.Complete(ctx, messages)
	if err != nil {
		return nil, false, fmt.Errorf("recommendation completion: %w", err)
	}

	doc, parseErr := parseRecommendation(reply)
	docFallback := false
	if parseErr != nil {
		ctxzap.Warn(ctx, "recommendation reply failed parsing contract, using fallback document",
			zap.Error(parseErr),
		)
		doc = fallbackDocument()
		docFallback = true
	}

	p.state.Analysis = analysis
	p.state.Document = doc
	p.state.DocFallback = docFallback
	p.state.Phase = entity.PhaseDone
	p.touch()

	ctxzap.Info(ctx, "recommendation document produced",
		zap.Bool("fallback", docFallback),
	)

	return doc, docFallback, nil
}

// Back moves the pipeline exactly one phase backwards. Data collected up to
// the target phase is preserved; data of the phases ahead of it is discarded.
func (p *Pipeline) Back() error {
	switch p.state.Phase {
	case entity.PhaseQuestioning:
		if p.state.CurrentRound > 1 {
			p.state.Rounds = p.state.Rounds[:p.state.CurrentRound-1]
			p.state.CurrentRound--
		} else {
			p.state.Rounds = nil
			p.state.CurrentRound = 0
			p.state.Phase = entity.PhaseCollecting
		}
	case entity.PhaseSynthesizing:
		p.state.Analysis = ""
		p.state.CurrentRound = len(p.state.Rounds)
		p.state.Phase = entity.PhaseQuestioning
	default:
		return fmt.Errorf("%w: back on phase '%s'", entity.ErrWrongPhase, p.state.Phase)
	}

	p.touch()
	return nil
}

// Reset unconditionally returns the pipeline to its initial empty state.
func (p *Pipeline) Reset() {
	now := time.Now()
	p.state = entity.WizardState{
		Phase:     entity.PhaseCollecting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// generateRound builds the prompt for the round at index idx, invokes the
// completion function and parses the reply. A parse failure substitutes the
// round's fixed fallback list; only an upstream failure is returned as error.
func (p *Pipeline) generateRound(ctx context.Context, idx int, facts entity.ProjectFacts, prior []entity.Round) (*entity.Round, error) {
	rc := p.cfg.Rounds[idx]

	pr := prompt.RenderQuestionPrompt(rc.Kind, facts, prior)

	reply, err := p.completer.Complete(ctx, pr.Messages())
	if err != nil {
		return nil, fmt.Errorf("question completion: %w", err)
	}

	questions, parseErr := parseQuestionSet(rc.Kind, reply)
	if parseErr != nil {
		ctxzap.Warn(ctx, "question reply failed parsing contract, using fallback list",
			zap.String("kind", string(rc.Kind)),
			zap.Error(parseErr),
		)
		return &entity.Round{Kind: rc.Kind, Questions: rc.Fallback, Fallback: true}, nil
	}

	return &entity.Round{Kind: rc.Kind, Questions: questions}, nil
}

func (p *Pipeline) validateFacts(facts entity.ProjectFacts) error {
	if strings.TrimSpace(facts.Description) == "" {
		return fmt.Errorf("%w: description", entity.ErrMissingField)
	}

	if p.cfg.RequireMainChallenge && strings.TrimSpace(facts.MainChallenge) == "" {
		return fmt.Errorf("%w: main_challenge", entity.ErrMissingField)
	}

	for _, c := range facts.Challenges {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) touch() {
	p.state.UpdatedAt = time.Now()
}

// filterAnswers drops empty answers, keeping the rest keyed by question text
// exactly as submitted.
func filterAnswers(answers entity.AnswerMap) entity.AnswerMap {
	retained := make(entity.AnswerMap, len(answers))
	for question, answer := range answers {
		if strings.TrimSpace(answer) == "" {
			continue
		}
		retained[question] = answer
	}
	return retained
}

func copyRounds(rounds []entity.Round) []entity.Round {
	if rounds == nil {
		return nil
	}
	out := make([]entity.Round, len(rounds))
	for i, r := range rounds {
		out[i] = r
		out[i].Questions = append(entity.QuestionSet(nil), r.Questions...)
		if r.Answers != nil {
			answers := make(entity.AnswerMap, len(r.Answers))
			for k, v := range r.Answers {
				answers[k] = v
			}
			out[i].Answers = answers
		}
	}
	return out
}
