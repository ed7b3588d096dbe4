// Package prompt renders the wizard's structured inputs into the message
// pairs sent to the completion endpoint. Everything here is pure: any input,
// including empty collections, renders to a valid prompt.
package prompt

import (
	"fmt"
	"strings"

	"github.com/archguru/advisor-backend/internal/entity"
)

const (
	questionSystem = "You are an expert software architect. " +
		"Always respond with valid JSON arrays when asked."

	synthesisSystem = "You are an expert software architect. " +
		"Always respond with valid JSON when requested."
)

var questionFocus = map[entity.RoundKind]string{
	entity.RoundKindScope: `Generate 5-12 specific questions about:
1. The industry and business context
2. The scope and boundaries of the system
3. Team capabilities and resources
4. Timeline and budget considerations
5. Security and compliance needs (if applicable)`,

	entity.RoundKindSolution: `Generate 5-12 specific questions about:
1. Preferred technologies and existing infrastructure
2. Integration points and external systems
3. Data volumes, storage and performance expectations
4. Deployment and operational constraints`,

	entity.RoundKindFinal: `Generate 5-8 final clarifying questions that resolve
remaining ambiguities before an architecture recommendation can be made.
Focus on trade-offs the answers so far have left open.`,

	entity.RoundKindGeneric: `Generate 5-8 specific questions about:
1. The industry and business context
2. Technical requirements and constraints
3. Team capabilities and resources
4. Timeline and budget considerations
5. Security and compliance needs (if applicable)`,
}

// RenderQuestionPrompt builds the prompt for one question round. priorAnswers
// contains the answers of every earlier round, in round order; it may be empty.
func RenderQuestionPrompt(kind entity.RoundKind, facts entity.ProjectFacts, priorRounds []entity.Round) entity.Prompt {
	var sb strings.Builder

	sb.WriteString("As an expert software architect, generate relevant questions to gather more information about this project.\n\n")
	writeFacts(&sb, facts)

	if block := formatAnswers(priorRounds); block != "" {
		sb.WriteString("\nAnswers collected so far:\n")
		sb.WriteString(block)
	}

	sb.WriteString("\n")
	sb.WriteString(questionFocus[kind])
	sb.WriteString("\n\nIMPORTANT: Return ONLY a JSON array of strings, with each string being a question.\n")
	sb.WriteString(`Format example: ["Question 1?", "Question 2?", "Question 3?"]`)

	return entity.Prompt{System: questionSystem, User: sb.String()}
}

// RenderAnalysisPrompt builds the first synthesis call: a free-form analysis
// of everything collected. The reply has no parsing contract.
func RenderAnalysisPrompt(facts entity.ProjectFacts, rounds []entity.Round) entity.Prompt {
	var sb strings.Builder

	sb.WriteString("Analyze this software project information:\n\n")
	writeFacts(&sb, facts)

	if block := formatAnswers(rounds); block != "" {
		sb.WriteString("\nAdditional Information:\n")
		sb.WriteString(block)
	}

	sb.WriteString("\nProvide a detailed analysis of the requirements and constraints.")

	return entity.Prompt{System: synthesisSystem, User: sb.String()}
}

// RenderRecommendationPrompt builds the second synthesis call. The analysis
// text of the first call is embedded verbatim.
func RenderRecommendationPrompt(analysis string) entity.Prompt {
	var sb strings.Builder

	sb.WriteString("Based on this analysis:\n\n")
	sb.WriteString(analysis)
	sb.WriteString("\n\nGenerate an architecture recommendation with two alternative options.\n\n")
	sb.WriteString(`IMPORTANT: Return your response as a JSON object with exactly this structure:
{
    "option1": {
        "overview": "markdown content here",
        "technical": "markdown content here",
        "implementation": "markdown content here",
        "rationale": "markdown content here"
    },
    "option2": {
        "overview": "markdown content here",
        "technical": "markdown content here",
        "implementation": "markdown content here",
        "rationale": "markdown content here"
    }
}

Include in each option:
1. Overview: high-level description of the proposed architecture
2. Technical: patterns, technologies and implementation guidelines
3. Implementation: phases, resources, timeline and key decisions
4. Rationale: why this option fits the project and its trade-offs`)

	return entity.Prompt{System: synthesisSystem, User: sb.String()}
}

func writeFacts(sb *strings.Builder, facts entity.ProjectFacts) {
	if facts.Name != "" {
		fmt.Fprintf(sb, "Project Name: %s\n", facts.Name)
	}
	fmt.Fprintf(sb, "Project Description: %s\n", facts.Description)
	if facts.MainChallenge != "" {
		fmt.Fprintf(sb, "Main Challenge: %s\n", facts.MainChallenge)
	}
	fmt.Fprintf(sb, "Selected Challenges: %s\n", joinChallenges(facts.Challenges))
}

func joinChallenges(challenges []entity.Challenge) string {
	if len(challenges) == 0 {
		return "none specified"
	}
	parts := make([]string, 0, len(challenges))
	for _, c := range challenges {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}

// formatAnswers serializes answered questions of every round as a readable
// key-value block, preserving question order within each round.
func formatAnswers(rounds []entity.Round) string {
	var sb strings.Builder
	for _, round := range rounds {
		for _, q := range round.Questions {
			answer, ok := round.Answers[q]
			if !ok || answer == "" {
				continue
			}
			fmt.Fprintf(&sb, "Q: %s\nA: %s\n\n", q, answer)
		}
	}
	return sb.String()
}
