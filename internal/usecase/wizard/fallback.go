package wizard

import "github.com/archguru/advisor-backend/internal/entity"

// Fallback payloads are static literals per phase, never derived from
// partial model output, so the caller always has renderable content even
// under total model failure.

var fallbackScopeQuestions = entity.QuestionSet{
	"What industry is this project targeting?",
	"Who are the primary users of the system?",
	"What business problem does the project solve?",
	"What is your team size and technical expertise?",
	"What is your timeline and budget?",
}

var fallbackSolutionQuestions = entity.QuestionSet{
	"What technologies does your team already use?",
	"Which external systems must the solution integrate with?",
	"What data volumes do you expect the system to handle?",
	"Are there constraints on where the system can be deployed?",
	"What are your security and compliance requirements?",
}

var fallbackFinalQuestions = entity.QuestionSet{
	"Which quality attribute matters most: speed of delivery, performance, or cost?",
	"Do you prefer a managed cloud platform or self-hosted infrastructure?",
	"How much operational effort can your team sustain after launch?",
	"Is there an existing system the new one must coexist with during migration?",
}

var fallbackGenericQuestions = entity.QuestionSet{
	"What industry is this project targeting?",
	"What are your technical requirements and constraints?",
	"What is your team size and technical expertise?",
	"What is your timeline and budget?",
	"What are your security and compliance requirements?",
}

const fallbackAnalysis = "The project information could not be analyzed in detail. " +
	"The recommendation below is based on the stated description and challenges only."

func fallbackDocument() *entity.RecommendationDocument {
	return &entity.RecommendationDocument{
		Option1: entity.RecommendationOption{
			Overview:       "# Option 1: Modular Monolith\n\nUnable to generate a project-specific overview. A modular monolith is a safe default for most teams: a single deployable with strictly separated internal modules.",
			Technical:      "# Technical\n\nOne codebase, layered architecture, a relational database, and module boundaries enforced through internal interfaces. Extract services later only where scaling demands it.",
			Implementation: "# Implementation\n\nStart with a walking skeleton, add modules incrementally, automate build and deployment from day one.",
			Rationale:      "# Rationale\n\nLowest operational overhead and fastest path to production when requirements are still settling. Please retry to receive a recommendation tailored to your project.",
		},
		Option2: entity.RecommendationOption{
			Overview:       "# Option 2: Service-Oriented Architecture\n\nUnable to generate a project-specific overview. A small set of coarse-grained services suits teams that need independent scaling or deployment.",
			Technical:      "# Technical\n\nSplit by business capability, communicate over well-defined APIs, one datastore per service, centralized observability.",
			Implementation: "# Implementation\n\nBegin with two or three services at most, invest in CI/CD and infrastructure automation before splitting further.",
			Rationale:      "# Rationale\n\nHigher operational cost traded for independent delivery and scaling. Please retry to receive a recommendation tailored to your project.",
		},
	}
}
