package analysis

import (
	"fmt"
	"strings"

	"vc-copilot-be/pkg/persona"
)

// Result is the outcome of one rubric pass over a founder's documents.
type Result struct {
	MissingSections  []string          `json:"missing_sections"`
	SuggestedActions []SuggestedAction `json:"suggested_actions"`
	HelpTooltips     map[string]string `json:"help_tooltips"`
	NextSteps        []string          `json:"next_steps"`
}

type SuggestedAction struct {
	Section  string `json:"section"`
	Action   string `json:"action"`
	Priority string `json:"priority"`
}

type rubricSection struct {
	id            string
	keywords      []string
	helpText      string
	missingAction string
}

// Rubrics are ordered by investor/PM priority; next-step generation walks this
// order and keeps the top three gaps.
var vcRubric = []rubricSection{
	{
		id:            "team",
		keywords:      []string{"founder", "team", "experience", "background", "CEO", "CTO", "leadership"},
		helpText:      "Investors need to know why YOU are the right team to solve this problem. Include founding team backgrounds, relevant experience, and unique insights.",
		missingAction: "Upload a team slide or answer: What unique experience qualifies your team to solve this problem?",
	},
	{
		id:            "market",
		keywords:      []string{"TAM", "market size", "billion", "opportunity", "market", "addressable"},
		helpText:      "VCs want to see a large, growing market. Show Total Addressable Market (TAM), Serviceable Available Market (SAM), and your target market size.",
		missingAction: "Provide market sizing data or answer: What's your TAM? How fast is the market growing? What's your target market?",
	},
	{
		id:            "traction",
		keywords:      []string{"users", "revenue", "growth", "MRR", "customers", "metrics", "retention"},
		helpText:      "Traction proves market demand. Show user growth, revenue metrics, retention rates, and key partnerships.",
		missingAction: "Share your traction metrics or answer: How many users/customers do you have? What's your monthly growth rate? What's your retention?",
	},
	{
		id:            "economics",
		keywords:      []string{"CAC", "LTV", "unit economics", "margin", "profitability", "monetization"},
		helpText:      "Unit economics show path to profitability. Include Customer Acquisition Cost (CAC), Lifetime Value (LTV), and gross margins.",
		missingAction: "Define your unit economics: What's your CAC and LTV? How do you make money per customer?",
	},
	{
		id:            "competition",
		keywords:      []string{"competitors", "competitive", "advantage", "differentiation", "moat"},
		helpText:      "Show understanding of competitive landscape and your defensible advantages.",
		missingAction: "Analyze your competition: Who are your main competitors and what's your unique advantage?",
	},
	{
		id:            "problem",
		keywords:      []string{"problem", "pain point", "challenge", "issue", "frustration"},
		helpText:      "Clearly articulate the problem you're solving and why it matters to customers.",
		missingAction: "Define the problem: What specific pain point are you solving? How painful is it?",
	},
}

var pmRubric = []rubricSection{
	{
		id:            "persona",
		keywords:      []string{"user persona", "JTBD", "customer profile", "target user", "user research"},
		helpText:      "Clear user personas drive product decisions. Define who your users are, their pain points, and jobs-to-be-done.",
		missingAction: "Create user personas or answer: Who exactly is your target user? What job are they hiring your product to do?",
	},
	{
		id:            "problem",
		keywords:      []string{"problem", "pain point", "user frustration", "workflow", "friction"},
		helpText:      "Deep problem understanding is crucial. Map user workflows and identify specific friction points.",
		missingAction: "Detail the problem: What specific workflow breaks? What happens when users can't solve this?",
	},
	{
		id:            "solution",
		keywords:      []string{"solution", "feature", "product", "functionality", "user experience"},
		helpText:      "Product solution should directly address user pain points with clear value proposition.",
		missingAction: "Describe your solution: How exactly does your product solve the user's problem? What's the user flow?",
	},
	{
		id:            "metrics",
		keywords:      []string{"metrics", "KPI", "engagement", "retention", "conversion", "success"},
		helpText:      "Define success metrics that prove product-market fit and user value.",
		missingAction: "Define success metrics: How do you measure user success? What are your key engagement metrics?",
	},
	{
		id:            "roadmap",
		keywords:      []string{"roadmap", "timeline", "milestone", "development", "iteration"},
		helpText:      "Product roadmap shows strategic thinking and prioritization framework.",
		missingAction: "Share your roadmap: What are your next 3 major product milestones? How do you prioritize features?",
	},
}

// highPrioritySections get "high" priority in suggested actions; everything
// else is "medium".
var highPrioritySections = map[string]bool{
	"team":     true,
	"market":   true,
	"traction": true,
	"problem":  true,
}

// AnalyzeGaps scores document content against the persona's rubric.
// A section counts as covered when at least two of its keywords appear
// (case-insensitive). Missing sections produce suggested actions and up to
// three prioritized next steps.
func AnalyzeGaps(content string, p persona.Persona) Result {
	rubric := vcRubric
	if p == persona.ProductPM {
		rubric = pmRubric
	}

	lower := strings.ToLower(content)

	result := Result{
		MissingSections:  []string{},
		SuggestedActions: []SuggestedAction{},
		HelpTooltips:     make(map[string]string, len(rubric)),
		NextSteps:        []string{},
	}

	for _, section := range rubric {
		found := 0
		for _, kw := range section.keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				found++
			}
		}

		if found < 2 {
			result.MissingSections = append(result.MissingSections, section.id)

			priority := "medium"
			if highPrioritySections[section.id] {
				priority = "high"
			}
			result.SuggestedActions = append(result.SuggestedActions, SuggestedAction{
				Section:  section.id,
				Action:   section.missingAction,
				Priority: priority,
			})
		}

		result.HelpTooltips[section.id] = section.helpText
	}

	for _, section := range rubric {
		if len(result.NextSteps) >= 3 {
			break
		}
		for _, missing := range result.MissingSections {
			if missing == section.id {
				result.NextSteps = append(result.NextSteps,
					fmt.Sprintf("Focus on %s - this is critical for %s", section.id, p.String()))
				break
			}
		}
	}

	return result
}
