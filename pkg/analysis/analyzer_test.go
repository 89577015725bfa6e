package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vc-copilot-be/pkg/persona"
)

const completeDeck = `
Our founding team: the CEO spent eight years at Stripe, the CTO built ML infra
at Datadog; deep leadership experience. The market is a $4 billion TAM, an
addressable opportunity growing 30% a year. Traction: 12,000 users, $85k MRR,
revenue growth of 18% m/m, 92% retention across customers. Unit economics:
CAC of $210 against an LTV of $3,400, 78% gross margin, clear monetization.
Competitors exist but our differentiation is a data moat and a defensible
competitive advantage. The problem is a daily pain point: compliance reviews
are a frustration that costs teams a full day each week.
`

func TestAnalyzeGapsCompleteDeckHasNoVCGaps(t *testing.T) {
	res := AnalyzeGaps(completeDeck, persona.SharkVC)

	assert.Empty(t, res.MissingSections)
	assert.Empty(t, res.SuggestedActions)
	assert.Empty(t, res.NextSteps)
	assert.Len(t, res.HelpTooltips, 6, "tooltips cover every section regardless of coverage")
}

func TestAnalyzeGapsEmptyContentMissesEverything(t *testing.T) {
	res := AnalyzeGaps("", persona.SharkVC)

	assert.Equal(t, []string{"team", "market", "traction", "economics", "competition", "problem"}, res.MissingSections)
	assert.Len(t, res.NextSteps, 3, "next steps cap at three")
	assert.Contains(t, res.NextSteps[0], "team")
	assert.Contains(t, res.NextSteps[0], "Shark VC")
}

func TestAnalyzeGapsSingleKeywordIsNotCoverage(t *testing.T) {
	// One hit ("market") is below the two-keyword threshold.
	res := AnalyzeGaps("we operate in a market", persona.SharkVC)
	assert.Contains(t, res.MissingSections, "market")

	// Two hits clear it.
	res = AnalyzeGaps("a billion dollar market", persona.SharkVC)
	assert.NotContains(t, res.MissingSections, "market")
}

func TestAnalyzeGapsCaseInsensitive(t *testing.T) {
	res := AnalyzeGaps("huge tam, very ADDRESSABLE", persona.SharkVC)
	assert.NotContains(t, res.MissingSections, "market")
}

func TestAnalyzeGapsPriorities(t *testing.T) {
	res := AnalyzeGaps("", persona.SharkVC)

	priorities := make(map[string]string)
	for _, a := range res.SuggestedActions {
		priorities[a.Section] = a.Priority
	}
	assert.Equal(t, "high", priorities["team"])
	assert.Equal(t, "high", priorities["traction"])
	assert.Equal(t, "medium", priorities["economics"])
	assert.Equal(t, "medium", priorities["competition"])
}

func TestAnalyzeGapsProductPMRubric(t *testing.T) {
	content := `Our target user is a compliance lead; user research and JTBD
interviews shaped the user persona. The problem shows up as workflow friction.
Success metrics: engagement, retention and conversion KPIs.`

	res := AnalyzeGaps(content, persona.ProductPM)

	require.NotContains(t, res.MissingSections, "persona")
	require.NotContains(t, res.MissingSections, "problem")
	require.NotContains(t, res.MissingSections, "metrics")
	assert.Contains(t, res.MissingSections, "solution")
	assert.Contains(t, res.MissingSections, "roadmap")
	assert.Len(t, res.HelpTooltips, 5)

	for _, step := range res.NextSteps {
		assert.Contains(t, step, "Product Manager")
	}
}
