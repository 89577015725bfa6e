package persona

import (
	"fmt"

	"vc-copilot-be/internal/constant"
)

// Persona is one of the fixed advisor roles a founder can chat with.
// The set is closed: new personas require a new constant and a Config entry.
type Persona string

const (
	SharkVC   Persona = "Shark VC"
	ProductPM Persona = "Product Manager"
)

// Config holds the prompt and model wiring for one persona.
type Config struct {
	Name         Persona
	SystemPrompt string
	Model        string
	MaxTokens    int
	Temperature  float64
}

var configs = map[Persona]Config{
	SharkVC: {
		Name:         SharkVC,
		SystemPrompt: constant.SharkVCSystemPromptV1,
		Model:        "perplexity/sonar-pro",
		MaxTokens:    400,
		Temperature:  0.7,
	},
	ProductPM: {
		Name:         ProductPM,
		SystemPrompt: constant.ProductPMSystemPromptV1,
		Model:        "anthropic/claude-3.5-sonnet",
		MaxTokens:    400,
		Temperature:  0.7,
	},
}

// All returns every known persona in display order.
func All() []Persona {
	return []Persona{SharkVC, ProductPM}
}

// Parse validates a raw persona value from a request.
func Parse(raw string) (Persona, error) {
	switch Persona(raw) {
	case SharkVC:
		return SharkVC, nil
	case ProductPM:
		return ProductPM, nil
	}
	return "", fmt.Errorf("unknown persona %q (valid: %q, %q)", raw, SharkVC, ProductPM)
}

func (p Persona) String() string {
	return string(p)
}

// GetConfig returns the configuration for a persona.
func GetConfig(p Persona) Config {
	return configs[p]
}
