package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Persona
		wantErr bool
	}{
		{name: "shark vc", raw: "Shark VC", want: SharkVC},
		{name: "product manager", raw: "Product Manager", want: ProductPM},
		{name: "wrong case rejected", raw: "shark vc", wantErr: true},
		{name: "empty rejected", raw: "", wantErr: true},
		{name: "unknown rejected", raw: "CFO", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEveryPersonaHasFullConfig(t *testing.T) {
	for _, p := range All() {
		cfg := GetConfig(p)
		assert.Equal(t, p, cfg.Name)
		assert.NotEmpty(t, cfg.SystemPrompt, "persona %s needs a system prompt", p)
		assert.NotEmpty(t, cfg.Model, "persona %s needs a model", p)
		assert.Greater(t, cfg.MaxTokens, 0)
		assert.Greater(t, cfg.Temperature, 0.0)
	}
}

func TestGetConfigUnknownIsZero(t *testing.T) {
	cfg := GetConfig(Persona("CFO"))
	assert.Empty(t, cfg.Model)
}
