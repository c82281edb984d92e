package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompound(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name string
		text string
		sign int // -1 negative, 0 neutral-ish, 1 positive
	}{
		{"positive", "This is wonderful, I love it!", 1},
		{"negative", "This is terrible, I hate it and it makes me furious.", -1},
		{"neutral", "The report was published on Monday.", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := analyzer.Compound(tt.text)
			assert.GreaterOrEqual(t, score, -1.0)
			assert.LessOrEqual(t, score, 1.0)

			switch tt.sign {
			case 1:
				assert.Greater(t, score, 0.05)
			case -1:
				assert.Less(t, score, -0.05)
			default:
				assert.InDelta(t, 0, score, 0.3)
			}
		})
	}
}

func TestCompound_StronglyNegativeCrossesEscalationThreshold(t *testing.T) {
	analyzer := NewAnalyzer()

	score := analyzer.Compound("This is horrible, awful, disgusting and I absolutely hate it!!")
	assert.Less(t, score, -0.5)
}
