package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/iWorld-y/market_research/app/market_research/pkg/llm"
	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "  Demand is rising.\n", "Demand is rising."},
		{"fenced markdown", "```markdown\n## Trends\n- one\n```", "## Trends\n- one"},
		{"fenced bare", "```\ntext\n```", "text"},
		{"ansi", "\x1b[1mBold\x1b[0m text", "Bold text"},
		{"inner fence kept", "Intro\n```go\nx := 1\n```\nOutro", "Intro\n```go\nx := 1\n```\nOutro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(tt.raw)
			if err != nil {
				t.Fatalf("ExtractText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractText_Empty(t *testing.T) {
	for _, raw := range []string{"", "   \n\t", "```\n\n```", "\x1b[0m"} {
		if _, err := ExtractText(raw); !errors.Is(err, llm.ErrEmptyResponse) {
			t.Errorf("ExtractText(%q) error = %v, want ErrEmptyResponse", raw, err)
		}
	}
}

func TestStripLeadingHeading(t *testing.T) {
	got := stripLeadingHeading("## Competitive Landscape\n\nThree players dominate.", "Competitive Landscape")
	if got != "Three players dominate." {
		t.Errorf("stripLeadingHeading() = %q", got)
	}
	got = stripLeadingHeading("### **competitive landscape:**\nX", "Competitive Landscape")
	if got != "X" {
		t.Errorf("stripLeadingHeading() = %q", got)
	}
	keep := "## Key Players\nX"
	if got := stripLeadingHeading(keep, "Competitive Landscape"); got != keep {
		t.Errorf("stripLeadingHeading() changed unrelated heading: %q", got)
	}
}

func TestPlaceholderText(t *testing.T) {
	spec := model.SectionSpec{Name: "Market Size and Opportunity"}
	got := placeholderText(spec, llm.ErrRateLimited)
	if !strings.Contains(got, "market size and opportunity") || !strings.Contains(got, "rate limit") {
		t.Errorf("placeholderText() = %q", got)
	}
}
