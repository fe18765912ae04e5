package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeModel struct {
	reply string
	err   error
	calls int
}

func (f *fakeModel) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestRouter_Generate(t *testing.T) {
	oa := &fakeModel{reply: "from openai"}
	r := NewRouterWithModels(map[Backend]Model{OpenAI: oa, Claude: nil}, nil)

	if !r.Configured(OpenAI) || r.Configured(Claude) {
		t.Fatalf("Configured() = %v/%v", r.Configured(OpenAI), r.Configured(Claude))
	}

	got, err := r.Generate(context.Background(), OpenAI, "p")
	if err != nil || got != "from openai" {
		t.Fatalf("Generate() = %q, %v", got, err)
	}

	if _, err := r.Generate(context.Background(), Claude, "p"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Generate(claude) error = %v, want ErrNotConfigured", err)
	}
}

func TestRouter_GenerateClassifiesErrors(t *testing.T) {
	cl := &fakeModel{err: fmt.Errorf("error, status code: 429, message: Too Many Requests")}
	r := NewRouterWithModels(map[Backend]Model{Claude: cl}, nil)

	if _, err := r.Generate(context.Background(), Claude, "p"); !errors.Is(err, ErrRateLimited) {
		t.Errorf("Generate() error = %v, want ErrRateLimited", err)
	}
	if cl.calls != 1 {
		t.Errorf("calls = %d, router must not retry", cl.calls)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"deadline", context.DeadlineExceeded, ErrTimeout},
		{"wrapped deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), ErrTimeout},
		{"401 text", errors.New("error, status code: 401, message: Incorrect API key provided"), ErrAuth},
		{"invalid key", errors.New("invalid_api_key"), ErrAuth},
		{"rate limit text", errors.New("Rate limit reached for gpt-4"), ErrRateLimited},
		{"other", errors.New("connection reset by peer"), ErrUnavailable},
		{"already classified", fmt.Errorf("x: %w", ErrEmptyResponse), ErrEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); !errors.Is(got, tt.want) {
				t.Errorf("classify() = %v, want %v", got, tt.want)
			}
		})
	}

	if err := classify(context.Canceled); !errors.Is(err, context.Canceled) {
		t.Errorf("classify(Canceled) = %v", err)
	}
	if classify(nil) != nil {
		t.Error("classify(nil) != nil")
	}
}

func TestBackend_Other(t *testing.T) {
	if OpenAI.Other() != Claude || Claude.Other() != OpenAI {
		t.Error("Other() mismatch")
	}
}
