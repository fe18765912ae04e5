package llm

import (
	"context"
	"errors"
)

// Backend 模型后端
type Backend string

const (
	OpenAI Backend = "openai"
	Claude Backend = "claude"
)

// Other 返回另一个后端
func (b Backend) Other() Backend {
	if b == OpenAI {
		return Claude
	}
	return OpenAI
}

// String implements fmt.Stringer
func (b Backend) String() string { return string(b) }

var (
	ErrAuth          = errors.New("model authentication failed")
	ErrRateLimited   = errors.New("model rate limited")
	ErrTimeout       = errors.New("model request timed out")
	ErrUnavailable   = errors.New("model request failed")
	ErrEmptyResponse = errors.New("model returned empty response")
	ErrNotConfigured = errors.New("model backend not configured")
)

// systemPrompt 所有章节共用的系统提示词，章节角色写在用户提示词里
const systemPrompt = "You write sections of professional market research reports. Respond in Markdown only, without preamble."

// Model 单个后端的最小调用接口，不做重试
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
