package engine

import (
	"github.com/iWorld-y/market_research/app/market_research/pkg/llm"
	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
)

// ResolveBackend 模型选择策略：单一策略固定后端，Balanced 使用章节默认后端
func ResolveBackend(strategy model.ModelStrategy, spec model.SectionSpec) llm.Backend {
	switch strategy {
	case model.StrategyOpenAIOnly:
		return llm.OpenAI
	case model.StrategyClaudeOnly:
		return llm.Claude
	}
	if llm.Backend(spec.DefaultBackend) == llm.Claude {
		return llm.Claude
	}
	return llm.OpenAI
}

// permittedBackends 策略允许使用的后端
func permittedBackends(strategy model.ModelStrategy) []llm.Backend {
	switch strategy {
	case model.StrategyOpenAIOnly:
		return []llm.Backend{llm.OpenAI}
	case model.StrategyClaudeOnly:
		return []llm.Backend{llm.Claude}
	}
	return []llm.Backend{llm.OpenAI, llm.Claude}
}
