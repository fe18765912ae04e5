package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
	"github.com/iWorld-y/market_research/app/market_research/pkg/logger"
)

// Router 按后端分发模型调用，所有后端共用一个限流器
type Router struct {
	models  map[Backend]Model
	limiter *rate.Limiter
}

// NewRouter 根据配置创建已配置凭证的后端
func NewRouter(ctx context.Context, cfg *config.Config) (*Router, error) {
	lc := cfg.LLM
	models := make(map[Backend]Model, 2)

	if cfg.HasOpenAI() {
		m, err := newOpenAIModel(ctx, lc.OpenAI, lc.Timeout, lc.Temperature, lc.MaxTokens)
		if err != nil {
			return nil, err
		}
		models[OpenAI] = m
	}
	if cfg.HasClaude() {
		models[Claude] = newClaudeModel(lc.Claude, lc.Timeout, lc.Temperature, lc.MaxTokens)
	}

	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, cfg.Concurrency.QPS)
	logger.Log.Debugf("限流器已配置: Limit=%.2f req/s, Burst=%d", limit, cfg.Concurrency.QPS)

	return NewRouterWithModels(models, limiter), nil
}

// NewRouterWithModels 使用给定后端创建 Router，limiter 为 nil 时不限流
func NewRouterWithModels(models map[Backend]Model, limiter *rate.Limiter) *Router {
	m := make(map[Backend]Model, len(models))
	for b, model := range models {
		if model != nil {
			m[b] = model
		}
	}
	return &Router{models: m, limiter: limiter}
}

// Configured 后端是否可用
func (r *Router) Configured(b Backend) bool {
	_, ok := r.models[b]
	return ok
}

// Generate 调用指定后端，错误已归类为本包的哨兵错误
func (r *Router) Generate(ctx context.Context, b Backend, prompt string) (string, error) {
	m, ok := r.models[b]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotConfigured, b)
	}
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", classify(err)
		}
	}

	text, err := m.Complete(ctx, prompt)
	if err != nil {
		return "", classify(err)
	}
	return text, nil
}
