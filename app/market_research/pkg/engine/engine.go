package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
	"github.com/iWorld-y/market_research/app/market_research/pkg/llm"
	"github.com/iWorld-y/market_research/app/market_research/pkg/logger"
	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
	"github.com/iWorld-y/market_research/app/market_research/pkg/search"
	"github.com/iWorld-y/market_research/app/market_research/pkg/search/factory"
)

// ErrNoBackend 策略允许的模型后端都没有配置
var ErrNoBackend = errors.New("no model backend configured for the requested strategy")

// ModelClient 模型调用接口，由 llm.Router 实现
type ModelClient interface {
	Generate(ctx context.Context, backend llm.Backend, prompt string) (string, error)
	Configured(backend llm.Backend) bool
}

// Engine 核心处理引擎。Engine 本身不保存运行状态，可被多个运行并发使用
type Engine struct {
	cfg         *config.Config
	models      ModelClient
	searcher    search.Searcher
	searcherSet bool
	sections    []model.SectionSpec
	fetchPage   func(url string, timeout time.Duration) (string, error)
	now         func() time.Time
	retryDelay  time.Duration
}

// Option 引擎选项
type Option func(*Engine)

// WithModelClient 指定模型客户端，不再根据配置创建
func WithModelClient(m ModelClient) Option {
	return func(e *Engine) { e.models = m }
}

// WithSearcher 指定搜索服务，传 nil 表示不使用搜索
func WithSearcher(s search.Searcher) Option {
	return func(e *Engine) {
		e.searcher = s
		e.searcherSet = true
	}
}

// WithClock 指定时间来源
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRetryDelay 限流错误后重试前的等待时间
func WithRetryDelay(d time.Duration) Option {
	return func(e *Engine) { e.retryDelay = d }
}

// NewEngine 创建引擎实例，未通过选项指定的依赖按配置创建
func NewEngine(ctx context.Context, cfg *config.Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:        cfg,
		sections:   Sections,
		fetchPage:  fetchAndCleanContent,
		now:        time.Now,
		retryDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.models == nil {
		router, err := llm.NewRouter(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("模型客户端初始化失败: %w", err)
		}
		e.models = router
	}

	if !e.searcherSet {
		searcher, err := factory.NewSearcher(cfg)
		switch {
		case errors.Is(err, factory.ErrNotConfigured):
			logger.Log.Infof("未配置搜索服务，联网搜索不可用: %v", err)
		case err != nil:
			return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
		default:
			e.searcher = searcher
		}
	}

	return e, nil
}

// RunOptions 运行选项
type RunOptions struct {
	ProgressCallback func(status string, progress int)
}

// Run 执行一次报告生成。章节失败不会中断运行，只有参数错误、没有可用后端或被取消时返回错误。
// 报告不会在这里持久化。
func (e *Engine) Run(ctx context.Context, req model.ReportRequest, opts RunOptions) (*model.GeneratedReport, error) {
	progress := func(status string, p int) {
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(status, p)
		}
	}

	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := e.checkBackends(req.ModelStrategy); err != nil {
		return nil, err
	}

	createdAt := e.now()
	id := NewReportID(createdAt)
	rc := model.NewRunContext(req)

	logger.Log.Infof("开始生成报告 [%s]: topic=%q category=%s strategy=%s detail=%s search=%v",
		id, req.Topic, req.Category, req.ModelStrategy, req.DetailLevel, req.UseWebSearch)
	progress("starting", 0)

	if req.UseWebSearch {
		progress("searching the web", 5)
		e.gatherSearch(ctx, rc)
	}

	total := len(e.sections)
	for i, spec := range e.sections {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("report %s cancelled before section %q: %w", id, spec.Name, err)
		}
		progress(spec.Name, 10+i*85/total)

		sec, err := e.generateSection(ctx, spec, rc)
		if err != nil {
			return nil, fmt.Errorf("report %s: %w", id, err)
		}
		if err := rc.Append(sec); err != nil {
			return nil, err
		}
	}

	report := assemble(id, createdAt, rc, search.ProviderName(e.searcher))
	progress("done", 100)
	logger.Log.Infof("报告生成完成 [%s]: %d 个章节, %d 条警告", id, len(report.Sections), len(report.Warnings))
	return report, nil
}

// checkBackends 在任何模型调用之前确认策略至少有一个可用后端
func (e *Engine) checkBackends(strategy model.ModelStrategy) error {
	for _, b := range permittedBackends(strategy) {
		if e.models.Configured(b) {
			return nil
		}
	}
	return fmt.Errorf("%w (strategy %s)", ErrNoBackend, strategy)
}

// resolve Balanced 策略下默认后端未配置时改用另一个后端
func (e *Engine) resolve(strategy model.ModelStrategy, spec model.SectionSpec) llm.Backend {
	b := ResolveBackend(strategy, spec)
	if strategy == model.StrategyBalanced && !e.models.Configured(b) && e.models.Configured(b.Other()) {
		return b.Other()
	}
	return b
}

func (e *Engine) budget(b llm.Backend) int {
	if b == llm.Claude {
		return e.cfg.LLM.Claude.MaxPromptChars
	}
	return e.cfg.LLM.OpenAI.MaxPromptChars
}

// generateSection 生成单个章节：同一后端重试一次，Balanced 下再切换到另一个后端，最后使用占位内容。
// 只有上下文被取消时返回错误。
func (e *Engine) generateSection(ctx context.Context, spec model.SectionSpec, rc *model.RunContext) (model.CompletedSection, error) {
	strategy := rc.Request.ModelStrategy
	primary := e.resolve(strategy, spec)
	chain := []llm.Backend{primary, primary}
	if alt := primary.Other(); strategy == model.StrategyBalanced && e.models.Configured(alt) {
		chain = append(chain, alt, alt)
	}

	var lastErr error
	for attempt, backend := range chain {
		if err := ctx.Err(); err != nil {
			return model.CompletedSection{}, fmt.Errorf("cancelled during section %q: %w", spec.Name, err)
		}
		if errors.Is(lastErr, llm.ErrRateLimited) && e.retryDelay > 0 {
			select {
			case <-ctx.Done():
				return model.CompletedSection{}, fmt.Errorf("cancelled during section %q: %w", spec.Name, ctx.Err())
			case <-time.After(e.retryDelay):
			}
		}

		prompt := BuildPrompt(spec, rc, e.budget(backend))
		text, err := e.callModel(ctx, backend, prompt)
		if err == nil {
			if backend != primary {
				rc.Warn("section %q was generated by %s after %s failed", spec.Name, backend, primary)
			}
			logger.Log.Infof("章节 [%s] 生成完成 (backend=%s)", spec.Name, backend)
			return model.CompletedSection{ID: spec.ID, Name: spec.Name, Text: text, Backend: string(backend)}, nil
		}
		if ctx.Err() != nil {
			return model.CompletedSection{}, fmt.Errorf("cancelled during section %q: %w", spec.Name, ctx.Err())
		}

		lastErr = err
		logger.Log.Warnf("章节 [%s] 第 %d 次调用失败 (backend=%s): %v", spec.Name, attempt+1, backend, err)
	}

	rc.Warn("section %q could not be generated: %v", spec.Name, lastErr)
	logger.Log.Errorf("章节 [%s] 生成失败，使用占位内容: %v", spec.Name, lastErr)
	return model.CompletedSection{
		ID:          spec.ID,
		Name:        spec.Name,
		Text:        placeholderText(spec, lastErr),
		Placeholder: true,
	}, nil
}

// callModel 单次模型调用，带超时
func (e *Engine) callModel(ctx context.Context, backend llm.Backend, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.LLM.Timeout)
	defer cancel()

	raw, err := e.models.Generate(callCtx, backend, prompt)
	if err != nil {
		return "", err
	}
	return ExtractText(raw)
}
