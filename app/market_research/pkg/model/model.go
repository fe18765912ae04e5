package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ModelStrategy 模型选择策略
type ModelStrategy string

const (
	StrategyBalanced   ModelStrategy = "balanced"
	StrategyOpenAIOnly ModelStrategy = "openai"
	StrategyClaudeOnly ModelStrategy = "claude"
)

// ParseModelStrategy 解析命令行中的策略名
func ParseModelStrategy(s string) (ModelStrategy, error) {
	switch ModelStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyBalanced, "":
		return StrategyBalanced, nil
	case StrategyOpenAIOnly:
		return StrategyOpenAIOnly, nil
	case StrategyClaudeOnly:
		return StrategyClaudeOnly, nil
	}
	return "", fmt.Errorf("unknown model strategy %q (want balanced, openai or claude)", s)
}

// DetailLevel 报告详细程度
type DetailLevel string

const (
	DetailConcise       DetailLevel = "Concise"
	DetailStandard      DetailLevel = "Standard"
	DetailComprehensive DetailLevel = "Comprehensive"
)

// ParseDetailLevel 解析详细程度，大小写不敏感
func ParseDetailLevel(s string) (DetailLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "concise":
		return DetailConcise, nil
	case "standard", "":
		return DetailStandard, nil
	case "comprehensive":
		return DetailComprehensive, nil
	}
	return "", fmt.Errorf("unknown detail level %q (want Concise, Standard or Comprehensive)", s)
}

// Categories 预置的市场分类
var Categories = []string{
	"Technology", "Healthcare", "Finance", "Retail", "Energy",
	"Entertainment", "Education", "Manufacturing", "Transportation", "Custom",
}

// ErrInvalidRequest 请求参数不合法
var ErrInvalidRequest = errors.New("invalid report request")

// ReportRequest 一次报告生成请求，运行开始后不可修改
type ReportRequest struct {
	Topic         string        `json:"topic"`
	Category      string        `json:"category"`
	ModelStrategy ModelStrategy `json:"model_strategy"`
	DetailLevel   DetailLevel   `json:"detail_level"`
	UseWebSearch  bool          `json:"use_web_search"`
	CustomQueries []string      `json:"custom_queries,omitempty"`
}

// Normalize 去除空白并补齐默认值，返回副本
func (r ReportRequest) Normalize() ReportRequest {
	out := r
	out.Topic = strings.TrimSpace(r.Topic)
	out.Category = strings.TrimSpace(r.Category)
	if out.Category == "" {
		out.Category = "Custom"
	}
	if out.ModelStrategy == "" {
		out.ModelStrategy = StrategyBalanced
	}
	if out.DetailLevel == "" {
		out.DetailLevel = DetailStandard
	}
	out.CustomQueries = nil
	for _, q := range r.CustomQueries {
		if q = strings.TrimSpace(q); q != "" {
			out.CustomQueries = append(out.CustomQueries, q)
		}
	}
	return out
}

// Validate 校验请求
func (r ReportRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("%w: topic is empty", ErrInvalidRequest)
	}
	switch r.ModelStrategy {
	case StrategyBalanced, StrategyOpenAIOnly, StrategyClaudeOnly:
	default:
		return fmt.Errorf("%w: unknown model strategy %q", ErrInvalidRequest, r.ModelStrategy)
	}
	switch r.DetailLevel {
	case DetailConcise, DetailStandard, DetailComprehensive:
	default:
		return fmt.Errorf("%w: unknown detail level %q", ErrInvalidRequest, r.DetailLevel)
	}
	return nil
}

// SectionSpec 报告章节的静态定义
type SectionSpec struct {
	ID             int
	Name           string
	Agent          string
	Role           string
	PromptTemplate string // 含一个 %s 占位符，替换为主题
	DefaultBackend string
}

// SearchResult 注入到提示词中的搜索结果
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// CompletedSection 已完成的章节
type CompletedSection struct {
	ID          int
	Name        string
	Text        string
	Backend     string
	Placeholder bool
}

// RunContext 单次运行的累积上下文，只属于一次运行
type RunContext struct {
	Request       ReportRequest
	Completed     []CompletedSection
	SearchResults []SearchResult
	SearchUsed    bool
	SearchFailed  bool
	Warnings      []string
}

// NewRunContext 为一次运行创建上下文
func NewRunContext(req ReportRequest) *RunContext {
	return &RunContext{Request: req}
}

// Append 追加已完成章节，章节 ID 必须严格递增
func (rc *RunContext) Append(sec CompletedSection) error {
	if n := len(rc.Completed); n > 0 && sec.ID <= rc.Completed[n-1].ID {
		return fmt.Errorf("section %d appended after section %d", sec.ID, rc.Completed[n-1].ID)
	}
	rc.Completed = append(rc.Completed, sec)
	return nil
}

// Warn 记录一条警告
func (rc *RunContext) Warn(format string, args ...any) {
	rc.Warnings = append(rc.Warnings, fmt.Sprintf(format, args...))
}

// ReportSection 报告中的一个章节
type ReportSection struct {
	Name        string `json:"name"`
	Text        string `json:"text"`
	Backend     string `json:"backend"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// GeneratedReport 生成完成的报告
type GeneratedReport struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Topic        string          `json:"topic"`
	Category     string          `json:"category"`
	CreatedAt    time.Time       `json:"created_at"`
	Sections     []ReportSection `json:"sections"`
	FullText     string          `json:"full_text"`
	Warnings     []string        `json:"warnings,omitempty"`
	SearchUsed   bool            `json:"search_used"`
	SearchFailed bool            `json:"search_failed"`
}

// Section 按名称查找章节
func (r *GeneratedReport) Section(name string) (ReportSection, bool) {
	for _, s := range r.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return ReportSection{}, false
}
