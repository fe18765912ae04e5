package search

import (
	"context"
	"errors"
)

// ErrUnavailable 搜索服务不可用（网络错误、非 2xx、解析失败等）
var ErrUnavailable = errors.New("search unavailable")

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Named 可选接口，返回搜索服务名称，用于报告中的方法说明
type Named interface {
	Name() string
}

// Request 通用搜索请求
type Request struct {
	Query      string
	Topic      string // "news" or "general"
	MaxResults int
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Snippet       string
	Score         float64
	PublishedDate string
}

// ProviderName 返回 Searcher 的名称，未实现 Named 时返回 "web search"
func ProviderName(s Searcher) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return "web search"
}
