package engine

import (
	"context"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/market_research/app/market_research/pkg/logger"
	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
	"github.com/iWorld-y/market_research/app/market_research/pkg/search"
)

// 摘要短于该长度时尝试抓取正文
const minSnippetLen = 40

// searchQuery 由主题和分类生成主查询
func searchQuery(req model.ReportRequest) string {
	q := req.Topic + " market analysis"
	if req.Category != "" && !strings.EqualFold(req.Category, "Custom") {
		q += " " + req.Category
	}
	return q
}

// gatherSearch 在第一个章节之前执行搜索，失败只记录警告
func (e *Engine) gatherSearch(ctx context.Context, rc *model.RunContext) {
	rc.SearchUsed = true
	if e.searcher == nil {
		rc.SearchFailed = true
		rc.Warn("web search was requested but no search provider is configured")
		logger.Log.Warn("未配置搜索服务，跳过联网搜索")
		return
	}

	queries := append([]string{searchQuery(rc.Request)}, rc.Request.CustomQueries...)
	seen := make(map[string]bool)
	for _, q := range queries {
		results, err := e.searchOnce(ctx, q)
		if err != nil {
			rc.SearchFailed = true
			rc.Warn("web search for %q failed: %v", q, err)
			logger.Log.Warnf("搜索失败 [%s]: %v", q, err)
			continue
		}
		for _, r := range results {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			rc.SearchResults = append(rc.SearchResults, model.SearchResult{
				Title:   r.Title,
				URL:     r.URL,
				Snippet: r.Snippet,
			})
		}
	}
	logger.Log.Infof("联网搜索完成，共 %d 条结果", len(rc.SearchResults))

	if e.cfg.Search.FetchMissingSnippets {
		e.fillSnippets(rc.SearchResults)
	}
}

func (e *Engine) searchOnce(ctx context.Context, query string) ([]search.Result, error) {
	sctx, cancel := context.WithTimeout(ctx, e.cfg.Search.Timeout)
	defer cancel()

	resp, err := e.searcher.Search(sctx, &search.Request{
		Query:      query,
		Topic:      "general",
		MaxResults: e.cfg.Search.MaxResults,
	})
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// fillSnippets 为摘要过短的结果抓取网页正文
func (e *Engine) fillSnippets(results []model.SearchResult) {
	for i := range results {
		if len(strings.TrimSpace(results[i].Snippet)) >= minSnippetLen {
			continue
		}
		text, err := e.fetchPage(results[i].URL, e.cfg.Search.Timeout)
		if err != nil {
			logger.Log.Debugf("抓取正文失败 [%s]: %v", results[i].URL, err)
			continue
		}
		if text = oneLine(text, snippetLimit); len(text) > len(results[i].Snippet) {
			results[i].Snippet = text
		}
	}
}

// fetchAndCleanContent 抓取 URL 并提取核心文本
func fetchAndCleanContent(url string, timeout time.Duration) (string, error) {
	article, err := readability.FromURL(url, timeout)
	if err != nil {
		return "", err
	}
	if article.Excerpt != "" {
		return article.Excerpt, nil
	}
	return article.TextContent, nil
}
