package factory

import (
	"errors"
	"fmt"

	"github.com/iWorld-y/market_research/app/market_research/pkg/brave"
	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
	"github.com/iWorld-y/market_research/app/market_research/pkg/search"
	"github.com/iWorld-y/market_research/app/market_research/pkg/searxng"
	"github.com/iWorld-y/market_research/app/market_research/pkg/tavily"
)

// ErrNotConfigured 没有可用的搜索服务
var ErrNotConfigured = errors.New("search provider not configured")

// NewSearcher 根据配置创建搜索实例
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	sc := cfg.Search
	provider := sc.Provider
	if provider == "" {
		// 未指定时按 brave -> tavily -> searxng 顺序选择有凭证的服务
		switch {
		case sc.Brave.APIKey != "":
			provider = "brave"
		case sc.Tavily.APIKey != "":
			provider = "tavily"
		case sc.SearXNG.BaseURL != "":
			provider = "searxng"
		default:
			return nil, ErrNotConfigured
		}
	}

	switch provider {
	case "brave":
		if sc.Brave.APIKey == "" {
			return nil, fmt.Errorf("%w: brave api key is missing", ErrNotConfigured)
		}
		return brave.NewClient(sc.Brave.APIKey, sc.Timeout), nil

	case "tavily":
		if sc.Tavily.APIKey == "" {
			return nil, fmt.Errorf("%w: tavily api key is missing", ErrNotConfigured)
		}
		return tavily.NewClient(sc.Tavily.APIKey, sc.Timeout), nil

	case "searxng":
		if sc.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("%w: searxng base url is missing", ErrNotConfigured)
		}
		return searxng.NewClient(sc.SearXNG.BaseURL, sc.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
