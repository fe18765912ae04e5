package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iWorld-y/market_research/app/market_research/pkg/search"
)

const defaultEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Brave 单次最多返回 20 条
const maxCount = 20

// Client Brave Search API 客户端
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient 创建一个新的 Brave 客户端
func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// Name implements search.Named
func (c *Client) Name() string { return "Brave Search" }

// SearchResponse Brave 响应中用到的部分
type SearchResponse struct {
	Web struct {
		Results []SearchResult `json:"results"`
	} `json:"web"`
}

// SearchResult Brave 单条结果
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Age         string `json:"age"`
}

// Search 执行搜索
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	count := req.MaxResults
	if count <= 0 || count > maxCount {
		count = maxCount
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint: %v", search.ErrUnavailable, err)
	}
	q := u.Query()
	q.Set("q", req.Query)
	q.Set("count", strconv.Itoa(count))
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request failed: %v", search.ErrUnavailable, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Subscription-Token", c.apiKey)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", search.ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("%w: brave api error (status %d): %s", search.ErrUnavailable, res.StatusCode, string(body))
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: decode response failed: %v", search.ErrUnavailable, err)
	}

	results := make([]search.Result, 0, len(searchResp.Web.Results))
	for _, r := range searchResp.Web.Results {
		if len(results) >= count {
			break
		}
		results = append(results, search.Result{
			Title:         r.Title,
			URL:           r.URL,
			Snippet:       r.Description,
			PublishedDate: r.Age,
		})
	}
	return &search.Response{Results: results}, nil
}
