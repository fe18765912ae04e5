package searxng

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iWorld-y/market_research/app/market_research/pkg/search"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" || r.URL.Query().Get("format") != "json" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		w.Write([]byte(`{"query":"x","results":[
			{"title":"A","url":"https://a","content":"one"},
			{"title":"B","url":"https://b","content":"two"},
			{"title":"C","url":"https://c","content":"three"}
		]}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, 1).Search(context.Background(), &search.Request{Query: "x", MaxResults: 2})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 2 || resp.Results[1].Snippet != "two" {
		t.Errorf("results = %+v", resp.Results)
	}
}
