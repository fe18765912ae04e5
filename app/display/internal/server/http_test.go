package server

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/market_research/app/display/internal/conf"
	"github.com/iWorld-y/market_research/app/display/internal/data"
	"github.com/iWorld-y/market_research/app/display/internal/usecase"
)

const reportID = "MR-20261017-101500-0badc0de"

func newTestServer(t *testing.T) nethttp.Handler {
	t.Helper()
	dir := t.TempDir()
	content := "# Smart Home Devices Market Analysis\n\nGenerated on: October 17, 2026\nReport ID: " + reportID +
		"\n\n## Executive Summary\n\nAdoption keeps rising.\n"
	if err := os.WriteFile(filepath.Join(dir, "technology_smart_home_devices_"+reportID+".md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	d, cleanup, err := data.NewData(&conf.Data{Storage: &conf.Storage{Driver: "file", Dir: dir}}, log.DefaultLogger)
	if err != nil {
		t.Fatalf("NewData() error = %v", err)
	}
	t.Cleanup(cleanup)
	uc := usecase.NewReportUseCase(data.NewReportRepo(d, log.DefaultLogger), log.DefaultLogger)
	return NewHTTPServer(&conf.Server{Http: &conf.HTTP{Addr: "127.0.0.1:0"}}, uc, log.DefaultLogger)
}

func do(h nethttp.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestReportRoutes(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, nethttp.MethodGet, "/api/reports?page=1&page_size=10")
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("list status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var list ListReportsReply
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 || len(list.Reports) != 1 || list.Reports[0].ID != reportID {
		t.Errorf("list = %+v", list)
	}

	rec = do(h, nethttp.MethodGet, "/api/reports/"+reportID)
	if rec.Code != nethttp.StatusOK || !strings.Contains(rec.Body.String(), "Smart Home Devices Market Analysis") {
		t.Errorf("get status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = do(h, nethttp.MethodGet, "/api/reports/"+reportID+"/html")
	if rec.Code != nethttp.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("html status = %d, content-type = %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "Adoption keeps rising.") {
		t.Errorf("html body = %s", rec.Body.String())
	}

	rec = do(h, nethttp.MethodGet, "/api/reports/MR-20000101-000000-00000000")
	if rec.Code != nethttp.StatusNotFound {
		t.Errorf("missing status = %d, want 404", rec.Code)
	}

	rec = do(h, nethttp.MethodDelete, "/api/reports/"+reportID)
	if rec.Code != nethttp.StatusOK {
		t.Errorf("delete status = %d, body = %s", rec.Code, rec.Body.String())
	}
	rec = do(h, nethttp.MethodGet, "/api/reports/"+reportID)
	if rec.Code != nethttp.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}
