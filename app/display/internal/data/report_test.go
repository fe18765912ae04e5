package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/market_research/app/display/internal/conf"
)

const sampleReport = `# Smart Home Devices Market Analysis

Generated on: October 17, 2026
Report ID: MR-20261017-101500-0badc0de
Category: Technology | Model strategy: balanced | Detail level: Concise

## Executive Summary

Adoption keeps rising.
`

func TestReportRepo(t *testing.T) {
	dir := t.TempDir()
	name := "technology_smart_home_devices_MR-20261017-101500-0badc0de.md"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(sampleReport), 0o644); err != nil {
		t.Fatal(err)
	}

	d, cleanup, err := NewData(&conf.Data{Storage: &conf.Storage{Driver: "file", Dir: dir}}, log.DefaultLogger)
	if err != nil {
		t.Fatalf("NewData() error = %v", err)
	}
	defer cleanup()
	r := NewReportRepo(d, log.DefaultLogger)
	ctx := context.Background()

	list, err := r.ListReports(ctx)
	if err != nil {
		t.Fatalf("ListReports() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != "MR-20261017-101500-0badc0de" || list[0].Title != "Smart Home Devices Market Analysis" {
		t.Errorf("ListReports() = %+v", list)
	}

	rep, err := r.GetReport(ctx, "MR-20261017-101500-0badc0de")
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if rep.Date != "October 17, 2026" || rep.Content != sampleReport {
		t.Errorf("GetReport() = %+v", rep)
	}

	if _, err := r.GetReport(ctx, "MR-20000101-000000-00000000"); !errors.IsNotFound(err) {
		t.Errorf("GetReport(missing) error = %v, want not found", err)
	}

	if err := r.DeleteReport(ctx, name); err != nil {
		t.Fatalf("DeleteReport() error = %v", err)
	}
	if err := r.DeleteReport(ctx, name); !errors.IsNotFound(err) {
		t.Errorf("DeleteReport(again) error = %v, want not found", err)
	}
}

func TestToStorageConfig(t *testing.T) {
	cfg := toStorageConfig(nil)
	if cfg.Driver != "file" || cfg.Dir != "reports" {
		t.Errorf("toStorageConfig(nil) = %+v", cfg)
	}

	cfg = toStorageConfig(&conf.Storage{
		Driver: "postgres",
		Db:     &conf.Database{Host: "db", User: "u", Name: "reports"},
	})
	if cfg.Driver != "postgres" || cfg.DB.Host != "db" || cfg.DB.Port != 5432 || cfg.DB.SSLMode != "disable" {
		t.Errorf("toStorageConfig(postgres) = %+v", cfg)
	}
}
