package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

const savedReport = `# Electric Bicycles Market Analysis

Generated on: October 17, 2026
Report ID: MR-20261017-093000-1a2b3c4d
Category: Transportation | Model strategy: balanced | Detail level: Standard

CONFIDENTIAL DOCUMENT

---

## Executive Summary

E-bike demand keeps growing in urban markets.
`

func setupReports(t *testing.T) (cfgPath, dir string) {
	t.Helper()
	t.Setenv("MARKET_RESEARCH_REPORTS_DIR", "")
	root := t.TempDir()
	dir = filepath.Join(root, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	name := "transportation_electric_bicycles_MR-20261017-093000-1a2b3c4d.md"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(savedReport), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath = filepath.Join(root, "config.yaml")
	cfg := "storage:\n  driver: file\n  dir: " + dir + "\nlog:\n  level: error\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCMD()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_RequiresTopic(t *testing.T) {
	_, err := execute(t, "--headless")
	assert.NotEqual(t, nil, err)

	_, err = execute(t, "--headless", "--topic", "x", "--model", "gemini")
	assert.NotEqual(t, nil, err)
}

func TestReportCommands(t *testing.T) {
	cfgPath, dir := setupReports(t)
	id := "MR-20261017-093000-1a2b3c4d"

	out, err := execute(t, "--config", cfgPath, "list")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(out, id))
	assert.Equal(t, true, strings.Contains(out, "Electric Bicycles Market Analysis"))

	out, err = execute(t, "--config", cfgPath, "show", id)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(out, "E-bike demand keeps growing"))

	htmlPath := filepath.Join(dir, "export", "report.html")
	_, err = execute(t, "--config", cfgPath, "export", id, "--out", htmlPath)
	assert.Equal(t, nil, err)
	html, err := os.ReadFile(htmlPath)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(string(html), "<title>Electric Bicycles Market Analysis</title>"))

	_, err = execute(t, "--config", cfgPath, "show", "MR-19990101-000000-deadbeef")
	assert.NotEqual(t, nil, err)

	_, err = execute(t, "--config", cfgPath, "delete", id)
	assert.Equal(t, nil, err)
	out, err = execute(t, "--config", cfgPath, "list")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.Contains(out, "No saved reports."))
}

func TestLoadConfig_MissingExplicitPath(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "list")
	assert.NotEqual(t, nil, err)
}
