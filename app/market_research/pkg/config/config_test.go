package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("CLAUDE_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("BRAVE_API_KEY", "")

	path := writeFile(t, t.TempDir(), "config.yaml", `
llm:
  openai:
    api_key: sk-file
    model: gpt-4o
  timeout: 30s
search:
  provider: brave
  brave:
    api_key: brave-file
storage:
  dir: out
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.LLM.OpenAI.APIKey != "sk-file" || cfg.LLM.OpenAI.Model != "gpt-4o" {
		t.Errorf("openai config = %+v", cfg.LLM.OpenAI)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.LLM.Timeout)
	}
	if cfg.Search.Provider != "brave" || cfg.Search.Brave.APIKey != "brave-file" {
		t.Errorf("search config = %+v", cfg.Search)
	}
	if cfg.Storage.Dir != "out" || cfg.Storage.Driver != "file" {
		t.Errorf("storage config = %+v", cfg.Storage)
	}
	if cfg.LLM.Claude.Model == "" || cfg.Search.MaxResults != 10 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.HasClaude() {
		t.Errorf("HasClaude() = true without key")
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("CLAUDE_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "ant-env")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15550001111")

	cfg := Default()
	cfg.LLM.OpenAI.APIKey = "sk-file"
	cfg.ApplyEnv()

	if cfg.LLM.OpenAI.APIKey != "sk-env" {
		t.Errorf("openai key = %q, want env value", cfg.LLM.OpenAI.APIKey)
	}
	if cfg.LLM.Claude.APIKey != "ant-env" {
		t.Errorf("claude key = %q, want ANTHROPIC_API_KEY fallback", cfg.LLM.Claude.APIKey)
	}
	if !cfg.HasSMS() {
		t.Errorf("HasSMS() = false, want true")
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("BRAVE_API_KEY", "")
	os.Unsetenv("BRAVE_API_KEY")
	dir := t.TempDir()
	p := writeFile(t, dir, ".env", "BRAVE_API_KEY=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("BRAVE_API_KEY") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), p); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("BRAVE_API_KEY"); got != "from-dotenv" {
		t.Errorf("BRAVE_API_KEY = %q", got)
	}
}
