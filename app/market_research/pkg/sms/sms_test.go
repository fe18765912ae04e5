package sms

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
)

const report = `# Solar Panels Market Analysis

Generated on: October 17, 2026  
CONFIDENTIAL DOCUMENT

---

## Market Trends Analysis

Installations keep growing.

## Executive Summary

Solar is the fastest growing energy source.
Prices keep falling.

---

## Methodology

Pipeline details.
`

func TestBuildSummary(t *testing.T) {
	got := BuildSummary("Solar Panels Market Analysis", report)
	want := "Market Research Summary: Solar Panels Market Analysis\n\n" +
		"Solar is the fastest growing energy source.\nPrices keep falling.\n\n(Full report available)"
	assert.Equal(t, got, want)
}

func TestBuildSummary_FallbackAndTruncate(t *testing.T) {
	noSummary := "# T\n\n## Market Trends Analysis\n\n" + strings.Repeat("x", 2000) + "\n"
	got := BuildSummary("T", noSummary)

	body := strings.TrimSuffix(strings.TrimPrefix(got, "Market Research Summary: T\n\n"), "\n\n(Full report available)")
	assert.Equal(t, len(body), maxSummaryLen+3)
	assert.Equal(t, strings.HasSuffix(body, "..."), true)
}

func TestNewTwilioSender_NotConfigured(t *testing.T) {
	_, err := NewTwilioSender(config.TwilioConfig{AccountSID: "AC1"})
	assert.Equal(t, errors.Is(err, ErrNotConfigured), true)
}
