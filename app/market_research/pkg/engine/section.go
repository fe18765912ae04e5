package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/iWorld-y/market_research/app/market_research/pkg/llm"
	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// ExtractText 清理模型输出：去掉终端转义序列和包裹全文的代码块标记
func ExtractText(raw string) (string, error) {
	text := ansiEscape.ReplaceAllString(raw, "")
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") && len(text) > 6 {
		text = strings.TrimSuffix(text, "```")
		// 去掉首行的 ```markdown / ```md
		if i := strings.Index(text, "\n"); i >= 0 {
			text = text[i+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
		text = strings.TrimSpace(text)
	}

	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

// stripLeadingHeading 去掉与章节名重复的首行标题，保证每个章节标题在全文中只出现一次
func stripLeadingHeading(text, name string) string {
	first, rest, _ := strings.Cut(text, "\n")
	trimmed := strings.TrimSpace(first)
	if !strings.HasPrefix(trimmed, "#") {
		return text
	}
	heading := strings.Trim(strings.TrimLeft(trimmed, "#"), " *:_")
	if strings.EqualFold(heading, name) {
		return strings.TrimSpace(rest)
	}
	return text
}

// placeholderText 章节无法生成时的占位内容
func placeholderText(spec model.SectionSpec, err error) string {
	reason := "the AI service did not respond"
	switch {
	case errors.Is(err, llm.ErrAuth):
		reason = "the AI service rejected the configured credentials"
	case errors.Is(err, llm.ErrRateLimited):
		reason = "the AI service rate limit was reached"
	case errors.Is(err, llm.ErrTimeout):
		reason = "the AI service timed out"
	case errors.Is(err, llm.ErrEmptyResponse):
		reason = "the AI service returned an empty response"
	}
	return fmt.Sprintf("_The %s section could not be generated because %s. Re-run the report later or consult other sources for this part of the analysis._",
		strings.ToLower(spec.Name), reason)
}
