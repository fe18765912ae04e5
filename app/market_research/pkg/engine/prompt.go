package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
)

const (
	summaryLimit     = 320
	snippetLimit     = 240
	maxSearchEntries = 10
)

// detailInstruction 详细程度对应的篇幅要求
func detailInstruction(level model.DetailLevel) string {
	switch level {
	case model.DetailConcise:
		return "Keep it concise: about 150-250 words, focused on the most important points."
	case model.DetailComprehensive:
		return "Be comprehensive: about 800-1200 words with detailed analysis, figures and examples."
	}
	return "Use a standard length: about 400-600 words covering the main points with supporting detail."
}

// BuildPrompt 构造章节提示词，只读取 ID 小于当前章节的已完成章节。
// 超出 budget（字符数，<=0 表示不限制）时先丢弃最早的章节摘要，再丢弃末尾的搜索结果。
func BuildPrompt(spec model.SectionSpec, rc *model.RunContext, budget int) string {
	var summaries []string
	for _, c := range rc.Completed {
		if c.ID >= spec.ID {
			continue
		}
		summaries = append(summaries, fmt.Sprintf("[S%d] %s: %s", c.ID, c.Name, summarize(c)))
	}

	results := rc.SearchResults
	if len(results) > maxSearchEntries {
		results = results[:maxSearchEntries]
	}

	dropped := 0
	prompt := renderPrompt(spec, rc.Request, summaries, dropped, results)
	if budget <= 0 {
		return prompt
	}
	for utf8.RuneCountInString(prompt) > budget && dropped < len(summaries) {
		dropped++
		prompt = renderPrompt(spec, rc.Request, summaries, dropped, results)
	}
	for utf8.RuneCountInString(prompt) > budget && len(results) > 0 {
		results = results[:len(results)-1]
		prompt = renderPrompt(spec, rc.Request, summaries, dropped, results)
	}
	return prompt
}

func renderPrompt(spec model.SectionSpec, req model.ReportRequest, summaries []string, dropped int, results []model.SearchResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s, working as %s on a market research team.\n", spec.Role, spec.Agent)
	fmt.Fprintf(&sb, spec.PromptTemplate+"\n\n", req.Topic)

	fmt.Fprintf(&sb, "Section: %s\n", spec.Name)
	fmt.Fprintf(&sb, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&sb, "Market category: %s\n", req.Category)
	if len(req.CustomQueries) > 0 {
		sb.WriteString("Also address these questions where relevant:\n")
		for _, q := range req.CustomQueries {
			fmt.Fprintf(&sb, "- %s\n", q)
		}
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Length: %s\n", detailInstruction(req.DetailLevel))
	sb.WriteString("Format the section in Markdown. Do not repeat the section title as a heading.\n\n")

	if len(summaries) == 0 {
		sb.WriteString("This is the first section of the report.\n")
	} else {
		sb.WriteString("Summaries of the sections completed so far:\n")
		if dropped > 0 {
			fmt.Fprintf(&sb, "(%d earlier section summaries omitted to fit the input limit.)\n", dropped)
		}
		for _, s := range summaries[dropped:] {
			sb.WriteString(s)
			sb.WriteString("\n")
		}
	}

	if len(results) > 0 {
		sb.WriteString("\nBased on the following web search results:\n\n")
		for i, r := range results {
			fmt.Fprintf(&sb, "%d. [%s] (%s)\n", i+1, oneLine(r.Title, 200), r.URL)
			if snippet := oneLine(r.Snippet, snippetLimit); snippet != "" {
				fmt.Fprintf(&sb, "   %s\n", snippet)
			}
		}
		sb.WriteString("\nUse these sources where relevant and cite their URLs. Do not present facts that the sources or well-established knowledge do not support.\n")
	}

	return sb.String()
}

// summarize 章节摘要：去掉标题行，压缩空白并截断，不使用全文
func summarize(c model.CompletedSection) string {
	if c.Placeholder {
		return "(this section could not be generated)"
	}
	var lines []string
	for _, line := range strings.Split(c.Text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	return oneLine(strings.Join(lines, " "), summaryLimit)
}

// oneLine 压缩空白为单行并按字符数截断到单词边界
func oneLine(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > limit/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}
