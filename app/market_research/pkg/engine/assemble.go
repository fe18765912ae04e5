package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
)

// NewReportID 生成报告 ID：时间戳加随机后缀，并发运行也不会重复
func NewReportID(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("MR-%s-%s", t.Format("20060102-150405"), suffix)
}

// ReportTitle 报告标题
func ReportTitle(topic string) string {
	return cases.Title(language.English, cases.NoLower).String(topic) + " Market Analysis"
}

// assemble 拼装完整报告：头部元信息、按顺序的章节、方法说明与免责声明
func assemble(id string, createdAt time.Time, rc *model.RunContext, searchProvider string) *model.GeneratedReport {
	req := rc.Request
	report := &model.GeneratedReport{
		ID:           id,
		Title:        ReportTitle(req.Topic),
		Topic:        req.Topic,
		Category:     req.Category,
		CreatedAt:    createdAt,
		Warnings:     append([]string(nil), rc.Warnings...),
		SearchUsed:   rc.SearchUsed,
		SearchFailed: rc.SearchFailed,
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", report.Title)
	fmt.Fprintf(&sb, "Generated on: %s  \n", createdAt.Format("January 02, 2006"))
	fmt.Fprintf(&sb, "Report ID: %s  \n", id)
	fmt.Fprintf(&sb, "Category: %s | Model strategy: %s | Detail level: %s  \n", req.Category, req.ModelStrategy, req.DetailLevel)
	sb.WriteString("CONFIDENTIAL DOCUMENT\n\n---\n\n")

	var backends []string
	for _, c := range rc.Completed {
		text := c.Text
		if !c.Placeholder {
			text = stripLeadingHeading(text, c.Name)
		}
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", c.Name, text)

		report.Sections = append(report.Sections, model.ReportSection{
			Name:        c.Name,
			Text:        text,
			Backend:     c.Backend,
			Placeholder: c.Placeholder,
		})
		if c.Backend != "" && !slices.Contains(backends, c.Backend) {
			backends = append(backends, c.Backend)
		}
	}

	sb.WriteString(methodology(rc, backends, searchProvider))
	report.FullText = sb.String()
	return report
}

func methodology(rc *model.RunContext, backends []string, searchProvider string) string {
	var sb strings.Builder
	sb.WriteString("---\n\n## Methodology\n\n")
	sb.WriteString("This report was produced by a multi-stage AI research pipeline.\n\n")

	models := "no AI model"
	if len(backends) > 0 {
		names := make([]string, 0, len(backends))
		for _, b := range backends {
			names = append(names, backendLabel(b))
		}
		models = strings.Join(names, " and ")
	}
	fmt.Fprintf(&sb, "- **AI model synthesis:** sections were drafted by %s.\n", models)

	switch {
	case !rc.SearchUsed:
		sb.WriteString("- **Web search:** not used for this report. Content reflects the models' training knowledge only.\n")
	case len(rc.SearchResults) == 0:
		sb.WriteString("- **Web search:** requested but unavailable for this run. Content reflects the models' training knowledge only.\n")
	default:
		fmt.Fprintf(&sb, "- **Web search:** %d current results from %s were retrieved once and shared by every section.\n",
			len(rc.SearchResults), searchProvider)
	}
	fmt.Fprintf(&sb, "- **Structured analysis framework:** %d sections generated in a fixed order, each building on summaries of the earlier ones.\n", len(rc.Completed))
	sb.WriteString("- **Expert prompts:** each section was written from a specialist analyst perspective.\n\n")

	sb.WriteString("## Disclaimer\n\n")
	sb.WriteString("This report was generated with the assistance of artificial intelligence. ")
	sb.WriteString("Figures and forecasts are estimates and may be incomplete or outdated. ")
	sb.WriteString("Verify critical information independently before making business decisions.\n")
	return sb.String()
}

func backendLabel(b string) string {
	switch b {
	case "openai":
		return "OpenAI"
	case "claude":
		return "Claude"
	}
	return b
}
