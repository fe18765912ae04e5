package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// MarkdownToHTML 将 Markdown 转为 HTML 片段，支持表格、删除线和自动链接，原始 HTML 会被过滤
func MarkdownToHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// PageData 用于模板渲染的数据
type PageData struct {
	Title      string
	ExportedAt string
	Body       template.HTML
}

var pageTpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Title }}</title>
    <style>
        :root {
            --primary-color: #2563eb;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container {
            max-width: 900px;
            margin: 0 auto;
            background: var(--card-bg);
            border: 1px solid var(--border-color);
            border-radius: 12px;
            padding: 32px 40px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.05);
        }
        h1 { font-size: 2.2rem; margin-top: 0; }
        h2 { border-bottom: 2px solid var(--primary-color); padding-bottom: 6px; margin-top: 2.2rem; }
        table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
        th, td { border: 1px solid var(--border-color); padding: 6px 10px; text-align: left; }
        th { background: #eff6ff; }
        a { color: var(--primary-color); }
        hr { border: none; border-top: 1px dashed var(--border-color); margin: 2rem 0; }
        footer { color: var(--text-secondary); font-size: 0.85rem; text-align: center; margin-top: 24px; }
    </style>
</head>
<body>
    <div class="container">
        {{ .Body }}
    </div>
    <footer>Exported {{ .ExportedAt }}</footer>
</body>
</html>
`))

// RenderHTML 渲染完整的 HTML 页面
func RenderHTML(w io.Writer, title, markdown string) error {
	body, err := MarkdownToHTML(markdown)
	if err != nil {
		return err
	}
	return pageTpl.Execute(w, PageData{
		Title:      title,
		ExportedAt: time.Now().Format("2006-01-02 15:04"),
		Body:       body,
	})
}
