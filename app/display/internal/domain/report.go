package domain

import "time"

// ReportSummary 报告摘要信息
type ReportSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Report 报告详情，Content 为 Markdown 全文
type Report struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Content string `json:"content"`
}
