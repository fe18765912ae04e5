package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
)

// maxSummaryLen 摘要正文的最大字符数
const maxSummaryLen = 1500

// ErrNotConfigured 未配置短信凭证
var ErrNotConfigured = errors.New("sms delivery not configured")

// Sender 短信发送接口
type Sender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// TwilioSender 通过 Twilio 发送短信
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSender 创建 Twilio 发送器
func NewTwilioSender(cfg config.TwilioConfig) (*TwilioSender, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.From == "" {
		return nil, ErrNotConfigured
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioSender{client: client, from: cfg.From}, nil
}

var _ Sender = (*TwilioSender)(nil)

// Send 发送短信，返回消息 SID
func (s *TwilioSender) Send(ctx context.Context, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send failed: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// BuildSummary 从报告全文中提取执行摘要，生成短信内容
func BuildSummary(title, content string) string {
	summary := sectionText(content, "Executive Summary")
	if summary == "" {
		summary = firstSection(content)
	}
	if utf8.RuneCountInString(summary) > maxSummaryLen {
		summary = string([]rune(summary)[:maxSummaryLen]) + "..."
	}
	return fmt.Sprintf("Market Research Summary: %s\n\n%s\n\n(Full report available)", title, summary)
}

// sectionText 返回 "## name" 与下一个二级标题或分隔线之间的内容
func sectionText(content, name string) string {
	lines := strings.Split(content, "\n")
	start := -1
	for i, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line), "## "+name) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}
	end := len(lines)
	for i := start; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		if strings.HasPrefix(t, "## ") || t == "---" {
			end = i
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

func firstSection(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if t := strings.TrimSpace(line); strings.HasPrefix(t, "## ") {
			return sectionText(content, strings.TrimPrefix(t, "## "))
		}
	}
	return strings.TrimSpace(content)
}
