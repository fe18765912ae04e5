package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
)

var (
	ErrNotFound    = errors.New("report not found")
	ErrPersistence = errors.New("report persistence failed")
)

// ReportMeta 报告列表中的元信息
type ReportMeta struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Store 报告存储，只保存 Markdown 全文
type Store interface {
	// Save 保存报告，返回存储位置
	Save(ctx context.Context, report *model.GeneratedReport) (string, error)
	// List 列出已保存的报告，按时间倒序
	List(ctx context.Context) ([]ReportMeta, error)
	// Read 读取报告全文，id 可以是报告 ID 或文件名
	Read(ctx context.Context, id string) (string, error)
	// Delete 删除报告，不存在时返回 ErrNotFound
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewStore 根据配置创建存储
func NewStore(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileStore(cfg.Dir)
	case "postgres":
		db := cfg.DB
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode)
		return NewPostgresStore(ctx, dsn)
	case "minio":
		return NewMinIOStore(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

var (
	reportIDPattern = regexp.MustCompile(`MR-\d{8}-\d{6}(?:-[0-9a-f]+)?`)
	titlePattern    = regexp.MustCompile(`(?m)^#\s*(.+?)\s*$`)
	datePattern     = regexp.MustCompile(`(?m)^Generated on:\s*(.+?)\s*$`)
	idPattern       = regexp.MustCompile(`(?m)^Report ID:\s*(.+?)\s*$`)
)

// ParseMetadata 从 Markdown 头部解析标题、日期和报告 ID
func ParseMetadata(content string) (title, date, id string) {
	if m := titlePattern.FindStringSubmatch(content); m != nil {
		title = m[1]
	}
	if m := datePattern.FindStringSubmatch(content); m != nil {
		date = m[1]
	}
	if m := idPattern.FindStringSubmatch(content); m != nil {
		id = m[1]
	}
	return title, date, id
}

// FileName 报告文件名: <category>_<topic>_<id>.md
func FileName(report *model.GeneratedReport) string {
	return fmt.Sprintf("%s_%s_%s.md", Slug(report.Category), Slug(report.Topic), report.ID)
}

// Slug 转为小写下划线形式，只保留字母数字
func Slug(s string) string {
	var sb strings.Builder
	underscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && sb.Len() > 0 {
			sb.WriteByte('_')
			underscore = true
		}
	}
	out := strings.TrimSuffix(sb.String(), "_")
	if out == "" {
		return "report"
	}
	return out
}

// idFromFileName 从文件名中提取报告 ID
func idFromFileName(name string) string {
	if m := reportIDPattern.FindString(name); m != "" {
		return m
	}
	return strings.TrimSuffix(name, ".md")
}

// matchesID 文件名是否对应给定的报告 ID 或文件名
func matchesID(name, id string) bool {
	return name == id || name == id+".md" || strings.HasSuffix(name, "_"+id+".md")
}

func sortMetas(metas []ReportMeta) {
	sort.SliceStable(metas, func(i, j int) bool {
		if !metas[i].CreatedAt.Equal(metas[j].CreatedAt) {
			return metas[i].CreatedAt.After(metas[j].CreatedAt)
		}
		return metas[i].ID > metas[j].ID
	})
}

// removeNullBytes 移除字符串中的空字节，并确保是有效的 UTF-8
func removeNullBytes(s string) string {
	return strings.ToValidUTF8(strings.ReplaceAll(s, "\x00", ""), "")
}
