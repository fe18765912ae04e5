package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
)

// FileStore 以 Markdown 文件形式保存在目录中
type FileStore struct {
	dir string
}

// NewFileStore 创建文件存储，目录不存在时自动创建
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create reports directory: %v", ErrPersistence, err)
	}
	return &FileStore{dir: dir}, nil
}

var _ Store = (*FileStore)(nil)

// Save implements Store，使用 O_EXCL 保证不会覆盖已有报告
func (s *FileStore) Save(ctx context.Context, report *model.GeneratedReport) (string, error) {
	path := filepath.Join(s.dir, FileName(report))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if _, err := f.WriteString(report.FullText); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return path, nil
}

// List implements Store
func (s *FileStore) List(ctx context.Context) ([]ReportMeta, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var metas []ReportMeta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		content, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}

		title, date, id := ParseMetadata(string(content))
		if id == "" {
			id = idFromFileName(entry.Name())
		}
		if title == "" {
			title = strings.TrimSuffix(entry.Name(), ".md")
		}
		if date == "" {
			date = info.ModTime().Format("January 02, 2006")
		}
		metas = append(metas, ReportMeta{
			ID:        id,
			FileName:  entry.Name(),
			Title:     title,
			Date:      date,
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	sortMetas(metas)
	return metas, nil
}

// Read implements Store
func (s *FileStore) Read(ctx context.Context, id string) (string, error) {
	path, err := s.resolve(id)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return string(content), nil
}

// Delete implements Store
func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, err := s.resolve(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Close implements Store
func (s *FileStore) Close() error { return nil }

// resolve 查找 id 对应的文件，拒绝包含路径的 id
func (s *FileStore) resolve(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && matchesID(entry.Name(), id) {
			return filepath.Join(s.dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, id)
}
