package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
)

// MinIOStore 把报告作为 Markdown 对象保存到 S3 兼容存储
type MinIOStore struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ Store = (*MinIOStore)(nil)

// NewMinIOStore 创建客户端，bucket 不存在时自动创建
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Save implements Store
func (s *MinIOStore) Save(ctx context.Context, report *model.GeneratedReport) (string, error) {
	key := s.prefix + FileName(report)
	_, err := s.client.PutObject(ctx, s.bucket, key,
		strings.NewReader(report.FullText), int64(len(report.FullText)),
		minio.PutObjectOptions{
			ContentType: "text/markdown; charset=utf-8",
			UserMetadata: map[string]string{
				"report-id": report.ID,
				"title":     report.Title,
			},
		})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// List implements Store
func (s *MinIOStore) List(ctx context.Context) ([]ReportMeta, error) {
	lctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var metas []ReportMeta
	for obj := range s.client.ListObjects(lctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		if !strings.HasSuffix(name, ".md") {
			continue
		}

		title := strings.TrimSuffix(name, ".md")
		if info, err := s.client.StatObject(ctx, s.bucket, obj.Key, minio.StatObjectOptions{}); err == nil {
			if t := metaValue(info.UserMetadata, "title"); t != "" {
				title = t
			}
		}
		metas = append(metas, ReportMeta{
			ID:        idFromFileName(name),
			FileName:  name,
			Title:     title,
			Date:      obj.LastModified.Format("January 02, 2006"),
			Size:      obj.Size,
			CreatedAt: obj.LastModified,
		})
	}
	sortMetas(metas)
	return metas, nil
}

// Read implements Store
func (s *MinIOStore) Read(ctx context.Context, id string) (string, error) {
	key, err := s.resolve(ctx, id)
	if err != nil {
		return "", err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return string(data), nil
}

// Delete implements Store
func (s *MinIOStore) Delete(ctx context.Context, id string) error {
	key, err := s.resolve(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Close implements Store
func (s *MinIOStore) Close() error { return nil }

func (s *MinIOStore) resolve(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	// 提前返回时取消上下文，结束 ListObjects 的后台 goroutine
	lctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range s.client.ListObjects(lctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}) {
		if obj.Err != nil {
			return "", fmt.Errorf("%w: %v", ErrPersistence, obj.Err)
		}
		if matchesID(strings.TrimPrefix(obj.Key, s.prefix), id) {
			return obj.Key, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, id)
}

// metaValue 读取用户元数据，兼容带或不带 X-Amz-Meta- 前缀、大小写不同的键
func metaValue(m map[string]string, key string) string {
	for k, v := range m {
		k = strings.TrimPrefix(strings.ToLower(k), "x-amz-meta-")
		if k == strings.ToLower(key) {
			return v
		}
	}
	return ""
}
