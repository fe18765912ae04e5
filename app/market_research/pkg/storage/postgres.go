package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/market_research/app/market_research/pkg/model"
)

// PostgresStore 把报告全文保存到 PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore 连接数据库并初始化表结构
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS market_reports (
		id TEXT PRIMARY KEY,
		file_name TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		topic TEXT NOT NULL,
		category TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// Save implements Store
func (s *PostgresStore) Save(ctx context.Context, report *model.GeneratedReport) (string, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO market_reports (id, file_name, title, topic, category, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		report.ID,
		FileName(report),
		removeNullBytes(report.Title),
		removeNullBytes(report.Topic),
		removeNullBytes(report.Category),
		removeNullBytes(report.FullText),
		report.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return "postgres://market_reports/" + report.ID, nil
}

// List implements Store
func (s *PostgresStore) List(ctx context.Context) ([]ReportMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_name, title, octet_length(content), created_at
		 FROM market_reports ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer rows.Close()

	var metas []ReportMeta
	for rows.Next() {
		var m ReportMeta
		if err := rows.Scan(&m.ID, &m.FileName, &m.Title, &m.Size, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		m.Date = m.CreatedAt.Format("January 02, 2006")
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return metas, nil
}

// Read implements Store
func (s *PostgresStore) Read(ctx context.Context, id string) (string, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM market_reports WHERE id = $1 OR file_name = $1`, id).Scan(&content)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return content, nil
}

// Delete implements Store
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM market_reports WHERE id = $1 OR file_name = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Close implements Store
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
