package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/market_research/app/display/internal/conf"
	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
	"github.com/iWorld-y/market_research/app/market_research/pkg/storage"
)

type Data struct {
	store storage.Store
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	store, err := storage.NewStore(context.Background(), toStorageConfig(c.Storage))
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		store.Close()
	}
	return &Data{store: store}, cleanup, nil
}

// toStorageConfig 将 conf.Storage 转换为 market_research 的存储配置
func toStorageConfig(c *conf.Storage) config.StorageConfig {
	cfg := config.Default().Storage
	if c == nil {
		return cfg
	}
	if c.Driver != "" {
		cfg.Driver = c.Driver
	}
	if c.Dir != "" {
		cfg.Dir = c.Dir
	}
	if db := c.Db; db != nil {
		cfg.DB.Host = db.Host
		cfg.DB.User = db.User
		cfg.DB.Password = db.Password
		cfg.DB.Name = db.Name
		if db.Port != 0 {
			cfg.DB.Port = int(db.Port)
		}
		if db.SslMode != "" {
			cfg.DB.SSLMode = db.SslMode
		}
	}
	if m := c.Minio; m != nil {
		cfg.MinIO.Endpoint = m.Endpoint
		cfg.MinIO.AccessKey = m.AccessKey
		cfg.MinIO.SecretKey = m.SecretKey
		cfg.MinIO.UseSSL = m.UseSsl
		if m.Bucket != "" {
			cfg.MinIO.Bucket = m.Bucket
		}
		if m.Prefix != "" {
			cfg.MinIO.Prefix = m.Prefix
		}
	}
	return cfg
}
