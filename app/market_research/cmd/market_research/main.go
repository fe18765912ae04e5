package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
	"github.com/iWorld-y/market_research/app/market_research/pkg/logger"
)

var (
	flagConfig  string
	flagEnvFile string
)

func main() {
	if err := newRootCMD().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCMD() *cobra.Command {
	root := generateCMD()
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "configs/config.yaml", "config file path")
	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file with API keys")

	root.AddCommand(listCMD(), showCMD(), deleteCMD(), exportCMD(), smsCMD())
	return root
}

// loadConfig 加载 .env 和配置文件并初始化日志；默认路径的配置文件不存在时使用默认值
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(flagEnvFile); err != nil {
		return nil, fmt.Errorf("无法加载 %s: %w", flagEnvFile, err)
	}

	var cfg *config.Config
	if _, err := os.Stat(flagConfig); err != nil && !cmd.Flags().Changed("config") {
		cfg = config.Default()
		cfg.ApplyEnv()
	} else {
		c, err := config.LoadConfig(flagConfig)
		if err != nil {
			return nil, fmt.Errorf("无法加载配置文件: %w", err)
		}
		cfg = c
	}

	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, fmt.Errorf("无法初始化日志: %w", err)
	}
	return cfg, nil
}
