package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
app:
  name: StockScreener
  env: dev

data_sources:
  aktools:
    base_url: http://127.0.0.1:8080
    timeout: 30s

database:
  postgres:
    host: localhost
    port: 5432
    user: postgres
    password: postgres
    dbname: stock_screener
    sslmode: disable

collector:
  max_retries: 3
  stock_delay: 1s

api:
  port: "8000"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.App.Name != "StockScreener" {
		t.Errorf("App.Name = %s", cfg.App.Name)
	}
	if cfg.DataSources.AKTools.Timeout.Std() != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.DataSources.AKTools.Timeout)
	}
	if cfg.Database.Postgres.Port != 5432 {
		t.Errorf("Port = %d", cfg.Database.Postgres.Port)
	}
	if cfg.Collector.StockDelay.Std() != time.Second {
		t.Errorf("StockDelay = %v", cfg.Collector.StockDelay)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("AKTOOLS_BASE_URL", "http://aktools:8080")
	t.Setenv("API_PORT", "9000")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.Database.Postgres.Host != "db.internal" {
		t.Errorf("Host = %s，环境变量应覆盖配置文件", cfg.Database.Postgres.Host)
	}
	if cfg.DataSources.AKTools.BaseURL != "http://aktools:8080" {
		t.Errorf("BaseURL = %s", cfg.DataSources.AKTools.BaseURL)
	}
	if cfg.API.Port != "9000" {
		t.Errorf("Port = %s", cfg.API.Port)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	minimal := "app:\n  name: x\n"
	cfg, err := LoadConfig(writeConfig(t, minimal))
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.Collector.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d，期望缺省3", cfg.Collector.MaxRetries)
	}
	if cfg.Collector.StockDelay.Std() != time.Second {
		t.Errorf("StockDelay = %v，期望缺省1s", cfg.Collector.StockDelay)
	}
}
