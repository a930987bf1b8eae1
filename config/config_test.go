package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{Driver: StorageFile, Dir: "./data"},
		Export:  ExportConfig{Scale: 4},
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("默认配置应通过校验: %v", err)
	}

	cases := map[string]func(c *Config){
		"端口越界":    func(c *Config) { c.Server.Port = 70000 },
		"未知存储驱动":  func(c *Config) { c.Storage.Driver = "sqlite" },
		"文件目录为空":  func(c *Config) { c.Storage.Dir = "" },
		"备份缺少cron": func(c *Config) { c.Backup = BackupConfig{Enabled: true, Dir: "x"} },
		"导出倍率为0":  func(c *Config) { c.Export.Scale = 0 },
	}
	for name, mutate := range cases {
		c := validConfig()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: 期望校验失败", name)
		}
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 9000\nstorage:\n  driver: redis\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLANNER_SERVER_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("环境变量应覆盖配置文件，期望 9100，实际 %d", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageRedis {
		t.Errorf("期望 storage.driver=redis，实际 %s", cfg.Storage.Driver)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("期望 log.level=debug，实际 %s", cfg.Log.Level)
	}
	if cfg.Export.Scale != 4 || cfg.Export.ViewportWidth != 1440 {
		t.Errorf("导出默认值未生效: %+v", cfg.Export)
	}
	if cfg.Redis.KeyPrefix != "planner:" {
		t.Errorf("期望默认 key_prefix=planner:，实际 %s", cfg.Redis.KeyPrefix)
	}
}
