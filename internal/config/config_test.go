package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ALDIAA_DATA", dir)

	opts, err := GetConfig("")
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}

	t.Logf(`Config
		Host: %s
		Port: %d
		DSN: %s
		LogLevel: %s
		Data: %s
		`, opts.Host, opts.Port, opts.DSN, opts.LogLevel, opts.Data)

	if opts.Data != dir {
		t.Errorf("data incorrect: %s", opts.Data)
	}
	if opts.DSN != filepath.Join(dir, defaultDBName) {
		t.Errorf("dsn incorrect: %s", opts.DSN)
	}
	if opts.PageSize != defaultPageSize {
		t.Errorf("page_size incorrect: %d", opts.PageSize)
	}
	if opts.LogFile != filepath.Join(dir, defaultLogFile) {
		t.Errorf("log_file incorrect: %s", opts.LogFile)
	}
	if opts.Addr() != "127.0.0.1:8080" {
		t.Errorf("addr incorrect: %s", opts.Addr())
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config_test.toml")
	content := `host = "0.0.0.0"
port = 2333
data = "` + dir + `"
log_file = "test.log"
log_level = "debug"
sync_delay_ms = 10
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := GetConfig(file)
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	if opts.Host != "0.0.0.0" {
		t.Errorf("host incorrect")
	}
	// A relative log file lands in the data directory
	if opts.LogFile != filepath.Join(dir, "test.log") {
		t.Errorf("log_file incorrect: %s", opts.LogFile)
	}
	if opts.Port != 2333 {
		t.Errorf("port incorrect")
	}
	if opts.LogLevel != "debug" {
		t.Errorf("log_level incorrect")
	}
	if opts.SyncDelay().Milliseconds() != 10 {
		t.Errorf("sync_delay_ms incorrect")
	}
	// Untouched keys keep their defaults
	if opts.PageSize != defaultPageSize {
		t.Errorf("page_size incorrect")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("port: 9000\ndata: "+dir+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ALDIAA_PORT", "9100")

	opts, err := GetConfig(file)
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	if opts.Port != 9100 {
		t.Errorf("expected env port 9100, got %d", opts.Port)
	}
}

func TestMissingConfigFile(t *testing.T) {
	if _, err := GetConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
