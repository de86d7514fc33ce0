package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "ITEMS_FILE", "MAX_TABLE_CELLS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.MaxTableCells != defaultMaxTableCells {
		t.Fatalf("expected default cell limit, got %d", cfg.MaxTableCells)
	}
	if cfg.ItemsFile != "" {
		t.Fatalf("expected no items file, got %q", cfg.ItemsFile)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ITEMS_FILE", "/tmp/items.txt")
	t.Setenv("MAX_TABLE_CELLS", "1000")
	t.Setenv("RATE_LIMIT_RPS", "3.5")

	cfg, err := Load(&CLIOverrides{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.ItemsFile != "/tmp/items.txt" {
		t.Fatalf("unexpected items file: %s", cfg.ItemsFile)
	}
	if cfg.MaxTableCells != 1000 {
		t.Fatalf("unexpected cell limit: %d", cfg.MaxTableCells)
	}
	if cfg.RateLimitRPS != 3.5 {
		t.Fatalf("unexpected rate limit: %v", cfg.RateLimitRPS)
	}
}

func TestLoadRejectsInvalidEnvValues(t *testing.T) {
	cases := map[string][]string{
		"MAX_TABLE_CELLS":  {"lots", "-5"},
		"RATE_LIMIT_RPS":   {"fast", "-1"},
		"RATE_LIMIT_BURST": {"big", "2.5", "-3"},
	}

	for key, values := range cases {
		for _, value := range values {
			t.Run(key+"="+value, func(t *testing.T) {
				clearEnv(t)
				t.Setenv(key, value)

				if _, err := Load(nil); err == nil {
					t.Fatalf("expected error for %s=%q", key, value)
				}
			})
		}
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("MAX_TABLE_CELLS", "10")

	configFile := writeFile(t, "config.yaml", `
port: "7100"
max_table_cells: 20
write_timeout: 2s
enable_request_logging: false
rate_limit:
  rps: 0
  burst: 0
`)
	port := "7200"

	cfg, err := Load(&CLIOverrides{ConfigFile: configFile, Port: &port})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7200" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.MaxTableCells != 20 {
		t.Fatalf("expected YAML cell limit to beat env, got %d", cfg.MaxTableCells)
	}
	if cfg.WriteTimeout != 2*time.Second {
		t.Fatalf("unexpected write timeout: %s", cfg.WriteTimeout)
	}
	if cfg.EnableRequestLogging {
		t.Fatalf("expected request logging disabled by YAML")
	}
	if cfg.RateLimitRPS != 0 || cfg.RateLimitBurst != 0 {
		t.Fatalf("expected rate limit disabled, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.ReadHeaderTimeout != 5*time.Second {
		t.Fatalf("expected untouched default read header timeout, got %s", cfg.ReadHeaderTimeout)
	}
}

func TestLoadInvalidYAMLDuration(t *testing.T) {
	clearEnv(t)
	configFile := writeFile(t, "config.yaml", "idle_timeout: soon\n")

	if _, err := Load(&CLIOverrides{ConfigFile: configFile}); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := writeFile(t, ".env", "ITEMS_FILE=catalog.txt\nRATE_LIMIT_BURST=7\n")

	cfg, err := Load(&CLIOverrides{EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.ItemsFile != "catalog.txt" {
		t.Fatalf("expected items file from env file, got %q", cfg.ItemsFile)
	}
	if cfg.RateLimitBurst != 7 {
		t.Fatalf("expected burst from env file, got %d", cfg.RateLimitBurst)
	}
}

func TestLoadCLIOverridesIgnoreNegativeSentinels(t *testing.T) {
	clearEnv(t)
	cells := int64(-1)
	rps := -1.0
	burst := -1

	cfg, err := Load(&CLIOverrides{MaxTableCells: &cells, RateLimitRPS: &rps, RateLimitBurst: &burst})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MaxTableCells != defaultMaxTableCells || cfg.RateLimitRPS != defaultRateLimitRPS || cfg.RateLimitBurst != defaultRateLimitBurst {
		t.Fatalf("expected defaults to survive negative CLI values, got %+v", cfg)
	}
}
