package config

import (
	"strings"
	"testing"
	"time"
)

func emptyEnv(string) (string, bool) { return "", false }

func envFrom(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, emptyEnv)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.RunAddress != ":8080" {
		t.Errorf("RunAddress = %q, want :8080", cfg.RunAddress)
	}
	if cfg.DatabaseURI != "" {
		t.Errorf("DatabaseURI = %q, want empty", cfg.DatabaseURI)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.LockIdleTTL != 5*time.Minute {
		t.Errorf("LockIdleTTL = %v, want 5m", cfg.LockIdleTTL)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", cfg.CacheTTL)
	}
	if cfg.MinAmount != 1_000 || cfg.MaxAmount != 1_000_000 {
		t.Errorf("amount bounds = %d..%d, want 1000..1000000", cfg.MinAmount, cfg.MaxAmount)
	}
	if cfg.ChargeUnit != 10_000 || cfg.UseUnit != 1_000 {
		t.Errorf("units = %d/%d, want 10000/1000", cfg.ChargeUnit, cfg.UseUnit)
	}
	if cfg.MaxBalance != 1_000_000 {
		t.Errorf("MaxBalance = %d, want 1000000", cfg.MaxBalance)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	lookup := envFrom(map[string]string{
		"RUN_ADDRESS":         ":9090",
		"DATABASE_URI":        "postgres://localhost/points",
		"REDIS_ADDR":          "localhost:6379",
		"SHUTDOWN_TIMEOUT":    "30s",
		"LOCK_IDLE_TTL":       "1m",
		"LOCK_SWEEP_INTERVAL": "15s",
		"CACHE_TTL":           "45s",
		"POINT_MIN_AMOUNT":    "500",
		"POINT_MAX_AMOUNT":    "2000000",
		"POINT_CHARGE_UNIT":   "500",
		"POINT_USE_UNIT":      "100",
		"POINT_MAX_BALANCE":   "5000000",
	})

	cfg, err := load(nil, lookup)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.RunAddress != ":9090" {
		t.Errorf("RunAddress = %q, want :9090", cfg.RunAddress)
	}
	if cfg.DatabaseURI != "postgres://localhost/points" {
		t.Errorf("DatabaseURI = %q", cfg.DatabaseURI)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.LockIdleTTL != time.Minute {
		t.Errorf("LockIdleTTL = %v, want 1m", cfg.LockIdleTTL)
	}
	if cfg.LockSweepInterval != 15*time.Second {
		t.Errorf("LockSweepInterval = %v, want 15s", cfg.LockSweepInterval)
	}
	if cfg.CacheTTL != 45*time.Second {
		t.Errorf("CacheTTL = %v, want 45s", cfg.CacheTTL)
	}
	if cfg.MinAmount != 500 || cfg.MaxAmount != 2_000_000 {
		t.Errorf("amount bounds = %d..%d", cfg.MinAmount, cfg.MaxAmount)
	}
	if cfg.ChargeUnit != 500 || cfg.UseUnit != 100 {
		t.Errorf("units = %d/%d", cfg.ChargeUnit, cfg.UseUnit)
	}
	if cfg.MaxBalance != 5_000_000 {
		t.Errorf("MaxBalance = %d", cfg.MaxBalance)
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	lookup := envFrom(map[string]string{
		"RUN_ADDRESS":      ":9090",
		"POINT_MIN_AMOUNT": "500",
		"SHUTDOWN_TIMEOUT": "30s",
	})
	args := []string{
		"-a", ":7070",
		"-min-amount", "200",
		"-shutdown-timeout", "5s",
		"-d", "postgres://flag/points",
	}

	cfg, err := load(args, lookup)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.RunAddress != ":7070" {
		t.Errorf("RunAddress = %q, want flag value :7070", cfg.RunAddress)
	}
	if cfg.MinAmount != 200 {
		t.Errorf("MinAmount = %d, want flag value 200", cfg.MinAmount)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want flag value 5s", cfg.ShutdownTimeout)
	}
	if cfg.DatabaseURI != "postgres://flag/points" {
		t.Errorf("DatabaseURI = %q", cfg.DatabaseURI)
	}
}

func TestLoadMalformedEnvValuesFallBack(t *testing.T) {
	lookup := envFrom(map[string]string{
		"POINT_MIN_AMOUNT": "not a number",
		"SHUTDOWN_TIMEOUT": "soon",
	})

	cfg, err := load(nil, lookup)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.MinAmount != 1_000 {
		t.Errorf("MinAmount = %d, want default 1000", cfg.MinAmount)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default 10s", cfg.ShutdownTimeout)
	}
}

func TestLoadInvalidDurationFlag(t *testing.T) {
	if _, err := load([]string{"-lock-idle-ttl", "forever"}, emptyEnv); err == nil {
		t.Fatal("expected error for unparseable duration flag")
	}
}

func TestLoadNonPositiveTimingsUseDefaults(t *testing.T) {
	cfg, err := load([]string{
		"-shutdown-timeout", "0s",
		"-lock-idle-ttl", "-1m",
		"-lock-sweep-interval", "0s",
		"-cache-ttl", "0s",
	}, emptyEnv)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default 10s", cfg.ShutdownTimeout)
	}
	if cfg.LockIdleTTL != 5*time.Minute {
		t.Errorf("LockIdleTTL = %v, want default 5m", cfg.LockIdleTTL)
	}
	if cfg.LockSweepInterval != time.Minute {
		t.Errorf("LockSweepInterval = %v, want default 1m", cfg.LockSweepInterval)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, want default 1m", cfg.CacheTTL)
	}
}

func TestLoadPolicyValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"zero min amount", []string{"-min-amount", "0"}, "minimum amount"},
		{"negative min amount", []string{"-min-amount", "-100"}, "minimum amount"},
		{"max below min", []string{"-min-amount", "5000", "-max-amount", "1000"}, "below minimum"},
		{"zero charge unit", []string{"-charge-unit", "0"}, "unit granularity"},
		{"negative use unit", []string{"-use-unit", "-10"}, "unit granularity"},
		{"zero max balance", []string{"-max-balance", "0"}, "maximum balance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.args, emptyEnv)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadUnknownFlag(t *testing.T) {
	if _, err := load([]string{"-no-such-flag"}, emptyEnv); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
