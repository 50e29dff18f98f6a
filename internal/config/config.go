package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	RedisAddr   string

	ShutdownTimeout   time.Duration
	LockIdleTTL       time.Duration
	LockSweepInterval time.Duration
	CacheTTL          time.Duration

	// Point policy values. Defaults follow the canonical policy; deployments
	// may override any of them.
	MinAmount  int64
	MaxAmount  int64
	ChargeUnit int64
	UseUnit    int64
	MaxBalance int64
}

const (
	defaultRunAddress        = ":8080"
	defaultShutdownTimeout   = 10 * time.Second
	defaultLockIdleTTL       = 5 * time.Minute
	defaultLockSweepInterval = time.Minute
	defaultCacheTTL          = time.Minute

	defaultMinAmount  = 1_000
	defaultMaxAmount  = 1_000_000
	defaultChargeUnit = 10_000
	defaultUseUnit    = 1_000
	defaultMaxBalance = 1_000_000
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		RedisAddr:         getString(lookup, "REDIS_ADDR", ""),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LockIdleTTL:       getDuration(lookup, "LOCK_IDLE_TTL", defaultLockIdleTTL),
		LockSweepInterval: getDuration(lookup, "LOCK_SWEEP_INTERVAL", defaultLockSweepInterval),
		CacheTTL:          getDuration(lookup, "CACHE_TTL", defaultCacheTTL),
		MinAmount:         getInt64(lookup, "POINT_MIN_AMOUNT", defaultMinAmount),
		MaxAmount:         getInt64(lookup, "POINT_MAX_AMOUNT", defaultMaxAmount),
		ChargeUnit:        getInt64(lookup, "POINT_CHARGE_UNIT", defaultChargeUnit),
		UseUnit:           getInt64(lookup, "POINT_USE_UNIT", defaultUseUnit),
		MaxBalance:        getInt64(lookup, "POINT_MAX_BALANCE", defaultMaxBalance),
	}

	fs := flag.NewFlagSet("pointsvc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		lockIdleTTLStr     = cfg.LockIdleTTL.String()
		lockSweepStr       = cfg.LockSweepInterval.String()
		cacheTTLStr        = cfg.CacheTTL.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN (empty selects in-memory storage)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address for balance cache (optional)")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&lockIdleTTLStr, "lock-idle-ttl", lockIdleTTLStr, "Idle lifetime of per-user lock entries")
	fs.StringVar(&lockSweepStr, "lock-sweep-interval", lockSweepStr, "Interval between lock table sweeps")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "Lifetime of cached balance records")
	fs.Int64Var(&cfg.MinAmount, "min-amount", cfg.MinAmount, "Minimum transaction amount")
	fs.Int64Var(&cfg.MaxAmount, "max-amount", cfg.MaxAmount, "Maximum transaction amount")
	fs.Int64Var(&cfg.ChargeUnit, "charge-unit", cfg.ChargeUnit, "Charge amount unit granularity")
	fs.Int64Var(&cfg.UseUnit, "use-unit", cfg.UseUnit, "Use amount unit granularity")
	fs.Int64Var(&cfg.MaxBalance, "max-balance", cfg.MaxBalance, "Maximum point balance per user")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.LockIdleTTL, err = time.ParseDuration(lockIdleTTLStr); err != nil {
		return nil, fmt.Errorf("invalid lock idle ttl: %w", err)
	}

	if cfg.LockSweepInterval, err = time.ParseDuration(lockSweepStr); err != nil {
		return nil, fmt.Errorf("invalid lock sweep interval: %w", err)
	}

	if cfg.CacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.LockIdleTTL <= 0 {
		cfg.LockIdleTTL = defaultLockIdleTTL
	}

	if cfg.LockSweepInterval <= 0 {
		cfg.LockSweepInterval = defaultLockSweepInterval
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	if cfg.MinAmount <= 0 {
		return nil, fmt.Errorf("minimum amount must be positive, got %d", cfg.MinAmount)
	}

	if cfg.MaxAmount < cfg.MinAmount {
		return nil, fmt.Errorf("maximum amount %d is below minimum %d", cfg.MaxAmount, cfg.MinAmount)
	}

	if cfg.ChargeUnit <= 0 || cfg.UseUnit <= 0 {
		return nil, fmt.Errorf("unit granularity must be positive")
	}

	if cfg.MaxBalance <= 0 {
		return nil, fmt.Errorf("maximum balance must be positive, got %d", cfg.MaxBalance)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
