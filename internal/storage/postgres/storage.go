package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerkit/pointsvc/internal/domain/model"
	"github.com/ledgerkit/pointsvc/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage relies on.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type balanceRepository struct {
	storage *Storage
}

type historyRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Balances returns the balance repository.
func (s *Storage) Balances() repository.BalanceRepository {
	return &balanceRepository{storage: s}
}

// Histories returns the history repository.
func (s *Storage) Histories() repository.HistoryRepository {
	return &historyRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS user_points (
            user_id BIGINT PRIMARY KEY,
            balance BIGINT NOT NULL DEFAULT 0,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS point_histories (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            amount BIGINT NOT NULL,
            type TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_point_histories_user ON point_histories(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- BalanceRepository implementation ---

func (r *balanceRepository) Get(ctx context.Context, userID int64) (*model.UserPoint, error) {
	const query = `SELECT balance, updated_at FROM user_points WHERE user_id=$1`
	record := model.UserPoint{UserID: userID}
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&record.Balance, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Zero-balance record for unknown users, per the store contract.
			return &model.UserPoint{UserID: userID, Balance: 0, UpdatedAt: time.Now()}, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *balanceRepository) Upsert(ctx context.Context, userID, balance int64) (*model.UserPoint, error) {
	const query = `INSERT INTO user_points (user_id, balance, updated_at)
                   VALUES ($1, $2, NOW())
                   ON CONFLICT (user_id) DO UPDATE
                   SET balance = EXCLUDED.balance, updated_at = NOW()
                   RETURNING updated_at`
	record := model.UserPoint{UserID: userID, Balance: balance}
	if err := r.storage.pool.QueryRow(ctx, query, userID, balance).Scan(&record.UpdatedAt); err != nil {
		return nil, err
	}
	return &record, nil
}

// --- HistoryRepository implementation ---

func (r *historyRepository) Append(ctx context.Context, userID, amount int64, txType model.TransactionType, at time.Time) (*model.PointHistory, error) {
	const query = `INSERT INTO point_histories (user_id, amount, type, created_at)
                   VALUES ($1, $2, $3, $4) RETURNING id`
	record := model.PointHistory{UserID: userID, Amount: amount, Type: txType, CreatedAt: at}
	if err := r.storage.pool.QueryRow(ctx, query, userID, amount, string(txType), at).Scan(&record.ID); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *historyRepository) ListByUser(ctx context.Context, userID int64) ([]model.PointHistory, error) {
	const query = `SELECT id, user_id, amount, type, created_at
                   FROM point_histories WHERE user_id=$1`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PointHistory
	for rows.Next() {
		var record model.PointHistory
		var txType string
		if err := rows.Scan(&record.ID, &record.UserID, &record.Amount, &txType, &record.CreatedAt); err != nil {
			return nil, err
		}
		record.Type = model.TransactionType(txType)
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
