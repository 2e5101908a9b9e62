package loaders

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/utils"
)

// PostgresClient writes per-request log rows to the hosted message_logs
// table (Supabase Postgres). Writes are best-effort: failures divert to the
// local JSONL fallback and are never surfaced to the request handler.
type PostgresClient struct {
	dsn      string
	pool     *pgxpool.Pool
	fallback *FallbackWriter
}

const logTable = "message_logs"

// logColumns is the allowlist of columns the service writes. Record keys
// outside this set are folded into the raw_request JSON, never into SQL.
var logColumns = map[string]bool{
	"request_id": true, "endpoint": true, "method": true, "status": true,
	"processing_start_time": true, "processing_end_time": true,
	"processing_duration_ms": true, "raw_request": true,
	"wa_auto_id": true, "wa_in_out": true, "account_code": true,
	"wa_received_at": true, "ng_code": true, "wa_name": true,
	"mobile_no": true, "wa_msg_to": true, "wa_msg_text": true,
	"wa_msg_type": true, "integration_type": true, "wa_message_id": true,
	"wa_url": true, "donor_name": true,
	"ai_classification": true, "ai_confidence": true, "ai_reasoning": true,
	"interested_to_donate": true, "question_language": true,
	"question_script": true, "ai_response": true, "ai_reason": true,
	"image_transcription": true, "donation_analysis": true,
	"error_type": true, "error_message": true,
	"created_at": true, "updated_at": true,
}

func NewPostgresClient(dsn string, workerCount int) (*PostgresClient, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Postgres DSN: %w", err)
	}

	cfg.MaxConns = int32(workerCount) + 2
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.MaxConnLifetime = 60 * time.Minute
	cfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	utils.Zlog.Info("Connected to Postgres log store")

	return &PostgresClient{
		dsn:      dsn,
		pool:     pool,
		fallback: NewFallbackWriter("logs"),
	}, nil
}

func (c *PostgresClient) GetPool() *pgxpool.Pool { return c.pool }

func (c *PostgresClient) Close() error {
	c.pool.Close()
	return nil
}

// Ping reports log-store connectivity for the health endpoint.
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// InsertMessageLog writes the initial "processing" row. Failures go to the
// local fallback file and are swallowed.
func (c *PostgresClient) InsertMessageLog(ctx context.Context, requestID string, rec Record) {
	rec = rec.Normalize()

	cols, args := splitColumns(rec)
	if len(cols) == 0 {
		return
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		logTable, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := c.pool.Exec(ctx, query, args...); err != nil {
		utils.Zlog.Error("Log insert failed, writing fallback",
			zap.String("request_id", requestID),
			zap.Error(err))
		utils.GetMetrics().LogWriteErrors.Add(1)
		c.fallback.Write(rec)
	}
}

// UpdateMessageLog updates the row for requestID with the final fields.
func (c *PostgresClient) UpdateMessageLog(ctx context.Context, requestID string, rec Record) {
	rec = rec.Normalize()

	cols, args := splitColumns(rec)
	if len(cols) == 0 {
		return
	}

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	args = append(args, requestID)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE request_id = $%d",
		logTable, strings.Join(sets, ", "), len(args))

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := c.pool.Exec(ctx, query, args...); err != nil {
		utils.Zlog.Error("Log update failed, writing fallback",
			zap.String("request_id", requestID),
			zap.Error(err))
		utils.GetMetrics().LogWriteErrors.Add(1)
		c.fallback.Write(rec)
	}
}

// splitColumns turns a record into parallel column and argument slices.
// Map- and slice-valued fields are stored as JSONB text.
func splitColumns(rec Record) ([]string, []any) {
	cols := make([]string, 0, len(rec))
	for k := range rec {
		if logColumns[k] {
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)

	args := make([]any, 0, len(cols))
	for _, col := range cols {
		v := rec[col]
		switch v.(type) {
		case map[string]any, Record, []any:
			encoded, err := json.Marshal(v)
			if err != nil {
				args = append(args, nil)
				continue
			}
			args = append(args, string(encoded))
		default:
			args = append(args, v)
		}
	}
	return cols, args
}
