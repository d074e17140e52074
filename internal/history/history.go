// Package history persists benchmark run summaries to ClickHouse.
//
// The sink is optional and entirely advisory: it is only constructed when
// run history is enabled in the configuration, and every failure is logged
// as a warning rather than affecting the run's outcome.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/sirupsen/logrus"

	"github.com/beshkenadze/FluidAudio/internal/compare"
	"github.com/beshkenadze/FluidAudio/internal/config"
)

const runsTable = "fluidbench_runs"

// Row is one persisted benchmark verdict.
type Row struct {
	RunTimestamp   string
	Mode           string
	Benchmark      string
	QualityMetric  string
	QualityPercent float64
	QualityPassed  uint8
	RTFx           float64
	RTFxPassed     uint8
}

// Sink records judged benchmark runs.
type Sink interface {
	Start(ctx context.Context) error
	Stop() error
	RecordRun(ctx context.Context, timestamp, mode string, verdicts []compare.KindVerdict) error
}

type sink struct {
	cfg  *config.Config
	log  logrus.FieldLogger
	conn driver.Conn
}

// NewSink creates a ClickHouse-backed run history sink.
func NewSink(log logrus.FieldLogger, cfg *config.Config) Sink {
	return &sink{
		cfg: cfg,
		log: log.WithField("component", "history_sink"),
	}
}

// Start connects to ClickHouse and ensures the runs table exists.
func (s *sink) Start(ctx context.Context) error {
	options := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", s.cfg.ClickhouseHost, s.cfg.ClickhouseNativePort)},
		Auth: clickhouse.Auth{
			Database: s.cfg.ClickhouseDatabase,
			Username: s.cfg.ClickhouseUsername,
			Password: s.cfg.ClickhousePassword,
		},
		DialTimeout: 30 * time.Second,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return fmt.Errorf("opening clickhouse connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := conn.Ping(pingCtx); err != nil {
		return fmt.Errorf("pinging clickhouse: %w", err)
	}

	s.conn = conn

	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	s.log.Info("history sink started")

	return nil
}

// Stop closes the ClickHouse connection.
func (s *sink) Stop() error {
	if s.conn == nil {
		return nil
	}

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("closing clickhouse connection: %w", err)
	}

	return nil
}

// RecordRun inserts one row per judged benchmark kind.
func (s *sink) RecordRun(ctx context.Context, timestamp, mode string, verdicts []compare.KindVerdict) error {
	rows := RowsForRun(timestamp, mode, verdicts)
	if len(rows) == 0 {
		s.log.Debug("no verdicts to record")
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, fmt.Sprintf(
		"INSERT INTO %s (run_timestamp, mode, benchmark, quality_metric, quality_percent, quality_passed, rtfx, rtfx_passed)",
		runsTable,
	))
	if err != nil {
		return fmt.Errorf("preparing history batch: %w", err)
	}

	for _, row := range rows {
		if err := batch.Append(
			row.RunTimestamp,
			row.Mode,
			row.Benchmark,
			row.QualityMetric,
			row.QualityPercent,
			row.QualityPassed,
			row.RTFx,
			row.RTFxPassed,
		); err != nil {
			return fmt.Errorf("appending history row: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("sending history batch: %w", err)
	}

	s.log.WithField("rows", len(rows)).Info("run history recorded")

	return nil
}

func (s *sink) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s
		(
			run_timestamp String,
			mode String,
			benchmark String,
			quality_metric String,
			quality_percent Float64,
			quality_passed UInt8,
			rtfx Float64,
			rtfx_passed UInt8,
			inserted_at DateTime DEFAULT now()
		) ENGINE = MergeTree
		ORDER BY (run_timestamp, benchmark)`,
		runsTable,
	)

	if err := s.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("creating history table: %w", err)
	}

	return nil
}

// RowsForRun flattens judged verdicts into insertable rows.
func RowsForRun(timestamp, mode string, verdicts []compare.KindVerdict) []Row {
	rows := make([]Row, 0, len(verdicts))

	for _, v := range verdicts {
		rows = append(rows, Row{
			RunTimestamp:   timestamp,
			Mode:           mode,
			Benchmark:      string(v.Kind),
			QualityMetric:  v.Quality.Name,
			QualityPercent: v.Quality.Observed,
			QualityPassed:  boolToUInt8(v.Quality.Passed),
			RTFx:           v.Throughput.Observed,
			RTFxPassed:     boolToUInt8(v.Throughput.Passed),
		})
	}

	return rows
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Compile-time interface compliance check
var _ Sink = (*sink)(nil)
