package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"mockmate/interview/internal/models"
	"mockmate/interview/internal/storage"
)

// EvaluationExporterJob periodically exports finalized evaluations to JSONL
// files for offline rubric calibration.
type EvaluationExporterJob struct {
	store  storage.Store
	config *ExporterConfig
	cron   *cron.Cron
	logger *zap.Logger
}

// ExporterConfig contains configuration for the exporter job
type ExporterConfig struct {
	Schedule      string // Cron schedule (e.g., "0 2 * * *" for 2 AM daily)
	ExportDir     string // Directory to store exported files
	ExportEnabled bool   // Whether to run exports
}

// exportRecord is one JSONL line.
type exportRecord struct {
	SessionID     string         `json:"session_id"`
	OverallScore  int            `json:"overall_score"`
	Rubric        map[string]int `json:"rubric"`
	Strengths     []string       `json:"strengths"`
	Weaknesses    []string       `json:"weaknesses"`
	NextSteps     []string       `json:"next_steps"`
	LowConfidence bool           `json:"low_confidence"`
	CreatedAt     time.Time      `json:"created_at"`
}

func NewEvaluationExporterJob(store storage.Store, config *ExporterConfig, logger *zap.Logger) *EvaluationExporterJob {
	return &EvaluationExporterJob{
		store:  store,
		config: config,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins the scheduled export job
func (job *EvaluationExporterJob) Start() error {
	if !job.config.ExportEnabled {
		job.logger.Info("evaluation export is disabled, skipping scheduler")
		return nil
	}

	_, err := job.cron.AddFunc(job.config.Schedule, func() {
		if err := job.RunExport(context.Background()); err != nil {
			job.logger.Error("evaluation export run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}

	job.cron.Start()
	job.logger.Info("evaluation exporter started", zap.String("schedule", job.config.Schedule))
	return nil
}

// Stop stops the scheduled export job
func (job *EvaluationExporterJob) Stop() {
	if job.cron != nil {
		job.cron.Stop()
		job.logger.Info("evaluation exporter stopped")
	}
}

// RunExport performs a single export run
func (job *EvaluationExporterJob) RunExport(ctx context.Context) error {
	evals, err := job.store.ListUnexportedEvaluations(ctx, 0) // no limit
	if err != nil {
		return fmt.Errorf("failed to list unexported evaluations: %w", err)
	}
	if len(evals) == 0 {
		job.logger.Info("no unexported evaluations found")
		return nil
	}

	data, err := ToJSONL(evals)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(job.config.ExportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	filename := filepath.Join(job.config.ExportDir,
		fmt.Sprintf("evaluations_%s.jsonl", time.Now().UTC().Format("20060102_150405")))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	sessionIDs := make([]string, len(evals))
	for i, eval := range evals {
		sessionIDs[i] = eval.SessionID
	}
	if err := job.store.MarkEvaluationsExported(ctx, sessionIDs, time.Now().UTC()); err != nil {
		return err
	}

	job.logger.Info("exported evaluations",
		zap.Int("count", len(evals)),
		zap.String("file", filename))
	return nil
}

// ToJSONL renders evaluations as JSONL, one record per line.
func ToJSONL(evals []models.Evaluation) ([]byte, error) {
	var out []byte
	for i := range evals {
		eval := &evals[i]
		strengths, weaknesses, nextSteps := eval.Summary()
		record := exportRecord{
			SessionID:     eval.SessionID,
			OverallScore:  eval.OverallScore,
			Rubric:        eval.Rubric.Map(),
			Strengths:     strengths,
			Weaknesses:    weaknesses,
			NextSteps:     nextSteps,
			LowConfidence: eval.LowConfidence,
			CreatedAt:     eval.CreatedAt,
		}
		line, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal evaluation record: %w", err)
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out, nil
}
