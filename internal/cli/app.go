package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/internal/config"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/internal/observability"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/internal/shell"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/pipeline"
	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/report"
)

// Image file names written to the output directory.
const (
	treeImage       = "decision_tree.png"
	matrixImage     = "confusion_matrix.png"
	importanceImage = "feature_importance.png"
)

// AppContext is one session: the prepared split and the model trained on
// it, shared by every command.
type AppContext struct {
	Config *config.Config
	Logger *zap.Logger
	Split  *pipeline.Split
	Model  *pipeline.Model
}

var (
	_ shell.Actions     = (*AppContext)(nil)
	_ shell.FormActions = (*AppContext)(nil)
)

// loadConfig reads --config and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataPath = dataPath
	}
	if flags.Changed("out") {
		cfg.OutputDir = outDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the session logger, tagged with a fresh session id.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.With(zap.String("session_id", uuid.NewString())), nil
}

// startSession loads config and logger, then prepares and trains.
func startSession(cmd *cobra.Command) (*AppContext, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	app, err := NewAppContext(cfg, logger)
	if err != nil {
		logger.Error("session start failed", zap.Error(err), zap.String("kind", string(pipeline.KindOf(err))))
		_ = logger.Sync()
		return nil, err
	}
	return app, nil
}

// NewAppContext prepares the dataset named by cfg and trains the model.
func NewAppContext(cfg *config.Config, logger *zap.Logger) (*AppContext, error) {
	seed := cfg.SplitSeed
	split, err := pipeline.Prepare(cfg.DataPath, pipeline.PrepareOptions{
		TestRatio: cfg.TestRatio,
		Seed:      &seed,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("dataset prepared",
		zap.String("path", cfg.DataPath),
		zap.Int("rows", split.Rows),
		zap.Int("dropped", split.Dropped),
		zap.Int("train", len(split.XTrain)),
		zap.Int("test", len(split.XTest)),
	)

	start := time.Now()
	m, err := pipeline.Train(split.Schema, split.XTrain, split.YTrain, pipeline.TrainOptions{
		Seed:        cfg.ModelSeed,
		Criterion:   cfg.Criterion,
		MaxFeatures: cfg.MaxFeatures,
	})
	if err != nil {
		return nil, err
	}
	tree := m.Tree()
	logger.Info("model trained",
		zap.String("criterion", cfg.Criterion),
		zap.Int("max_features", cfg.MaxFeatures),
		zap.Duration("took", time.Since(start)),
		zap.Int("depth", tree.Depth()),
		zap.Int("leaves", tree.Leaves()),
	)

	return &AppContext{Config: cfg, Logger: logger, Split: split, Model: m}, nil
}

// Close flushes the logger.
func (a *AppContext) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync() // stderr sync fails on some terminals
	}
	return nil
}

func (a *AppContext) Schema() pipeline.Schema { return a.Model.Schema() }

// Predict classifies s, logging a warning when a value lies outside the
// training range.
func (a *AppContext) Predict(s pipeline.Sample) (data.Label, error) {
	if out := a.Model.OutOfRange(s); len(out) > 0 {
		a.Logger.Warn("input outside training range", zap.Strings("features", out))
	}
	label, err := a.Model.Predict(s)
	if err != nil {
		return data.NoRain, err
	}
	a.Logger.Debug("prediction", zap.Any("sample", map[string]float64(s)), zap.Stringer("label", label))
	return label, nil
}

func (a *AppContext) treeOptions() report.TreeOptions {
	return report.TreeOptions{MaxDepth: a.Config.TreeDepth}
}

// outputPath returns name inside the output directory, creating it.
func (a *AppContext) outputPath(name string) (string, error) {
	if err := os.MkdirAll(a.Config.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return filepath.Join(a.Config.OutputDir, name), nil
}

func (a *AppContext) written(what, path string) {
	a.Logger.Info("image written", zap.String("what", what), zap.String("path", path))
}

func (a *AppContext) SaveTreePNG() (string, error) {
	path, err := a.outputPath(treeImage)
	if err != nil {
		return "", err
	}
	if err := report.SaveTreePNG(path, a.Model, a.treeOptions()); err != nil {
		return "", err
	}
	a.written("decision tree", path)
	return path, nil
}

func (a *AppContext) SaveMatrixPNG() (string, error) {
	cm, err := report.Confusion(a.Model, a.Split.XTest, a.Split.YTest)
	if err != nil {
		return "", err
	}
	path, err := a.outputPath(matrixImage)
	if err != nil {
		return "", err
	}
	if err := report.SaveConfusionPNG(path, cm); err != nil {
		return "", err
	}
	a.written("confusion matrix", path)
	return path, nil
}

// Tree prints the text tree and saves its image.
func (a *AppContext) Tree(w io.Writer) error {
	if err := report.WriteTree(w, a.Model, a.treeOptions()); err != nil {
		return err
	}
	path, err := a.SaveTreePNG()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nSaved decision tree to %s\n", path)
	return nil
}

// Matrix prints the held-out confusion matrix and saves its heatmap.
func (a *AppContext) Matrix(w io.Writer) error {
	cm, err := report.Confusion(a.Model, a.Split.XTest, a.Split.YTest)
	if err != nil {
		return err
	}
	if err := report.WriteConfusion(w, cm); err != nil {
		return err
	}
	path, err := a.SaveMatrixPNG()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nSaved confusion matrix to %s\n", path)
	return nil
}

func (a *AppContext) SaveImportancePNG() (string, error) {
	path, err := a.outputPath(importanceImage)
	if err != nil {
		return "", err
	}
	if err := report.SaveImportancePNG(path, a.Model); err != nil {
		return "", err
	}
	a.written("feature importance", path)
	return path, nil
}

// Importance prints feature importances and saves the bar chart.
func (a *AppContext) Importance(w io.Writer) error {
	if err := report.WriteImportance(w, a.Model); err != nil {
		return err
	}
	path, err := a.SaveImportancePNG()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nSaved feature importance to %s\n", path)
	return nil
}
