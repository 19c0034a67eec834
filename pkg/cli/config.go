package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/e-c-centric/ClassHelper/pkg/adapter"
	"github.com/e-c-centric/ClassHelper/pkg/repository"
)

// config holds configuration values
type config struct {
	// Repository
	project     string
	database    string
	memoryStore bool

	// Adapters
	geminiProject      string
	geminiLocation     string
	generativeModel    string
	transcriptionModel string
	bucket             string

	// Misc
	logLevel        string
	modelConfigPath string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("CLASSHELPER_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// llmFlags returns flags for completion-service configuration
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "model-config",
			Usage:       "Path to YAML file with model settings",
			Sources:     cli.EnvVars("CLASSHELPER_MODEL_CONFIG"),
			Destination: &cfg.modelConfigPath,
		},
	}
}

// modelSettings is the optional YAML override for model names, so model
// swaps don't need a redeploy.
type modelSettings struct {
	GenerativeModel    string `yaml:"generative_model"`
	TranscriptionModel string `yaml:"transcription_model"`
}

// applyModelConfig loads the model-settings file when one is configured.
func (cfg *config) applyModelConfig() error {
	if cfg.modelConfigPath == "" {
		return nil
	}

	data, err := os.ReadFile(cfg.modelConfigPath)
	if err != nil {
		return goerr.Wrap(err, "failed to read model config", goerr.V("path", cfg.modelConfigPath))
	}

	var settings modelSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return goerr.Wrap(err, "failed to parse model config", goerr.V("path", cfg.modelConfigPath))
	}

	if settings.GenerativeModel != "" {
		cfg.generativeModel = settings.GenerativeModel
	}
	if settings.TranscriptionModel != "" {
		cfg.transcriptionModel = settings.TranscriptionModel
	}
	return nil
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	if cfg.memoryStore {
		return repository.NewMemory(), nil
	}

	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

// newGemini creates a new Gemini adapter instance
func (cfg *config) newGemini(ctx context.Context) (adapter.Gemini, error) {
	if cfg.geminiProject == "" {
		return nil, goerr.New("gemini-project is required")
	}
	if cfg.geminiLocation == "" {
		return nil, goerr.New("gemini-location is required")
	}

	if err := cfg.applyModelConfig(); err != nil {
		return nil, err
	}

	var opts []adapter.GeminiOption
	if cfg.generativeModel != "" {
		opts = append(opts, adapter.WithGenerativeModel(cfg.generativeModel))
	}
	if cfg.transcriptionModel != "" {
		opts = append(opts, adapter.WithTranscriptionModel(cfg.transcriptionModel))
	}

	gemini, err := adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create gemini adapter")
	}
	return gemini, nil
}

// newStorage creates a new Storage adapter instance, or nil when no
// bucket is configured (recording archive disabled).
func (cfg *config) newStorage(ctx context.Context) (adapter.Storage, error) {
	if cfg.bucket == "" {
		return nil, nil
	}

	storage, err := adapter.NewStorage(ctx, cfg.bucket)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage")
	}
	return storage, nil
}
