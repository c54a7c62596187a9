package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/checkpoint"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/config"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/home"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/llmcall"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/pipeline"
	classifystage "github.com/gadierrrr/puertoricobeachfinder-sub000/internal/pipeline/stages/classify"
	sectionsstage "github.com/gadierrrr/puertoricobeachfinder-sub000/internal/pipeline/stages/sections"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/prompts"
	classifyprompt "github.com/gadierrrr/puertoricobeachfinder-sub000/internal/prompts/classify"
	sectionsprompt "github.com/gadierrrr/puertoricobeachfinder-sub000/internal/prompts/sections"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/providers"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/store"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/svcctx"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/validate"
	"github.com/gadierrrr/puertoricobeachfinder-sub000/internal/vocab"
)

// loadHome resolves the home directory and creates its layout.
func loadHome() (*home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}
	return h, nil
}

// loadConfig reads configuration, preferring --config, then the home directory.
func loadConfig(h *home.Dir) (*config.Manager, error) {
	path := cfgFile
	if path == "" && h.ConfigExists() {
		path = h.ConfigPath()
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return nil, err
	}
	if err := mgr.Get().Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return mgr, nil
}

// newLogger builds the stdout plus file logger. An empty log.file writes
// under the home directory.
func newLogger(cfg *config.Config, h *home.Dir) (*slog.Logger, func() error, error) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log.level: %w", err)
	}
	logPath := cfg.Log.File
	if logPath == "" {
		logPath = h.LogPath()
	}
	logger, closeLog := config.SetupLogger(logPath, level)
	return logger, closeLog, nil
}

// withServices opens everything a command needs and attaches it to ctx.
// The returned cleanup closes the database and the log file.
func withServices(ctx context.Context) (context.Context, func(), error) {
	h, err := loadHome()
	if err != nil {
		return nil, nil, err
	}
	mgr, err := loadConfig(h)
	if err != nil {
		return nil, nil, err
	}
	cfg := mgr.Get()

	logger, closeLog, err := newLogger(cfg, h)
	if err != nil {
		return nil, nil, err
	}

	v, err := vocab.Load(cfg.Vocab.File)
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = h.DatabasePath()
	}
	db, err := store.Open(dbPath, logger)
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	promptRegistry := prompts.NewRegistry(logger)
	classifyprompt.RegisterPrompts(promptRegistry)
	sectionsprompt.RegisterPrompts(promptRegistry)

	svc := &svcctx.Services{
		Config:       mgr,
		Home:         h,
		DB:           db,
		Providers:    providers.NewRegistryFromConfig(cfg.ToProviderConfigs(), logger),
		Prompts:      promptRegistry,
		Vocab:        v,
		Checkpoints:  checkpoint.NewStore(h.CheckpointsDir()),
		LLMCallStore: llmcall.NewStore(db),
		Logger:       logger,
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
		closeLog()
	}
	return svcctx.WithServices(ctx, svc), cleanup, nil
}

// newGenerator builds a generator for the active provider. Calls are
// recorded under runID.
func newGenerator(svc *svcctx.Services, runID string) (*providers.Generator, error) {
	cfg := svc.Config.Get()
	name, pcfg, err := cfg.ActiveProvider()
	if err != nil {
		return nil, err
	}
	provider, err := svc.Providers.Get(name)
	if err != nil {
		return nil, fmt.Errorf("provider %q unavailable (set providers.%s.api_key): %w", name, name, providers.ErrNoAPIKey)
	}
	return providers.NewGenerator(provider, providers.GeneratorConfig{
		Model:             pcfg.Model,
		MaxTokens:         pcfg.MaxTokens,
		MinDelay:          cfg.Pipeline.MinDelay(),
		RateLimitCooldown: cfg.Pipeline.RateLimitCooldown(),
		Recorder:          llmcall.NewRecorder(svc.DB, runID, svc.Prompts, svc.Logger),
		Logger:            svc.Logger,
	}), nil
}

// stageRegistry registers every enrichment stage. gen may be nil for
// commands that never call the provider.
func stageRegistry(svc *svcctx.Services, gen *providers.Generator, memo *validate.SentenceMemo) (*pipeline.Registry, error) {
	reg := pipeline.NewRegistry()
	stages := []pipeline.Stage{
		classifystage.NewStage(classifystage.Config{DB: svc.DB, Generator: gen, Vocab: svc.Vocab}),
		sectionsstage.NewStage(sectionsstage.Config{DB: svc.DB, Generator: gen, Vocab: svc.Vocab, Memo: memo}),
	}
	for _, s := range stages {
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	return reg, reg.Validate()
}

// newRunID returns a fresh run identifier.
func newRunID() string {
	return uuid.New().String()
}

var errNoServices = errors.New("services not initialized")

func servicesFrom(ctx context.Context) (*svcctx.Services, error) {
	svc := svcctx.ServicesFrom(ctx)
	if svc == nil {
		return nil, errNoServices
	}
	return svc, nil
}
