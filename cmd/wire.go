package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	hackpados "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/viper"

	profiletoml "github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/profile/toml"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/recommend"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/render/cards"
	chainstore "github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/store/chain"
	filestore "github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/store/file"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/store/fsstore"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/wallet"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/application"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/config"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/platform/otel"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
)

const (
	serviceName  = "compass"
	storeDirMode = 0o700
)

type app struct {
	sessions     *application.SessionManager
	service      *application.Service
	orchestrator *application.Orchestrator
	renderCards  func(cards.Results) (string, error)
	renderStatus func(cards.StatusView) (string, error)
	closers      []func(context.Context) error
}

func wireApp() (*app, error) {
	cfg, settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	shutdownTracing, err := otel.Setup(context.Background(), serviceName, cfg.OTelEndpoint)
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}

	store, closeStore, err := wireStore(cfg)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("wire credential store: %w", err), shutdownTracing(context.Background()))
	}

	profileService, err := wireProfiles(settings)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("wire profile service: %w", err), closeStore(), shutdownTracing(context.Background()))
	}

	client := recommend.Client{BaseURL: cfg.APIBaseURL, HTTPClient: http.DefaultClient}
	sessions := application.NewSessionManager(store, wallet.NewSimulated(cfg.ConnectDelay), logger)
	profiles := application.NewProfileQuery(profileService, ports.SystemClock{}, logger)
	orchestrator := application.NewOrchestrator(client, client, logger)

	return &app{
		sessions:     sessions,
		service:      application.NewService(sessions, profiles),
		orchestrator: orchestrator,
		renderCards:  cards.Render,
		renderStatus: cards.RenderStatus,
		closers: []func(context.Context) error{
			func(context.Context) error {
				orchestrator.Close()
				return nil
			},
			func(context.Context) error { return closeStore() },
			shutdownTracing,
		},
	}, nil
}

func (a *app) close(ctx context.Context) error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn(ctx))
	}
	a.closers = nil

	return errors.Join(errs...)
}

func wireStore(cfg config.Config) (ports.PersistentStore, func() error, error) {
	noopClose := func() error { return nil }

	switch cfg.StoreBackend {
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.StorePath, storeDirMode); err != nil {
			return nil, nil, fmt.Errorf("create store directory: %w", err)
		}
		store, err := chainstore.NewSQLiteFirstWithFileFallback(
			filepath.Join(cfg.StorePath, "compass.db"),
			filepath.Join(cfg.StorePath, "entries"),
		)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.BackendFS:
		fsys := hackpados.NewFS()
		absPath, err := filepath.Abs(cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve store path: %w", err)
		}
		root, err := fsys.FromOSPath(absPath)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve store path: %w", err)
		}
		store, err := fsstore.NewStore(fsys, root)
		if err != nil {
			return nil, nil, err
		}
		return store, noopClose, nil
	default:
		return filestore.NewStore(filepath.Join(cfg.StorePath, "entries")), noopClose, nil
	}
}

func wireProfiles(settings *viper.Viper) (ports.ProfileService, error) {
	repo, err := profiletoml.NewRepository(settings, ports.SystemClock{})
	if err != nil {
		return nil, err
	}

	return repo, nil
}
