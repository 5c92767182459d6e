//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"syscall/js"

	"github.com/hack-pad/hackpadfs/indexeddb"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/profile/memory"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/recommend"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/store/fsstore"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/wallet"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/application"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/version"
)

const (
	databaseName      = "compass"
	storeRoot         = "session"
	defaultAPIBaseURL = "http://localhost:8000"
)

type browserApp struct {
	sessions     *application.SessionManager
	service      *application.Service
	orchestrator *application.Orchestrator
	listener     application.Listener
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	app, err := wire(context.Background(), logger)
	if err != nil {
		println("[compass] FATAL:", err.Error())
		return
	}
	if err := app.sessions.Restore(context.Background()); err != nil {
		logger.Warn("restore session", "error", err)
	}

	js.Global().Set("Compass", js.ValueOf(map[string]any{
		"version":     js.FuncOf(func(js.Value, []js.Value) any { return version.Version }),
		"connect":     js.FuncOf(app.connect),
		"disconnect":  js.FuncOf(app.disconnect),
		"status":      js.FuncOf(app.status),
		"setProfile":  js.FuncOf(app.setProfile),
		"search":      js.FuncOf(app.search),
		"cards":       js.FuncOf(app.cards),
		"imageFailed": js.FuncOf(app.imageFailed),
		"onChange":    js.FuncOf(app.onChange),
	}))

	select {}
}

func wire(ctx context.Context, logger *slog.Logger) (*browserApp, error) {
	fsys, err := indexeddb.NewFS(ctx, databaseName, indexeddb.Options{})
	if err != nil {
		return nil, err
	}
	store, err := fsstore.NewStore(fsys, storeRoot)
	if err != nil {
		return nil, err
	}

	baseURL := js.Global().Get("COMPASS_API_BASE_URL")
	client := recommend.Client{BaseURL: defaultAPIBaseURL, HTTPClient: http.DefaultClient}
	if baseURL.Type() == js.TypeString && baseURL.String() != "" {
		client.BaseURL = baseURL.String()
	}

	sessions := application.NewSessionManager(store, wallet.NewSimulated(wallet.DefaultConnectDelay), logger)
	profiles := application.NewProfileQuery(memory.NewService(), ports.SystemClock{}, logger)

	return &browserApp{
		sessions:     sessions,
		service:      application.NewService(sessions, profiles),
		orchestrator: application.NewOrchestrator(client, client, logger),
	}, nil
}

func (a *browserApp) connect(js.Value, []js.Value) any {
	return promise(func(ctx context.Context) (any, error) {
		if err := a.sessions.Connect(ctx); err != nil {
			return nil, err
		}
		return a.sessions.Snapshot().Session, nil
	})
}

func (a *browserApp) disconnect(js.Value, []js.Value) any {
	return promise(func(ctx context.Context) (any, error) {
		return nil, a.sessions.Disconnect(ctx)
	})
}

func (a *browserApp) status(js.Value, []js.Value) any {
	return promise(func(ctx context.Context) (any, error) {
		return a.service.GetStatus(ctx)
	})
}

// setProfile: [name string, email string, travelStyle string]
func (a *browserApp) setProfile(_ js.Value, args []js.Value) any {
	cmd := application.SetProfileCommand{
		Name:        stringArg(args, 0),
		Email:       stringArg(args, 1),
		TravelStyle: stringArg(args, 2),
	}

	return promise(func(ctx context.Context) (any, error) {
		return a.service.SetProfile(ctx, cmd)
	})
}

// search: [query string]. Resolves once results are in; images keep
// arriving through onChange.
func (a *browserApp) search(_ js.Value, args []js.Value) any {
	query := stringArg(args, 0)

	return promise(func(ctx context.Context) (any, error) {
		if err := a.orchestrator.Submit(ctx, query); err != nil {
			return nil, err
		}
		return a.orchestrator.Cards(), nil
	})
}

func (a *browserApp) cards(js.Value, []js.Value) any {
	return jsonResult(map[string]any{
		"loading": a.orchestrator.Loading(),
		"query":   a.orchestrator.Query(),
		"cards":   a.orchestrator.Cards(),
	})
}

// imageFailed: [key string, url string] where key is the card's Key from
// cards and url the image that failed to load.
func (a *browserApp) imageFailed(_ js.Value, args []js.Value) any {
	return a.orchestrator.ImageLoadFailed(stringArg(args, 0), stringArg(args, 1))
}

// onChange: [callback function]. The callback receives no arguments; read
// the new state through status or cards. A new callback replaces the old one.
func (a *browserApp) onChange(_ js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return errorResult("requires 1 arg: callback (function)")
	}
	callback := args[0]

	a.listener.Replace(a.sessions, a.orchestrator, func() { callback.Invoke() })

	return successResult("subscribed")
}

// promise runs fn off the JS event loop and settles a Promise with its JSON
// encoded result.
func promise(fn func(ctx context.Context) (any, error)) js.Value {
	var executor js.Func
	executor = js.FuncOf(func(_ js.Value, args []js.Value) any {
		resolve, reject := args[0], args[1]
		go func() {
			defer executor.Release()

			value, err := fn(context.Background())
			if err != nil {
				reject.Invoke(js.Global().Get("Error").New(err.Error()))
				return
			}
			resolve.Invoke(jsonResult(value))
		}()
		return nil
	})

	return js.Global().Get("Promise").New(executor)
}

func stringArg(args []js.Value, index int) string {
	if index >= len(args) || args[index].Type() != js.TypeString {
		return ""
	}

	return args[index].String()
}

func jsonResult(value any) any {
	data, err := json.Marshal(value)
	if err != nil {
		return errorResult("encode result: " + err.Error())
	}

	return string(data)
}

func errorResult(msg string) any {
	data, _ := json.Marshal(map[string]any{"error": msg})
	return string(data)
}

func successResult(msg string) any {
	data, _ := json.Marshal(map[string]any{"success": msg})
	return string(data)
}
