package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
)

// EnrichmentWorker resolves an image for one card. Every bind or close bumps
// the generation and cancels the outstanding request, so a response that
// arrives for an older generation is dropped.
type EnrichmentWorker struct {
	fetcher  ports.ImageFetcher
	logger   *slog.Logger
	onChange func()

	mu          sync.Mutex
	item        domain.AttractionResult
	identity    string
	bound       bool
	closed      bool
	gen         uint64
	cancel      context.CancelFunc
	state       domain.EnrichmentState
	imageFailed bool
	// done is closed when the most recently started fetch returns.
	done chan struct{}
}

func NewEnrichmentWorker(fetcher ports.ImageFetcher, logger *slog.Logger, onChange func()) *EnrichmentWorker {
	if logger == nil {
		logger = slog.Default()
	}

	return &EnrichmentWorker{
		fetcher:  fetcher,
		logger:   logger,
		onChange: onChange,
		state:    domain.EnrichmentState{Status: domain.EnrichmentIdle},
	}
}

// Bind points the worker at item. Binding the same identity again keeps the
// current state and request.
func (w *EnrichmentWorker) Bind(ctx context.Context, item domain.AttractionResult) {
	w.mu.Lock()
	identity := item.Identity()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if w.bound && identity == w.identity {
		w.item = item
		w.mu.Unlock()
		return
	}

	w.stopLocked()
	w.item = item
	w.identity = identity
	w.bound = true
	w.imageFailed = false

	name := strings.TrimSpace(item.NameOrEmpty())
	switch {
	case item.HasImage():
		w.state = domain.EnrichmentState{Status: domain.EnrichmentIdle, ImageURL: item.ImageURLOrEmpty()}
	case name == "":
		w.state = domain.EnrichmentState{Status: domain.EnrichmentNotStarted, ImageURL: domain.PlaceholderImageURL}
	default:
		w.state = domain.EnrichmentState{Status: domain.EnrichmentLoading}
		fetchCtx, cancel := context.WithCancel(ctx)
		w.cancel = cancel
		done := make(chan struct{})
		w.done = done
		go w.fetch(fetchCtx, cancel, done, w.gen, name)
	}
	w.mu.Unlock()

	w.changed()
}

func (w *EnrichmentWorker) fetch(ctx context.Context, cancel context.CancelFunc, done chan struct{}, gen uint64, name string) {
	defer func() {
		w.mu.Lock()
		if w.done == done {
			w.done = nil
		}
		w.mu.Unlock()
		close(done)
	}()
	defer cancel()

	ctx, span := tracer.Start(ctx, "enrichment.fetch_image")
	span.SetAttributes(attribute.String("attraction.name", name))
	url, err := w.fetcher.FetchImage(ctx, name)
	endSpan(span, err)

	w.mu.Lock()
	if w.gen != gen {
		w.mu.Unlock()
		return
	}
	w.cancel = nil

	url = strings.TrimSpace(url)
	switch {
	case err == nil && url != "":
		w.state = domain.EnrichmentState{Status: domain.EnrichmentResolved, ImageURL: url}
	default:
		w.state = domain.EnrichmentState{Status: domain.EnrichmentFailed, ImageURL: domain.PlaceholderImageURL}
		switch {
		case err == nil, errors.Is(err, domain.ErrNoImage):
			w.logger.Debug("no image for attraction", "name", name)
		case domain.IsCanceled(err):
		default:
			w.logger.Warn("image enrichment failed", "name", name, "error", err)
		}
	}
	w.mu.Unlock()

	w.changed()
}

// ImageLoadFailed swaps the displayed image for the placeholder when url is
// still the image on display. It reports false once the placeholder is
// already showing or the card has moved on to another image.
func (w *EnrichmentWorker) ImageLoadFailed(url string) bool {
	url = strings.TrimSpace(url)
	w.mu.Lock()
	if w.closed || w.imageFailed || url == "" || w.state.ImageURL != url || url == domain.PlaceholderImageURL {
		w.mu.Unlock()
		return false
	}
	w.imageFailed = true
	w.state.ImageURL = domain.PlaceholderImageURL
	w.mu.Unlock()

	w.changed()
	return true
}

func (w *EnrichmentWorker) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.stopLocked()
	w.mu.Unlock()
}

func (w *EnrichmentWorker) State() domain.EnrichmentState {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.state
}

func (w *EnrichmentWorker) Item() domain.AttractionResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.item
}

// DisplayImage is the URL a renderer should show, empty while loading.
func (w *EnrichmentWorker) DisplayImage() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.state.ImageURL
}

// Wait blocks until the latest fetch has returned. A fetch started while
// waiting is waited for too.
func (w *EnrichmentWorker) Wait() {
	for {
		w.mu.Lock()
		done := w.done
		w.mu.Unlock()
		if done == nil {
			return
		}
		<-done
	}
}

func (w *EnrichmentWorker) stopLocked() {
	w.gen++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *EnrichmentWorker) changed() {
	if w.onChange != nil {
		w.onChange()
	}
}
