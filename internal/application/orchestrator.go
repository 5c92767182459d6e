package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
)

// CardView is a read-only copy of one card for renderers.
type CardView struct {
	Key        string
	Item       domain.AttractionResult
	Enrichment domain.EnrichmentState
}

type card struct {
	key    string
	worker *EnrichmentWorker
}

// Orchestrator turns a submitted query into cards, one enrichment worker per
// result. A newer Submit cancels the older search and only the newest one may
// replace cards or clear the loading flag.
type Orchestrator struct {
	recommender ports.Recommender
	fetcher     ports.ImageFetcher
	logger      *slog.Logger
	onChange    func()

	baseCtx    context.Context
	cancelBase context.CancelFunc

	// applyMu keeps reconcile and the binds that follow it atomic with
	// respect to another search finishing.
	applyMu sync.Mutex

	mu           sync.Mutex
	query        string
	loading      bool
	lastErr      error
	cards        []card
	seq          uint64
	cancelSearch context.CancelFunc
	closed       bool
}

func NewOrchestrator(recommender ports.Recommender, fetcher ports.ImageFetcher, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	baseCtx, cancel := context.WithCancel(context.Background())

	return &Orchestrator{
		recommender: recommender,
		fetcher:     fetcher,
		logger:      logger,
		baseCtx:     baseCtx,
		cancelBase:  cancel,
	}
}

// OnChange registers fn to run after any loading, error or card change. It is
// called without internal locks held.
func (o *Orchestrator) OnChange(fn func()) {
	o.mu.Lock()
	o.onChange = fn
	o.mu.Unlock()
}

func (o *Orchestrator) Submit(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return &domain.ValidationError{Field: "query", Reason: "search query is empty"}
	}

	ctx, span := tracer.Start(ctx, "orchestrator.submit")
	span.SetAttributes(attribute.String("search.query", query))
	var err error
	defer func() { endSpan(span, err) }()

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		err = context.Canceled
		return err
	}
	if o.cancelSearch != nil {
		o.cancelSearch()
	}
	o.seq++
	seq := o.seq
	searchCtx, cancel := context.WithCancel(ctx)
	o.cancelSearch = cancel
	o.query = query
	o.loading = true
	o.lastErr = nil
	o.mu.Unlock()
	o.changed()

	defer func() {
		cancel()
		o.mu.Lock()
		current := o.seq == seq
		if current {
			o.loading = false
			o.cancelSearch = nil
		}
		o.mu.Unlock()
		if current {
			o.changed()
		}
	}()

	results, searchErr := o.recommender.Search(searchCtx, query)

	o.applyMu.Lock()
	defer o.applyMu.Unlock()

	o.mu.Lock()
	if o.seq != seq || o.closed {
		o.mu.Unlock()
		err = fmt.Errorf("search %q superseded: %w", query, context.Canceled)
		return err
	}
	if searchErr != nil {
		o.lastErr = searchErr
		o.mu.Unlock()
		o.logger.Warn("search failed", "query", query, "error", searchErr)
		err = fmt.Errorf("search recommendations: %w", searchErr)
		return err
	}
	binds, removed := o.reconcileLocked(results)
	o.mu.Unlock()

	span.SetAttributes(attribute.Int("search.results", len(results)))
	for _, worker := range removed {
		worker.Close()
	}
	for i, worker := range binds {
		worker.Bind(o.baseCtx, results[i])
	}
	o.logger.Debug("search completed", "query", query, "results", len(results))

	return nil
}

// reconcileLocked keeps the worker of every card whose key survives and
// returns, aligned with results, the worker each result must be bound to.
func (o *Orchestrator) reconcileLocked(results []domain.AttractionResult) ([]*EnrichmentWorker, []*EnrichmentWorker) {
	existing := make(map[string][]*EnrichmentWorker, len(o.cards))
	var removed []*EnrichmentWorker
	for _, c := range o.cards {
		if c.key == "" {
			removed = append(removed, c.worker)
			continue
		}
		existing[c.key] = append(existing[c.key], c.worker)
	}

	cards := make([]card, 0, len(results))
	binds := make([]*EnrichmentWorker, 0, len(results))
	for _, item := range results {
		key := item.Key()
		var worker *EnrichmentWorker
		if pool := existing[key]; key != "" && len(pool) > 0 {
			worker = pool[0]
			existing[key] = pool[1:]
		} else {
			worker = NewEnrichmentWorker(o.fetcher, o.logger, o.changed)
		}
		cards = append(cards, card{key: key, worker: worker})
		binds = append(binds, worker)
	}

	for _, pool := range existing {
		removed = append(removed, pool...)
	}
	o.cards = cards

	return binds, removed
}

func (o *Orchestrator) Cards() []CardView {
	o.mu.Lock()
	cards := append([]card(nil), o.cards...)
	o.mu.Unlock()

	views := make([]CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, CardView{Key: c.key, Item: c.worker.Item(), Enrichment: c.worker.State()})
	}

	return views
}

// ImageLoadFailed reports that url failed to load on the card with key. An
// event for a card that is gone, or for an image the card no longer shows,
// changes nothing.
func (o *Orchestrator) ImageLoadFailed(key, url string) bool {
	if key == "" {
		return false
	}

	o.mu.Lock()
	var worker *EnrichmentWorker
	for _, c := range o.cards {
		if c.key == key {
			worker = c.worker
			break
		}
	}
	o.mu.Unlock()

	if worker == nil {
		return false
	}
	return worker.ImageLoadFailed(url)
}

func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.loading
}

func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.lastErr
}

func (o *Orchestrator) Query() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.query
}

// Wait blocks until every card's enrichment has settled.
func (o *Orchestrator) Wait() {
	o.mu.Lock()
	cards := append([]card(nil), o.cards...)
	o.mu.Unlock()

	for _, c := range cards {
		c.worker.Wait()
	}
}

// Close cancels the running search and tears every card down.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	if o.cancelSearch != nil {
		o.cancelSearch()
		o.cancelSearch = nil
	}
	cards := o.cards
	o.cards = nil
	o.loading = false
	o.mu.Unlock()

	o.cancelBase()
	for _, c := range cards {
		c.worker.Close()
	}
}

func (o *Orchestrator) changed() {
	o.mu.Lock()
	fn := o.onChange
	o.mu.Unlock()

	if fn != nil {
		fn()
	}
}
