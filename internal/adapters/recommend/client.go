package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/ports"
)

const (
	searchPathPrefix = "/search/"
	imageSearchPath  = "/api/image-search"
	maxResponseBytes = 4 << 20
	requestIDHeader  = "X-Request-ID"
)

var tracer = otel.Tracer("github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/adapters/recommend")

// Client talks to the recommendation backend. A zero RequestTimeout leaves
// cancellation entirely to the caller's context.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var (
	_ ports.Recommender  = Client{}
	_ ports.ImageFetcher = Client{}
)

func (c Client) Search(ctx context.Context, query string) ([]domain.AttractionResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &domain.ValidationError{Field: "query", Reason: "search query is empty"}
	}

	endpoint, err := buildAPIURL(c.BaseURL, searchPathPrefix+url.PathEscape(query), nil)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "recommend.search", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	body, err := c.get(ctx, span, endpoint)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results, err := decodeAttractions(body)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("search.results", len(results)))

	return results, nil
}

// FetchImage looks up an image for name. A null or empty image_url is
// reported as domain.ErrNoImage.
func (c Client) FetchImage(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &domain.ValidationError{Field: "name", Reason: "image query is empty"}
	}

	endpoint, err := buildAPIURL(c.BaseURL, imageSearchPath, url.Values{"query": {name}})
	if err != nil {
		return "", err
	}

	ctx, span := tracer.Start(ctx, "recommend.image_search", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	body, err := c.get(ctx, span, endpoint)
	if err != nil {
		return "", fmt.Errorf("image search %q: %w", name, err)
	}

	imageURL, err := decodeImageURL(body)
	if err != nil {
		if !errors.Is(err, domain.ErrNoImage) {
			recordError(span, err)
		}
		return "", fmt.Errorf("image search %q: %w", name, err)
	}

	return imageURL, nil
}

func (c Client) get(ctx context.Context, span trace.Span, endpoint string) ([]byte, error) {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	otel.GetTextMapPropagator().Inject(requestCtx, propagation.HeaderCarrier(req.Header))
	span.SetAttributes(
		attribute.String("http.request.method", http.MethodGet),
		attribute.String("url.full", endpoint),
		attribute.String("request.id", requestID),
	)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		recordError(span, err)
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		recordError(span, err)
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		remoteErr := &domain.RemoteError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		recordError(span, remoteErr)
		return nil, remoteErr
	}

	return body, nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.RequestTimeout <= 0 {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.RequestTimeout)
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func buildAPIURL(baseURL string, path string, query url.Values) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	// Request paths hang off whatever path the base URL already carries.
	endpoint, err := parsed.Parse(strings.TrimRight(parsed.EscapedPath(), "/") + path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	return endpoint.String(), nil
}
