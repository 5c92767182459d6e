package domain

type EnrichmentStatus string

const (
	EnrichmentIdle       EnrichmentStatus = "idle"
	EnrichmentNotStarted EnrichmentStatus = "not_started"
	EnrichmentLoading    EnrichmentStatus = "loading"
	EnrichmentResolved   EnrichmentStatus = "resolved"
	EnrichmentFailed     EnrichmentStatus = "failed"
)

const PlaceholderImageURL = "https://placehold.co/600x400?text=No+image"

type EnrichmentState struct {
	Status   EnrichmentStatus
	ImageURL string
}

// Settled reports whether no request is, or will be, outstanding for the card.
func (s EnrichmentState) Settled() bool {
	return s.Status != EnrichmentLoading
}
