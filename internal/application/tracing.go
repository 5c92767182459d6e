package application

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
)

var tracer = otel.Tracer("github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/application")

func endSpan(span trace.Span, err error) {
	if err != nil && !domain.IsCanceled(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
