package database

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/utafrali/storefront/pkg/database"

// TraceQuery opens a client span around one SQL statement. Call the returned
// function with the statement's outcome:
//
//	ctx, end := database.TraceQuery(ctx, "SaveCartSlot", query)
//	_, err := pool.Exec(ctx, query, args...)
//	end(err)
//
// Errors matched by expected are recorded as attributes only, leaving the span
// status unset.
func TraceQuery(ctx context.Context, operation, statement string, expected ...error) (context.Context, func(error)) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", operation),
			attribute.String("db.statement", statement),
		),
	)

	return ctx, func(err error) {
		defer span.End()
		if err == nil {
			return
		}
		for _, e := range expected {
			if errors.Is(err, e) {
				span.SetAttributes(attribute.String("db.outcome", err.Error()))
				return
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
