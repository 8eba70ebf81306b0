package ports

import (
	"context"

	"github.com/realtyhub/listing-api/internal/core/domain"
)

// AuditRepository stores guard decisions.
type AuditRepository interface {
	InsertDecision(ctx context.Context, d domain.AuthDecision) error
}

// AuditSink receives guard decisions. Record must not block the request.
type AuditSink interface {
	Record(d domain.AuthDecision)
}
