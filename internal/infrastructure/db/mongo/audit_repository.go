package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/realtyhub/listing-api/internal/core/domain"
)

const (
	collectionAudit = "auth_audit"
	auditRetention  = 30 * 24 * time.Hour
)

// AuditRepository persists guard decisions to the auth_audit collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

// InsertDecision stores one guard decision.
func (r *AuditRepository) InsertDecision(ctx context.Context, d domain.AuthDecision) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"at":         d.At.UTC(),
		"method":     d.Method,
		"route":      d.Route,
		"allowed":    d.Allowed,
		"request_id": d.RequestID,
	}
	if d.SubjectID != "" {
		doc["subject_id"] = d.SubjectID
	}
	if d.Reason != "" {
		doc["reason"] = d.Reason
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// EnsureIndexes expires audit records after auditRetention.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(auditRetention.Seconds())),
		},
		{Keys: bson.D{{Key: "subject_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
