package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robertarktes/visa-appointments/internal/domain"
	"github.com/robertarktes/visa-appointments/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ActionFinalized = "booking.finalized"
	ActionDispatch  = "confirmation.dispatch"
)

// AuditLogger appends booking events to the audit_logs collection.
// Applicant personal data is never written; entries carry the reference code only.
type AuditLogger struct {
	coll   *mongo.Collection
	logger observability.Logger
	now    func() time.Time
}

func NewAuditLogger(db *mongo.Database, logger observability.Logger) *AuditLogger {
	return &AuditLogger{
		coll:   db.Collection("audit_logs"),
		logger: logger,
		now:    time.Now,
	}
}

type AuditLog struct {
	ID            uuid.UUID `bson:"_id"`
	Action        string    `bson:"action"`
	ReferenceCode string    `bson:"reference_code"`
	Timestamp     time.Time `bson:"timestamp"`
	Data          bson.M    `bson:"data"`
}

func (a *AuditLogger) logEvent(ctx context.Context, action, ref string, data bson.M) error {
	entry := AuditLog{
		ID:            uuid.New(),
		Action:        action,
		ReferenceCode: ref,
		Timestamp:     a.now().UTC(),
		Data:          data,
	}
	if _, err := a.coll.InsertOne(ctx, entry); err != nil {
		a.logger.Error("failed to insert audit log: ", err)
		return err
	}
	return nil
}

func (a *AuditLogger) LogFinalized(ctx context.Context, rec domain.Record) error {
	return a.logEvent(ctx, ActionFinalized, rec.ReferenceCode, bson.M{
		"visa_type":        string(rec.Applicant.VisaType),
		"appointment_date": rec.Applicant.AppointmentDate.String(),
		"appointment_time": rec.Applicant.AppointmentTime.String(),
	})
}

func (a *AuditLogger) LogDispatch(ctx context.Context, ref string, status string, cause error) error {
	data := bson.M{"status": status}
	if cause != nil {
		data["error"] = cause.Error()
	}
	return a.logEvent(ctx, ActionDispatch, ref, data)
}

// History returns the entries for ref, oldest first.
func (a *AuditLogger) History(ctx context.Context, ref string) ([]AuditLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := a.coll.Find(ctx, bson.M{"reference_code": ref}, opts)
	if err != nil {
		return nil, err
	}
	var out []AuditLog
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
