package notify

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crossroads/apparel-backend/internal/models"
)

const recordTimeout = 5 * time.Second

// DeliveryLog persists notification attempts.
type DeliveryLog interface {
	RecordDelivery(ctx context.Context, d *models.Delivery) error
}

// Recording wraps a Notifier and records every attempt, sent or failed.
// A recording failure is logged and never changes the send result.
type Recording struct {
	next Notifier
	log  DeliveryLog
	l    logrus.FieldLogger
}

func NewRecording(next Notifier, log DeliveryLog, l logrus.FieldLogger) *Recording {
	return &Recording{next: next, log: log, l: l}
}

func (r *Recording) SendWelcome(ctx context.Context, to, name string) error {
	sendErr := r.next.SendWelcome(ctx, to, name)

	d := &models.Delivery{Kind: "welcome", To: to, Status: models.DeliverySent}
	if sendErr != nil {
		d.Status = models.DeliveryFailed
		d.Error = sendErr.Error()
	}

	// The send may have used up ctx; the record gets its own deadline.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := r.log.RecordDelivery(rctx, d); err != nil {
		r.l.WithError(err).WithField("to", to).Warn("record welcome delivery")
	}
	return sendErr
}
