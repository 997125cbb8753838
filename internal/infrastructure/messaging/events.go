package messaging

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Routing keys of the profile lifecycle events this service listens to.
const (
	KeyStartupDeleted  = "startup.deleted"
	KeyStartupUpdated  = "startup.updated"
	KeyInvestorDeleted = "investor.deleted"
)

// RoutingKeys lists every key the profile queue is bound with.
var RoutingKeys = []string{KeyStartupDeleted, KeyStartupUpdated, KeyInvestorDeleted}

type startupEvent struct {
	StartupID uuid.UUID `json:"startup_id"`
}

type investorEvent struct {
	InvestorID uuid.UUID `json:"investor_id"`
}

// ProfileEventHandler is implemented by the profile cleanup workflow.
type ProfileEventHandler interface {
	StartupDeleted(ctx context.Context, startupID uuid.UUID) error
	StartupUpdated(ctx context.Context, startupID uuid.UUID) error
	InvestorDeleted(ctx context.Context, investorID uuid.UUID) error
}

// Outcome tells the consumer how to settle a delivery.
type Outcome int

const (
	Ack Outcome = iota
	Requeue
)

var errMissingID = errors.New("event carries no id")

// Router decodes profile events and hands them to a ProfileEventHandler.
type Router struct {
	handler ProfileEventHandler
	logger  *zap.Logger
}

func NewRouter(handler ProfileEventHandler, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{handler: handler, logger: logger.Named("events")}
}

// Route processes one delivery. Undecodable or unknown messages are acked
// so they do not loop; handler failures are requeued.
func (r *Router) Route(ctx context.Context, routingKey string, body []byte) Outcome {
	log := r.logger.With(zap.String("routing_key", routingKey))

	var err error
	switch routingKey {
	case KeyStartupDeleted, KeyStartupUpdated:
		var ev startupEvent
		if derr := decode(body, &ev, func() bool { return ev.StartupID != uuid.Nil }); derr != nil {
			log.Warn("dropping malformed event", zap.Error(derr))
			return Ack
		}
		if routingKey == KeyStartupDeleted {
			err = r.handler.StartupDeleted(ctx, ev.StartupID)
		} else {
			err = r.handler.StartupUpdated(ctx, ev.StartupID)
		}
	case KeyInvestorDeleted:
		var ev investorEvent
		if derr := decode(body, &ev, func() bool { return ev.InvestorID != uuid.Nil }); derr != nil {
			log.Warn("dropping malformed event", zap.Error(derr))
			return Ack
		}
		err = r.handler.InvestorDeleted(ctx, ev.InvestorID)
	default:
		log.Debug("ignoring event")
		return Ack
	}

	if err != nil {
		log.Error("event handling failed", zap.Error(err))
		return Requeue
	}
	return Ack
}

func decode(body []byte, out any, hasID func() bool) error {
	if err := json.Unmarshal(body, out); err != nil {
		return err
	}
	if !hasID() {
		return errMissingID
	}
	return nil
}
