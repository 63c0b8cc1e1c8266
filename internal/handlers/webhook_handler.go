package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	ucBooking "github.com/ridgelinemotors/moto-reservations/internal/usecase/booking"
)

const maxWebhookBody = 65536

type WebhookHandler struct {
	reconciler    *ucBooking.WebhookReconciler
	signingSecret string
	logger        *zap.Logger
}

func NewWebhookHandler(reconciler *ucBooking.WebhookReconciler, signingSecret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		reconciler:    reconciler,
		signingSecret: signingSecret,
		logger:        logger,
	}
}

// HandleStripe ingests provider events. A non-2xx response makes the
// provider redeliver, so only errors that a retry could fix return 500;
// events this service does not care about are acknowledged.
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_body"})
		return
	}

	var event stripe.Event
	if h.signingSecret != "" {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.signingSecret)
		if err != nil {
			h.logger.Warn("webhook signature verification failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_signature"})
			return
		}
	} else if err := json.Unmarshal(payload, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	var ev ucBooking.IntentEvent
	if err := json.Unmarshal(event.Data.Raw, &ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_event_object"})
		return
	}

	ctx := c.Request.Context()

	switch string(event.Type) {
	case "payment_intent.succeeded":
		err = h.reconciler.HandleSucceeded(ctx, ev)
	case "payment_intent.payment_failed", "payment_intent.canceled":
		err = h.reconciler.SyncStatus(ctx, ev)
	default:
		c.JSON(http.StatusOK, gin.H{"received": true, "ignored": true})
		return
	}

	if err != nil {
		if errors.Is(err, ucBooking.ErrOrphanPayment) {
			// Redelivery cannot repair an orphan; acknowledge and alert.
			h.logger.Error("orphan payment event", zap.Error(err), zap.String("intent", ev.ID))
			c.JSON(http.StatusOK, gin.H{"received": true, "orphan": true})
			return
		}
		if errors.Is(err, ucBooking.ErrVehicleConflict) {
			// Money arrived for a vehicle another conversion already took;
			// a refund is an operator action, not a retry.
			h.logger.Error("succeeded payment lost the vehicle", zap.Error(err), zap.String("intent", ev.ID))
			c.JSON(http.StatusOK, gin.H{"received": true, "conflict": true})
			return
		}
		h.logger.Error("webhook processing failed", zap.Error(err), zap.String("intent", ev.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
