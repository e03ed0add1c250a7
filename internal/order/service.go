package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/khanabid1694/sj-server/internal/notify"
)

var ErrInvalidOrder = errors.New("order is missing required fields")

// asyncNotifyTimeout bounds the detached notification attempt; the
// request context is gone by the time it runs.
const asyncNotifyTimeout = 45 * time.Second

type Service interface {
	// Submit validates the order and triggers the admin notification.
	// It returns the order reference echoed back to the caller.
	Submit(ctx context.Context, o *Order) (string, error)
}

type service struct {
	notifier notify.Notifier
	async    bool
}

// NewService builds the intake service. The notification policy is fixed
// here for the lifetime of the process: async=false awaits delivery and
// propagates its failure to the caller, async=true acknowledges first
// and delivers in the background, logging failures.
func NewService(notifier notify.Notifier, async bool) Service {
	return &service{notifier: notifier, async: async}
}

func (s *service) Submit(ctx context.Context, o *Order) (string, error) {
	if o.CustomerName == "" || o.Phone == "" {
		return "", ErrInvalidOrder
	}

	ref := o.OrderID
	if ref == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return "", fmt.Errorf("service: failed to generate order reference: %w", err)
		}
		ref = id.String()
	}

	message := FormatMessage(o, ref)

	if s.async {
		go s.notifyBackground(ref, message)
		log.Info().Str("order_ref", ref).Msg("service: order accepted, notification dispatched")
		return ref, nil
	}

	if err := s.notifier.Notify(ctx, message); err != nil {
		log.Error().Err(err).Str("order_ref", ref).Msg("service: order notification failed")
		return "", fmt.Errorf("service: failed to notify order %s: %w", ref, err)
	}

	log.Info().Str("order_ref", ref).Msg("service: order notified")
	return ref, nil
}

func (s *service) notifyBackground(ref, message string) {
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic_value", p).Str("order_ref", ref).Msg("service: panic recovered in background notification")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), asyncNotifyTimeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, message); err != nil {
		log.Error().Err(err).Str("order_ref", ref).Msg("service: background notification failed")
	}
}
