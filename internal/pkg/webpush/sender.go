package webpush

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	webpushgo "github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/config"
)

// SubscriptionStore provides the stored push endpoints for a user
type SubscriptionStore interface {
	ListForUser(ctx context.Context, userID int64) ([]*models.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}

// Payload is the JSON body delivered to the service worker
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

// Sender delivers web push notifications using VAPID keys
type Sender struct {
	enabled    bool
	publicKey  string
	privateKey string
	subscriber string
	store      SubscriptionStore
	logger     zerolog.Logger
}

// NewSender creates a Sender from the push configuration. When push is
// disabled the sender silently drops all sends.
func NewSender(cfg *config.Config, store SubscriptionStore, logger zerolog.Logger) *Sender {
	return &Sender{
		enabled:    cfg.Push.Enabled,
		publicKey:  cfg.Push.VAPIDPublicKey,
		privateKey: cfg.Push.VAPIDPrivateKey,
		subscriber: cfg.Push.Subscriber,
		store:      store,
		logger:     logger,
	}
}

// PublicKey returns the VAPID public key clients subscribe with
func (s *Sender) PublicKey() string {
	return s.publicKey
}

// Enabled reports whether push delivery is configured
func (s *Sender) Enabled() bool {
	return s.enabled
}

// Send delivers a payload to every endpoint the user has registered.
// Delivery happens in a background goroutine; failures are logged and gone
// endpoints are pruned.
func (s *Sender) Send(userID int64, payload Payload) {
	if !s.enabled {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error().Interface("panic", r).Msg("Panic delivering push notification")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		subs, err := s.store.ListForUser(ctx, userID)
		if err != nil {
			s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to load push subscriptions")
			return
		}
		if len(subs) == 0 {
			return
		}

		body, err := json.Marshal(payload)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to marshal push payload")
			return
		}

		for _, sub := range subs {
			resp, err := webpushgo.SendNotification(body, &webpushgo.Subscription{
				Endpoint: sub.Endpoint,
				Keys: webpushgo.Keys{
					P256dh: sub.P256dh,
					Auth:   sub.Auth,
				},
			}, &webpushgo.Options{
				Subscriber:      s.subscriber,
				VAPIDPublicKey:  s.publicKey,
				VAPIDPrivateKey: s.privateKey,
				TTL:             60,
			})
			if err != nil {
				s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to deliver push notification")
				continue
			}

			// Gone or expired endpoints are removed so they are not retried
			if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
				if err := s.store.DeleteByEndpoint(ctx, sub.Endpoint); err != nil {
					s.logger.Warn().Err(err).Msg("Failed to prune stale push subscription")
				}
			}
			resp.Body.Close()
		}
	}()
}
