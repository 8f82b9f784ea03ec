package services

import (
	"context"
	"log/slog"

	"governance-dashboard/models"
	"governance-dashboard/utils"

	pubnub "github.com/pubnub/go"
)

// Notifier is told about every successful occupancy change.
type Notifier interface {
	OccupancyChanged(ctx context.Context, v models.VenueStatus) error
}

type PubNubNotifier struct {
	channel string
	breaker *utils.CircuitBreaker
	publish func(channel string, message any) error
}

func NewPubNubNotifier(pn *pubnub.PubNub, channel string) *PubNubNotifier {
	return &PubNubNotifier{
		channel: channel,
		breaker: utils.NewCircuitBreaker("pubnub-occupancy"),
		publish: func(channel string, message any) error {
			_, _, err := pn.Publish().
				Channel(channel).
				Message(message).
				Execute()
			return err
		},
	}
}

func (n *PubNubNotifier) OccupancyChanged(ctx context.Context, v models.VenueStatus) error {
	msg := map[string]any{
		"type":       "occupancy_updated",
		"venue":      v.Name,
		"department": v.Department,
		"occupied":   v.Occupied,
		"capacity":   v.Capacity,
		"percentage": v.Percentage,
		"status":     v.Status,
	}

	_, err := n.breaker.Execute(ctx, func() (any, error) {
		return nil, n.publish(n.channel, msg)
	})
	if err != nil {
		slog.Error("Failed to publish occupancy update", "venue", v.Name, "channel", n.channel, "error", err)
		return err
	}
	return nil
}
