// Package notify formats and delivers price-drop alerts.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
	slackx "github.com/yeonjae-dev/price-monitor-mcp/pkg/slack"
)

// SlackNotifier implements contract.AlertSender over a Slack incoming
// webhook. The detection timestamp in the message is captured at send time.
type SlackNotifier struct {
	client *slackx.Client
	now    func() time.Time
}

func New(client *slackx.Client) (*SlackNotifier, error) {
	if client == nil {
		return nil, errors.New("slack client is required")
	}
	return &SlackNotifier{
		client: client,
		now:    time.Now,
	}, nil
}

// WithClock replaces the timestamp source. Tests use this for deterministic
// message output.
func (n *SlackNotifier) WithClock(now func() time.Time) *SlackNotifier {
	if now != nil {
		n.now = now
	}
	return n
}

func (n *SlackNotifier) Send(ctx context.Context, alert contractx.AlertMessage) error {
	text := FormatAlert(alert, n.now())

	if err := n.client.Post(ctx, text); err != nil {
		if errors.Is(err, slackx.ErrNoWebhook) {
			return fmt.Errorf("%w: %v", contractx.ErrConfig, err)
		}
		return fmt.Errorf("%w: %v", contractx.ErrDelivery, err)
	}

	log.Info().Str("product", alert.ProductName).Float64("current_price", alert.CurrentPrice).Msg("alert delivered")
	return nil
}

// FormatAlert renders the fixed alert template.
func FormatAlert(alert contractx.AlertMessage, detectedAt time.Time) string {
	return fmt.Sprintf(
		"📉 Price drop detected!\n"+
			"Product: %s\n"+
			"DB price: %s KRW\n"+
			"Current price: %s KRW\n"+
			"Difference: %s KRW (-%.1f%%)\n"+
			"Seller: %s\n"+
			"URL: %s\n"+
			"Detected at: %s",
		alert.ProductName,
		humanize.Commaf(alert.DBPrice),
		humanize.Commaf(alert.CurrentPrice),
		humanize.Commaf(alert.PriceDiff),
		alert.DiscountRate,
		alert.Seller,
		alert.URL,
		detectedAt.Format("2006-01-02 15:04:05"),
	)
}
