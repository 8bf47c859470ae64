// Package notify delivers match notifications to the user.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/offerwatch/offerwatch/internal/domain"
	"github.com/offerwatch/offerwatch/internal/match"
)

// Notifier delivers one notification. Callers treat delivery as
// fire-and-forget: errors are logged, never fail a sync cycle.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// BuildMessage formats the notification for one market's matches: the title
// names the market, the body lists each matched offer title on its own line.
func BuildMessage(market domain.Market, results []match.Result) (title, body string) {
	title = fmt.Sprintf("Neue Angebote im %s!", market.Name)

	var b strings.Builder
	for _, r := range results {
		b.WriteString("- ")
		b.WriteString(r.Offer.Title)
		b.WriteString("\n")
	}

	return title, b.String()
}
