package notify

import (
	"context"

	"github.com/offerwatch/offerwatch/internal/logger"
)

// LogNotifier writes notifications to the application log. Always available;
// the fallback delivery channel when no webhook is configured.
type LogNotifier struct {
	log logger.Interface
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log logger.Interface) *LogNotifier {
	return &LogNotifier{log: log.WithComponent("notifier")}
}

// Notify logs the notification.
func (n *LogNotifier) Notify(ctx context.Context, title, body string) error {
	n.log.Info("Notification", "title", title, "body", body)
	return nil
}
