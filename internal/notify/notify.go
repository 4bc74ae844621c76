package notify

import "go.uber.org/zap"

// Kind identifies the category of a storefront notification.
type Kind string

const (
	KindItemAdded    Kind = "item-added"
	KindAddressSaved Kind = "address-saved"
	KindPayment      Kind = "payment-result"
	KindStockEmpty   Kind = "stock-empty-warning"
)

// Notifier receives fire-and-forget, human-readable storefront events. The
// presentation layer decides how to surface them; the core only reports.
type Notifier interface {
	Notify(kind Kind, message string)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a Notifier backed by the given logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(kind Kind, message string) {
	n.logger.Info("Storefront notification",
		zap.String("kind", string(kind)),
		zap.String("message", message),
	)
}

// Nop discards all notifications.
type Nop struct{}

func (Nop) Notify(Kind, string) {}
