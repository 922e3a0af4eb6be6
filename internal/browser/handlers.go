package browser

import "sync"

type AlertHandler func(page *Page, message string)

// ConfirmHandler answers a confirm dialog.
type ConfirmHandler func(page *Page, message string) bool

// CollectingAlertHandler records every alert message it receives.
type CollectingAlertHandler struct {
	mu     sync.Mutex
	alerts []string
}

func (h *CollectingAlertHandler) Handle(_ *Page, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alerts = append(h.alerts, message)
}

func (h *CollectingAlertHandler) CollectedAlerts() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string{}, h.alerts...)
}

func NewCollectingAlertHandler() *CollectingAlertHandler {
	return &CollectingAlertHandler{}
}
