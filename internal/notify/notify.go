// Package notify carries player-facing notifications from the engine to
// whatever sinks are wired in (log, websocket hub).
package notify

import "log"

type Severity string

const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
)

type Notification struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Severity Severity `json:"severity"`
}

// Notifier receives engine notifications. Implementations must not block;
// the engine calls Notify while holding its lock.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to a standard logger.
type LogNotifier struct {
	Logger *log.Logger
}

func (l LogNotifier) Notify(n Notification) {
	if l.Logger == nil {
		return
	}
	l.Logger.Printf("notify %s: %s: %s", n.Severity, n.Title, n.Body)
}

// Multi fans a notification out to several sinks.
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, sink := range m {
		if sink != nil {
			sink.Notify(n)
		}
	}
}
