package notify

import "log/slog"

// Notifier is the transient notification surface: a short-lived, non-blocking
// user-facing message reporting the outcome of an operation. The embedding UI
// supplies its own implementation (a toast, a status bar); the default logs.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type slogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &slogNotifier{logger: logger}
}

func (n *slogNotifier) Success(message string) {
	n.logger.Info("notification", slog.String("kind", "success"), slog.String("message", message))
}

func (n *slogNotifier) Error(message string) {
	n.logger.Warn("notification", slog.String("kind", "error"), slog.String("message", message))
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(message string) {
	r.Successes = append(r.Successes, message)
}

func (r *Recorder) Error(message string) {
	r.Errors = append(r.Errors, message)
}
