package reactor

import (
	"log/slog"

	"github.com/solidgraph/reactor/internal"
)

// SetLogger overrides the package-wide slog.Logger used to report a
// panic or error that reaches no registered OnError hook.
func SetLogger(l *slog.Logger) {
	internal.SetLogger(l)
}
