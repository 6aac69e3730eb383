package http

import "log/slog"

func httpLogger() *slog.Logger {
	return slog.Default().With(
		slog.String("service", "orderdesk"),
		slog.String("layer", "http"),
	)
}
