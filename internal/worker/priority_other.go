//go:build !linux

package worker

import "log/slog"

func applyPriority(p int, log *slog.Logger) {
	if p != NormPriority {
		log.Debug("worker: priority hint unsupported on this platform", "priority", p)
	}
}
