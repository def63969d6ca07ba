//go:build linux

package worker

import (
	"log/slog"
	"runtime"

	"golang.org/x/sys/unix"
)

// niceFor maps the 1..10 priority scale onto a Linux nice value.
// NormPriority is nice 0; every step away moves two nice levels.
func niceFor(p int) int {
	return (NormPriority - ClampPriority(p)) * 2
}

// applyPriority pins the calling goroutine to its OS thread and renices that
// thread. The goroutine never unlocks on success, so the runtime discards the
// thread when the run exits and the nice value does not leak into the pool.
// Raising priority usually needs CAP_SYS_NICE; failure is only logged.
func applyPriority(p int, log *slog.Logger) {
	nice := niceFor(p)
	if nice == 0 {
		return
	}
	runtime.LockOSThread()
	tid := unix.Gettid()
	if err := unix.Setpriority(unix.PRIO_PROCESS, tid, nice); err != nil {
		runtime.UnlockOSThread()
		log.Debug("worker: priority hint ignored", "priority", p, "nice", nice, "error", err)
		return
	}
	log.Debug("worker: priority hint applied", "priority", p, "nice", nice, "tid", tid)
}
