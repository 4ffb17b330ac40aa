//go:build !windows

// Package process terminates browser process trees left behind by renderers.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// renderer and GPU helpers down with the browser. Non-positive pids are
// ignored: -0 would target our own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best effort; the launcher's own Kill follows.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
