//go:build !windows

package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// setProcessGroup starts the child as leader of its own process group so
// everything it forks can be signalled together.
func setProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

func processGroup(pid int) int {
	pgid, err := unix.Getpgid(pid)
	if err != nil {
		return pid
	}
	return pgid
}

// sameProcessGroup guards against signalling a recycled PID
func sameProcessGroup(pid, pgid int) bool {
	if pgid == 0 {
		return true
	}
	current, err := unix.Getpgid(pid)
	if err != nil {
		return false
	}
	return current == pgid
}

func signalGroup(pid, pgid int, sig signal) error {
	s := unix.SIGTERM
	if sig == sigKill {
		s = unix.SIGKILL
	}

	target := -pgid
	if pgid == 0 {
		target = pid
	}

	err := unix.Kill(target, s)
	if errors.Is(err, unix.ESRCH) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to signal process group %d: %w", pgid, err)
	}
	return nil
}

func isAlive(pid int) bool {
	if err := unix.Kill(pid, 0); err != nil && !errors.Is(err, unix.EPERM) {
		return false
	}
	return !isZombie(pid)
}

// isZombie reads the state field of /proc/<pid>/stat on Linux
func isZombie(pid int) bool {
	if runtime.GOOS != "linux" {
		return false
	}
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return false
	}
	// The command name may contain spaces; the state follows the last ')'
	stat := string(data)
	idx := strings.LastIndexByte(stat, ')')
	if idx < 0 || idx+2 >= len(stat) {
		return false
	}
	return stat[idx+2] == 'Z'
}

// groupAlive reports whether any member of the process group is still running
func groupAlive(pgid int) bool {
	if err := unix.Kill(-pgid, 0); err != nil && !errors.Is(err, unix.EPERM) {
		return false
	}
	if runtime.GOOS != "linux" {
		return true
	}
	return hasLiveMember(pgid)
}

// hasLiveMember scans /proc for a non-zombie process whose pgrp is pgid.
// Orphaned members linger as zombies until init reaps them.
func hasLiveMember(pgid int) bool {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return true
	}
	for _, e := range entries {
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		data, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
		if err != nil {
			continue
		}
		// state ppid pgrp follow the last ')'
		stat := string(data)
		idx := strings.LastIndexByte(stat, ')')
		if idx < 0 {
			continue
		}
		fields := strings.Fields(stat[idx+1:])
		if len(fields) < 3 || fields[0] == "Z" {
			continue
		}
		if pgrp, err := strconv.Atoi(fields[2]); err == nil && pgrp == pgid {
			return true
		}
	}
	return false
}
