//go:build windows

package process

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

const stillActive = 259

func setProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= windows.CREATE_NEW_PROCESS_GROUP
}

func processGroup(pid int) int {
	return pid
}

func sameProcessGroup(pid, pgid int) bool {
	return true
}

// signalGroup has no graceful variant on Windows; both signals terminate
func signalGroup(pid, pgid int, sig signal) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	if err := p.Kill(); err != nil && isAlive(pid) {
		return fmt.Errorf("failed to terminate process %d: %w", pid, err)
	}
	return nil
}

func isAlive(pid int) bool {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	defer windows.CloseHandle(h)

	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		return false
	}
	return code == stillActive
}

// groupAlive is false on Windows: signalGroup already terminates the process
// and no group membership is tracked
func groupAlive(pgid int) bool {
	return false
}
