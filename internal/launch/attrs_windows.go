//go:build windows

package launch

import "syscall"

func detachedAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{}
}
