//go:build !linux && !windows

package platform

import (
	"fmt"
	"runtime"
)

// NewToolkit reports that no windowing backend exists for this platform.
func NewToolkit() (Toolkit, error) {
	return nil, fmt.Errorf("no windowing backend for %s", runtime.GOOS)
}
