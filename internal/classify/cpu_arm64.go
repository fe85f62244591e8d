//go:build arm64

package classify

import "golang.org/x/sys/cpu"

// hasWide reports whether the CPU exposes NEON/ASIMD, the widened
// register width ARM64 tiles can be moved through. See cpu_amd64.go for
// why this does not change the actual (architecture-independent) mask
// computation.
func hasWide() bool {
	return cpu.ARM64.HasASIMD
}

// ChunkSize returns the widest register width this ARM64 core supports
// for byte-parallel work, in bytes.
func ChunkSize() int {
	if cpu.ARM64.HasASIMD {
		return 16
	}
	return 8
}
