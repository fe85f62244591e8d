//go:build amd64

package classify

import "golang.org/x/sys/cpu"

// hasWide reports whether the CPU supports the widened (AVX2-width)
// register the classifier's tile size was chosen to match. WideLips's
// mask computation itself is architecture-independent (see classifier.go)
// so that spec.md §9's "bytewise-identical masks" guarantee holds
// everywhere; this flag only gates ClassifyAll's word-at-a-time
// whitespace fast path (wideClassify), which yields the same masks as the
// byte loop.
func hasWide() bool {
	return cpu.X86.HasAVX2
}

// ChunkSize returns the SIMD register width in bytes this architecture
// can move at once, or 8 (one 64-bit word) as a fallback when no wide
// instruction set is detected.
func ChunkSize() int {
	if cpu.X86.HasAVX2 {
		return 32
	}
	if cpu.X86.HasSSE42 {
		return 16
	}
	return 8
}
