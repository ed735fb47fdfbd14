//go:build windows

package logger

// isTerminal always returns false on Windows; output is written without
// ANSI colors.
func isTerminal(fd uintptr) bool {
	return false
}
