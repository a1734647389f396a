// Package fftools locates the ffmpeg family of executables (ffmpeg, ffprobe, ffplay).
package fftools

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNotFound is returned when an executable cannot be located.
var ErrNotFound = errors.New("fftools: executable not found")

// Tool names.
const (
	FFmpeg  = "ffmpeg"
	FFprobe = "ffprobe"
	FFplay  = "ffplay"
)

// EnvVar returns the environment variable that overrides the location of tool,
// e.g. FFPLAY_PATH for ffplay.
func EnvVar(tool string) string {
	return strings.ToUpper(tool) + "_PATH"
}

// Find searches for tool.
// Priority: 1) customPath, 2) <TOOL>_PATH env, 3) PATH, 4) common locations
func Find(tool, customPath string) (string, error) {
	// Check custom path first (set via flag or config)
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrNotFound, customPath)
	}

	// Check environment variable
	env := EnvVar(tool)
	if envPath := os.Getenv(env); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", ErrNotFound, env, envPath)
	}

	// Check PATH
	execName := tool
	if runtime.GOOS == "windows" {
		execName = tool + ".exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	// Check common locations
	for _, p := range commonPaths(execName) {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, tool)
}

// commonPaths returns the usual install locations for execName on this platform.
func commonPaths(execName string) []string {
	var dirs []string
	switch runtime.GOOS {
	case "windows":
		dirs = []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	case "darwin":
		dirs = []string{
			"/opt/homebrew/bin",
			"/usr/local/bin",
			"/usr/bin",
		}
	default:
		dirs = []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/snap/bin",
		}
	}

	paths := make([]string, len(dirs))
	for i, d := range dirs {
		if runtime.GOOS == "windows" {
			paths[i] = d + `\` + execName
		} else {
			paths[i] = d + "/" + execName
		}
	}
	return paths
}

// Available reports whether tool can be located without a custom path.
func Available(tool string) bool {
	_, err := Find(tool, "")
	return err == nil
}
