// Package gocheck probes the local Go toolchain and vets generated packages.
package gocheck

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Minimum toolchain able to build the generated server.
const (
	minMajor = 1
	minMinor = 22
)

// VetTimeout bounds a single go vet run.
const VetTimeout = 2 * time.Minute

var versionRe = regexp.MustCompile(`go(\d+)\.(\d+)`)

// Check verifies that the Go toolchain is installed and meets the minimum
// version requirement. Returns the version string on success.
func Check() (string, error) {
	out, err := exec.Command("go", "version").Output()
	if err != nil {
		return "", fmt.Errorf("Go toolchain not found. Install Go >= %d.%d from https://go.dev/dl/", minMajor, minMinor)
	}
	return checkVersion(strings.TrimSpace(string(out)))
}

func checkVersion(version string) (string, error) {
	matches := versionRe.FindStringSubmatch(version)
	if len(matches) < 3 {
		return version, nil // can't parse, assume ok
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])

	if major < minMajor || (major == minMajor && minor < minMinor) {
		return "", fmt.Errorf("Go toolchain version %d.%d is too old. Install Go >= %d.%d from https://go.dev/dl/",
			major, minor, minMajor, minMinor)
	}
	return version, nil
}

// Vet runs go vet on the package in dir, which must belong to a module the
// toolchain can resolve. The combined output is returned in the error.
func Vet(ctx context.Context, dir string) error {
	ctx, cancel := context.WithTimeout(ctx, VetTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "go", "vet", ".")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("go vet timed out after %s", VetTimeout)
	}
	exitCode := 1
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	}
	return fmt.Errorf("go vet failed (exit code %d): %s", exitCode, strings.TrimSpace(string(out)))
}
