// Package fastp drives the fastp trimmer over resolved manifest samples.
package fastp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"fastpRunner/internal/adapter"
	"fastpRunner/internal/manifest"
)

const DefaultBinary = "fastp"

var ErrFailed = errors.New("fastp failed")

// Check runs "<binary> --version" and returns the version line.
func Check(ctx context.Context, binary string) (string, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "--version")
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("cannot run %s, it may not be installed: %w", binary, err)
	}
	return strings.TrimSpace(out.String()), nil
}

// Outputs are the files fastp writes for one sample.
type Outputs struct {
	R1   string
	R2   string
	HTML string
	JSON string
}

// Args builds the fastp argument list for s.
func Args(s *manifest.Sample, out Outputs) []string {
	args := []string{
		"-i", s.Forward,
		"-I", s.Reverse,
		"-o", out.R1,
		"-O", out.R2,
	}

	switch s.Mode() {
	case adapter.Auto:
		args = append(args, "--detect_adapter_for_pe")
	case adapter.Single:
		args = append(args, "--adapter_sequence", s.AdapterForward)
	case adapter.Dual:
		args = append(args,
			"--adapter_sequence", s.AdapterForward,
			"--adapter_sequence_r2", s.AdapterReverse,
		)
	}

	if out.HTML != "" {
		args = append(args, "-h", out.HTML)
	}
	if out.JSON != "" {
		args = append(args, "-j", out.JSON)
	}
	return args
}
