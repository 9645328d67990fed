package fastp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"fastpRunner/internal/manifest"
	"fastpRunner/internal/report"
)

const (
	DefaultOutDir = "clean_reads"

	trimmedDir = "trimmed_reads"
	reportsDir = "fastp_reports"
	symlinkDir = "raw_read_symlinks"
)

var ErrOutDirExists = errors.New("clean read dir exists, please rename or remove it")

// Runner trims every sample into its own directory under OutDir.
type Runner struct {
	Binary   string
	OutDir   string
	Reporter report.Reporter
}

func (r *Runner) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

func (r *Runner) outDir() string {
	if r.OutDir == "" {
		return DefaultOutDir
	}
	return r.OutDir
}

func (r *Runner) reporter() report.Reporter {
	if r.Reporter == nil {
		return report.Nop{}
	}
	return r.Reporter
}

// Clean runs fastp on each sample in order and stops at the first failure.
// OutDir must not exist yet.
func (r *Runner) Clean(ctx context.Context, samples []*manifest.Sample) error {
	outDir := r.outDir()
	if _, err := os.Stat(outDir); err == nil {
		return fmt.Errorf("%w: %s", ErrOutDirExists, outDir)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("can't create clean read dir: %w", err)
	}

	for _, s := range samples {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.cleanSample(ctx, s); err != nil {
			return err
		}
	}
	r.reporter().Blank()
	return nil
}

func (r *Runner) cleanSample(ctx context.Context, s *manifest.Sample) error {
	rep := r.reporter()
	rep.Section(s.ID)

	dir := filepath.Join(r.outDir(), s.GroupDir)
	reports := filepath.Join(dir, reportsDir)
	for _, d := range []string{filepath.Join(dir, trimmedDir), reports} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}

	out := Outputs{
		R1:   filepath.Join(dir, trimmedDir, filepath.Base(s.Forward)),
		R2:   filepath.Join(dir, trimmedDir, filepath.Base(s.Reverse)),
		HTML: filepath.Join(reports, "fastp.html"),
		JSON: filepath.Join(reports, "fastp.json"),
	}
	logPath := filepath.Join(reports, "fastp.log")

	Settings(rep, s, dir, out)
	rep.Info("Fastp is processing...")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary(), Args(s, out)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	// fastp reports on stderr
	if err := os.WriteFile(logPath, stderr.Bytes(), 0o644); err != nil {
		return err
	}

	if runErr == nil {
		runErr = missingReports(out.HTML, out.JSON)
	}
	if runErr != nil {
		rep.Warn("%s%s", stdout.String(), stderr.String())
		return fmt.Errorf("%w on sample %q: %v (log: %s)", ErrFailed, s.ID, runErr, logPath)
	}

	if err := r.linkRawReads(dir, s); err != nil {
		return err
	}

	rep.Success("DONE!")
	rep.Blank()
	rep.Info("Fastp Reports:")
	rep.Info("1. %s", out.HTML)
	rep.Info("2. %s", out.JSON)
	rep.Info("3. %s", logPath)
	rep.Blank()
	return nil
}

func missingReports(paths ...string) error {
	for _, p := range paths {
		if fi, err := os.Stat(p); err != nil || !fi.Mode().IsRegular() {
			return fmt.Errorf("report %s not written", p)
		}
	}
	return nil
}

func (r *Runner) linkRawReads(dir string, s *manifest.Sample) error {
	if runtime.GOOS == "windows" {
		r.reporter().Warn("Skip creating symlink in dir %s for %s and %s. Operating system is not supported.", dir, s.Forward, s.Reverse)
		return nil
	}

	links := filepath.Join(dir, symlinkDir)
	if err := os.MkdirAll(links, 0o755); err != nil {
		return err
	}
	for _, p := range []string{s.Forward, s.Reverse} {
		target, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		if err := os.Symlink(target, filepath.Join(links, filepath.Base(p))); err != nil {
			return err
		}
	}
	return nil
}

// Settings prints what will be run for s.
func Settings(rep report.Reporter, s *manifest.Sample, dir string, out Outputs) {
	rep.Field("Target dir", dir)
	rep.Field("Input R1", s.Forward)
	rep.Field("Input R2", s.Reverse)
	if out.R1 != "" {
		rep.Field("Output R1", out.R1)
		rep.Field("Output R2", out.R2)
	}
	Adapters(rep, s)
	rep.Blank()
}

// Adapters prints the adapter configuration of s.
func Adapters(rep report.Reporter, s *manifest.Sample) {
	switch {
	case s.AutoDetect:
		rep.Field("Adapters", "AUTO-DETECT")
	case s.AdapterReverse == "":
		rep.Field("Adapters", s.AdapterForward)
	default:
		rep.Field("Adapter i5", s.AdapterForward)
		rep.Field("Adapter i7", s.AdapterReverse)
	}
}
