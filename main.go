package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"

	"fastpRunner/internal/adapter"
	"fastpRunner/internal/fastp"
	"fastpRunner/internal/fastq"
	"fastpRunner/internal/manifest"
	"fastpRunner/internal/report"
)

const version = "0.4.0"

const usage = `fastpRunner v%s
Batch adapter trimming and raw-read sequence cleaning using fastp

Usage:
  fastpRunner check  [-fastp path]
  fastpRunner clean  -i manifest.csv [-id] [-dry] [-o dir] [-fastp path]
  fastpRunner survey -i manifest.csv [-id] [-n reads] [-k bases]
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(stderr, usage, version)
		return 2
	}

	start := time.Now()
	rep := report.NewConsole(stdout)

	var err error
	switch args[0] {
	case "check":
		err = runCheck(ctx, args[1:], rep, stderr)
	case "clean":
		err = runClean(ctx, args[1:], rep, stderr)
	case "survey":
		err = runSurvey(args[1:], rep, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprintf(stdout, usage, version)
		return 0
	case "-version", "--version", "version":
		fmt.Fprintf(stdout, "fastpRunner v%s\n", version)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		fmt.Fprintf(stderr, usage, version)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if errors.Is(err, errUsage) {
		return 2
	}
	if err != nil {
		color.New(color.FgHiRed).Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	rep.Info("Execution time: %s", time.Since(start))
	rep.Info("Thank you for using fastpRunner v%s", version)
	return 0
}

var errUsage = errors.New("usage")

type options struct {
	input  string
	midID  bool
	dry    bool
	outDir string
	binary string
	reads  int
	kmer   int
}

func (o options) anchor() manifest.Anchor {
	if o.midID {
		return manifest.AnchorAnywhere
	}
	return manifest.AnchorStart
}

func newFlagSet(name string, stderr io.Writer, o *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.input, "i", "", "Input manifest file (required)")
	fs.BoolVar(&o.midID, "id", false, "Match the sample id anywhere in the file name instead of at its start")
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string, o *options) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if o.input == "" {
		fmt.Fprintln(fs.Output(), "Missing required argument -i")
		fs.Usage()
		return errUsage
	}
	return nil
}

func runCheck(ctx context.Context, args []string, rep report.Reporter, stderr io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	binary := fs.String("fastp", fastp.DefaultBinary, "fastp executable")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}

	v, err := fastp.Check(ctx, *binary)
	if err != nil {
		return err
	}
	rep.Success("[OK]\t%s", v)
	rep.Blank()
	return nil
}

func runClean(ctx context.Context, args []string, rep report.Reporter, stderr io.Writer) error {
	var o options
	fs := newFlagSet("clean", stderr, &o)
	fs.BoolVar(&o.dry, "dry", false, "Check that the program detects the correct files without running fastp")
	fs.StringVar(&o.outDir, "o", fastp.DefaultOutDir, "Output directory")
	fs.StringVar(&o.binary, "fastp", fastp.DefaultBinary, "fastp executable")
	if err := parseFlags(fs, args, &o); err != nil {
		return err
	}

	samples, err := manifest.Parse(o.input, manifest.Options{Anchor: o.anchor(), Reporter: rep})
	if err != nil {
		return err
	}

	if o.dry {
		return dryRun(samples, rep)
	}

	rep.Info("Starting fastpRunner v%s...", version)
	rep.Blank()
	r := &fastp.Runner{Binary: o.binary, OutDir: o.outDir, Reporter: rep}
	return r.Clean(ctx, samples)
}

func dryRun(samples []*manifest.Sample, rep report.Reporter) error {
	rep.Blank()
	for _, s := range samples {
		rep.Section(s.ID)
		rep.Field("Dir", s.GroupDir)
		rep.Field("Read 1", s.Forward)
		rep.Field("Read 2", s.Reverse)
		fastp.Adapters(rep, s)
		if err := fastq.Verify(s.Forward, s.Reverse); err != nil {
			return fmt.Errorf("sample %q: %w", s.ID, err)
		}
		rep.Success("Reads\t: OK")
		rep.Blank()
	}
	return nil
}

func runSurvey(args []string, rep report.Reporter, stderr io.Writer) error {
	var o options
	def := fastq.DefaultSurveyOptions()
	fs := newFlagSet("survey", stderr, &o)
	fs.IntVar(&o.reads, "n", def.Reads, "Reads sampled per file (0 reads the whole file)")
	fs.IntVar(&o.kmer, "k", def.MinMatch, "Adapter prefix length searched for")
	if err := parseFlags(fs, args, &o); err != nil {
		return err
	}

	samples, err := manifest.Parse(o.input, manifest.Options{Anchor: o.anchor(), Reporter: rep})
	if err != nil {
		return err
	}

	opts := def
	opts.Reads = o.reads
	opts.MinMatch = o.kmer

	rep.Blank()
	for _, s := range samples {
		rep.Section(s.ID)
		if s.Mode() == adapter.Auto {
			rep.Warn("Adapters\t: AUTO-DETECT, nothing to survey")
			rep.Blank()
			continue
		}

		r2Adapter := s.AdapterForward
		if s.Mode() == adapter.Dual {
			r2Adapter = s.AdapterReverse
		}
		for _, f := range []struct{ label, path, adapter string }{
			{"Read 1", s.Forward, s.AdapterForward},
			{"Read 2", s.Reverse, r2Adapter},
		} {
			res, err := fastq.SurveyFile(f.path, f.adapter, opts)
			if err != nil {
				return fmt.Errorf("sample %q: %w", s.ID, err)
			}
			rep.Field(f.label, f.path)
			rep.Field("Adapter", f.adapter)
			rep.Count("Reads sampled", res.Reads)
			rep.Count("With adapter", res.WithAdapter)
			rep.Count("Insert too short", res.TooShort)
			rep.Success("Adapter content: %.2f%%", res.AdapterRate())
			rep.Info("Mean error rate: %.4f", res.MeanError)
			rep.Blank()
		}
	}
	return nil
}
