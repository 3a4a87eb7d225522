package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/violenttestpen/shukusho/codec"
)

type config struct {
	output  string
	codec   string
	format  outputFormat
	list    bool
	quiet   bool
	noColor bool
	help    bool
	files   []string
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [OPTION]... FILE...\n", fs.Name())
	fmt.Fprintln(w, "Benchmark compression codecs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
}

func parseFlags(args []string, stderr io.Writer) (*config, *pflag.FlagSet, error) {
	cfg := new(config)
	var format string

	fs := pflag.NewFlagSet("shukusho", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}
	fs.BoolVarP(&cfg.help, "help", "h", false, "Print this help screen and exit")
	fs.StringVarP(&cfg.output, "output", "o", "", "Write data to `outfile` (default is stdout)")
	fs.StringVarP(&cfg.codec, "codec", "c", "", "Benchmark only the specified `codec` (name or plugin:name)")
	fs.StringVarP(&format, "format", "f", "json", "Output `format`, one of \"json\" or \"csv\"")
	fs.BoolVarP(&cfg.list, "list", "L", false, "List registered codecs and exit")
	fs.BoolVarP(&cfg.quiet, "quiet", "q", false, "Do not print progress")
	fs.BoolVar(&cfg.noColor, "no-color", false, "Disable coloured output")
	if err := fs.Parse(args); err != nil {
		return nil, fs, usageErrorWrap(err, "")
	}
	if cfg.help || cfg.list {
		return cfg, fs, nil
	}

	var err error
	if cfg.format, err = parseFormat(format); err != nil {
		return nil, fs, err
	}
	cfg.files = fs.Args()
	if len(cfg.files) == 0 {
		return nil, fs, usageError("no input files specified")
	}
	return cfg, fs, nil
}

// selectCodecs resolves the codecs to run, either the one named or all of
// them in registry order.
func selectCodecs(reg *codec.Registry, name string) ([]*codec.Codec, error) {
	if name == "" {
		return reg.Codecs(), nil
	}
	c, err := reg.Lookup(name)
	if err != nil {
		return nil, usageErrorWrap(err, "unable to find codec")
	}
	return []*codec.Codec{c}, nil
}

func listCodecs(w io.Writer, reg *codec.Registry) {
	for _, c := range reg.Codecs() {
		if err := c.Init(); err != nil {
			fmt.Fprintf(w, "%s\t%s\n", c, color.RedString("unavailable: %v", err))
			continue
		}
		fmt.Fprintln(w, c.String())
	}
}

// benchmarkFiles runs every codec against every file, strictly in order.
func benchmarkFiles(s *session, codecs []*codec.Codec, files []string) error {
	if err := s.out.OpenDocument(); err != nil {
		return environmentError(err, "unable to write output")
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return usageErrorWrap(err, "unable to open input data")
		}
		err = benchmarkDataset(s, codecs, name, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	if err := s.out.CloseDocument(); err != nil {
		return environmentError(err, "unable to write output")
	}
	return nil
}

func benchmarkDataset(s *session, codecs []*codec.Codec, name string, input io.ReadSeeker) error {
	if err := s.useInput(name, input); err != nil {
		return err
	}
	s.progress.dataset(name)
	if err := s.out.OpenDataset(s.inputName, s.inputSize); err != nil {
		return environmentError(err, "unable to write output")
	}
	for _, c := range codecs {
		if err := s.benchmarkCodec(c); err != nil {
			return err
		}
	}
	if err := s.out.CloseDataset(); err != nil {
		return environmentError(err, "unable to write output")
	}
	return nil
}

func run(args []string, reg *codec.Registry, c clock, stdout, stderr io.Writer) error {
	cfg, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if cfg.help {
		printUsage(stderr, fs)
		return nil
	}
	color.NoColor = cfg.noColor || os.Getenv("NO_COLOR") != "" || !isTerminal(stderr)
	if cfg.list {
		listCodecs(stdout, reg)
		return nil
	}

	codecs, err := selectCodecs(reg, cfg.codec)
	if err != nil {
		return err
	}

	out := stdout
	if cfg.output != "" {
		f, err := os.OpenFile(cfg.output, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
		if err != nil {
			return usageErrorWrap(err, "unable to open output file")
		}
		defer f.Close()
		out = f
	}

	s := newSession(newResultWriter(cfg.format, out), c, newReporter(stderr, cfg.quiet))
	return benchmarkFiles(s, codecs, cfg.files)
}

func isTerminal(w io.Writer) bool {
	if w == color.Error {
		w = os.Stderr
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func main() {
	err := run(os.Args[1:], codec.Default, processClock, os.Stdout, color.Error)
	if err != nil {
		fmt.Fprintln(os.Stderr, "shukusho:", err)
		if exitCode(err) == exitUsage {
			fmt.Fprintln(os.Stderr, "Try 'shukusho -h' for more information.")
		}
	}
	os.Exit(exitCode(err))
}
