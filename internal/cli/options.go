// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"bfgraph/core/engine"
	"bfgraph/core/kmer"
	"bfgraph/internal/config"
	"bfgraph/internal/output"
	"bfgraph/internal/version"
	"bfgraph/internal/writers"
)

// Filter construction defaults.
const (
	DefaultExpectedKmers uint    = 1 << 20
	DefaultFPRate        float64 = 0.01
	DefaultMinCount              = 1
)

// ContigsOptions holds the flags of `bfgraph contigs`.
type ContigsOptions struct {
	K         int
	Filter    string
	Output    string // "" or "-" is stdout
	Format    string
	Graph     string // DOT output path, "" disables
	Stats     string // run report path, "" disables
	OnInvalid string
	Config    string
	Verbose   bool
	Reads     []string
}

// FilterOptions holds the flags of `bfgraph filter`.
type FilterOptions struct {
	K             int
	Output        string
	ExpectedKmers uint
	FPRate        float64
	MinCount      int
	Config        string
	Verbose       bool
	Reads         []string
}

// Policy returns the parsed --on-invalid value.
func (o ContigsOptions) Policy() engine.InvalidPolicy {
	p, _ := engine.ParseInvalidPolicy(o.OnInvalid)
	return p
}

// Validate checks option values without touching the filesystem.
func (o ContigsOptions) Validate() error {
	if o.K == 0 {
		return errors.New("--kmer-size is required")
	}
	if err := kmer.ValidK(o.K); err != nil {
		return fmt.Errorf("--kmer-size: %w", err)
	}
	if o.Filter == "" {
		return errors.New("--filter is required")
	}
	if !writers.Known(o.Format) {
		return fmt.Errorf("invalid --format %q (want %s)", o.Format, strings.Join(writers.Formats(), " | "))
	}
	if _, err := engine.ParseInvalidPolicy(o.OnInvalid); err != nil {
		return fmt.Errorf("--on-invalid: %w", err)
	}
	if o.Graph != "" && o.Graph == o.Output {
		return errors.New("--graph and --output must differ")
	}
	if len(o.Reads) == 0 {
		return errors.New("at least one read file is required ('-' reads stdin)")
	}
	return nil
}

// Validate checks option values without touching the filesystem.
func (o FilterOptions) Validate() error {
	if o.K == 0 {
		return errors.New("--kmer-size is required")
	}
	if err := kmer.ValidK(o.K); err != nil {
		return fmt.Errorf("--kmer-size: %w", err)
	}
	if o.Output == "" || o.Output == "-" {
		return errors.New("--output filter path is required")
	}
	if o.ExpectedKmers == 0 {
		return errors.New("--expected-kmers must be > 0")
	}
	if o.FPRate <= 0 || o.FPRate >= 1 {
		return errors.New("--fp-rate must be in (0,1)")
	}
	if o.MinCount != 1 && o.MinCount != 2 {
		return errors.New("--min-count must be 1 or 2")
	}
	if len(o.Reads) == 0 {
		return errors.New("at least one read file is required ('-' reads stdin)")
	}
	return nil
}

// ParseContigs registers and parses the contigs flags. Values from
// --config fill every flag not given on the command line.
func ParseContigs(fs *pflag.FlagSet, argv []string) (ContigsOptions, error) {
	var opt ContigsOptions
	var help bool

	fs.IntVarP(&opt.K, "kmer-size", "k", 0, "k-mer size, must match the filter (1-63) [*]")
	fs.StringVarP(&opt.Filter, "filter", "i", "", "`FILTER` file built by bfgraph filter [*]")
	fs.StringVarP(&opt.Output, "output", "o", "-", "contig output file ('-' = stdout)")
	fs.StringVar(&opt.Format, "format", output.FormatFASTA, "output format: "+strings.Join(writers.Formats(), " | "))
	fs.StringVar(&opt.Graph, "graph", "", "also write the contig graph as DOT to this file")
	fs.StringVar(&opt.Stats, "stats", "", "write run metadata and counters as JSON to this file")
	fs.StringVar(&opt.OnInvalid, "on-invalid", engine.InvalidSkipWindow.String(), "non-ACGT handling: skip-window | skip-read")
	fs.StringVar(&opt.Config, "config", "", "YAML or JSONC config file with flag defaults")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug logging")
	fs.BoolVarP(&help, "help", "h", false, "show this help message")
	fs.Usage = func() {}

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, pflag.ErrHelp
	}
	opt.Reads = fs.Args()

	if opt.Config != "" {
		f, err := config.LoadFile(opt.Config)
		if err != nil {
			return opt, err
		}
		setInt(fs, "kmer-size", &opt.K, f.KmerSize)
		setString(fs, "filter", &opt.Filter, f.Filter)
		setString(fs, "output", &opt.Output, f.Output)
		setString(fs, "format", &opt.Format, f.Format)
		setString(fs, "graph", &opt.Graph, f.Graph)
		setString(fs, "on-invalid", &opt.OnInvalid, f.OnInvalid)
		setBool(fs, "verbose", &opt.Verbose, f.Verbose)
	}
	return opt, opt.Validate()
}

// ParseFilter registers and parses the filter flags.
func ParseFilter(fs *pflag.FlagSet, argv []string) (FilterOptions, error) {
	var opt FilterOptions
	var help bool

	fs.IntVarP(&opt.K, "kmer-size", "k", 0, "k-mer size (1-63) [*]")
	fs.StringVarP(&opt.Output, "output", "o", "", "`FILTER` file to write [*]")
	fs.UintVar(&opt.ExpectedKmers, "expected-kmers", DefaultExpectedKmers, "expected distinct k-mers, sizes the filter")
	fs.Float64Var(&opt.FPRate, "fp-rate", DefaultFPRate, "target false-positive rate")
	fs.IntVar(&opt.MinCount, "min-count", DefaultMinCount, "sightings needed before a k-mer is admitted: 1 | 2")
	fs.StringVar(&opt.Config, "config", "", "YAML or JSONC config file with flag defaults")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug logging")
	fs.BoolVarP(&help, "help", "h", false, "show this help message")
	fs.Usage = func() {}

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, pflag.ErrHelp
	}
	opt.Reads = fs.Args()

	if opt.Config != "" {
		f, err := config.LoadFile(opt.Config)
		if err != nil {
			return opt, err
		}
		setInt(fs, "kmer-size", &opt.K, f.KmerSize)
		// the filter path is the filter subcommand's output
		setString(fs, "output", &opt.Output, f.Filter)
		if f.ExpectedKmers != nil && !fs.Changed("expected-kmers") {
			opt.ExpectedKmers = *f.ExpectedKmers
		}
		if f.FPRate != nil && !fs.Changed("fp-rate") {
			opt.FPRate = *f.FPRate
		}
		setInt(fs, "min-count", &opt.MinCount, f.MinCount)
		setBool(fs, "verbose", &opt.Verbose, f.Verbose)
	}
	return opt, opt.Validate()
}

func setInt(fs *pflag.FlagSet, name string, dst *int, v *int) {
	if v != nil && !fs.Changed(name) {
		*dst = *v
	}
}

func setString(fs *pflag.FlagSet, name string, dst *string, v *string) {
	if v != nil && !fs.Changed(name) {
		*dst = *v
	}
}

func setBool(fs *pflag.FlagSet, name string, dst *bool, v *bool) {
	if v != nil && !fs.Changed(name) {
		*dst = *v
	}
}

// Usage writes the help text for one subcommand.
func Usage(w io.Writer, fs *pflag.FlagSet, synopsis string) {
	fmt.Fprintf(w, `bfgraph %s: %s

Version: %s

Usage:
  %s

Flags:
%s`, fs.Name(), subcommandSummary[fs.Name()], version.Version, synopsis, fs.FlagUsages())
}

var subcommandSummary = map[string]string{
	"contigs": "assemble maximal non-branching contigs from reads and a k-mer filter",
	"filter":  "build the k-mer Bloom filter used by contigs",
}

// Synopses of each subcommand.
const (
	ContigsSynopsis = "bfgraph contigs -k INT -i FILTER [flags] READS..."
	FilterSynopsis  = "bfgraph filter -k INT -o FILTER [flags] READS..."
)

// TopUsage is printed for `bfgraph`, `bfgraph -h` and unknown subcommands.
func TopUsage(w io.Writer) {
	fmt.Fprintf(w, `bfgraph: de Bruijn graph contig assembly from a k-mer Bloom filter

Version: %s

Usage:
  %s
  %s
  bfgraph version

Run 'bfgraph <command> -h' for the flags of a command.
`, version.Version, FilterSynopsis, ContigsSynopsis)
}
