// Command xmunch compresses a word list with an affix grammar.
//
// Usage:
//
//	xmunch [flags] wordlist affixes output
//
// If wordlist or output is -, it is read from standard input or written to
// standard output. With -p the first argument is an uncompressed listing
// written by a previous run (possibly hand-edited) instead of a word list.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cours-de-latin/xmunch"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(fs *flag.FlagSet, stderr io.Writer) func() {
	return func() {
		fmt.Fprintln(stderr, "Usage: xmunch [flags] wordlist affixes output")
		fmt.Fprintln(stderr, "if output or wordlist are -, read from/write to standard streams.")
		fs.PrintDefaults()
	}
}

// run is main without the process exit, so tests can drive the command.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xmunch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(fs, stderr)

	configPath := fs.String("config", "", "path to a YAML configuration file")
	uncompressed := fs.Bool("u", false, "write the uncompressed listing")
	expand := fs.Bool("e", false, "write the expanded word list")
	premunched := fs.Bool("p", false, "read an uncompressed listing instead of a word list")
	dump := fs.Bool("d", false, "dump the parsed affix grammar to stderr")
	stats := fs.Bool("stats", false, "print matching statistics to stderr")
	normalize := fs.String("normalize", "", "Unicode normalization: none, nfc, nfd, nfkc or nfkd")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return 1
	}

	logger := log.New(stderr, "xmunch: ", 0)

	cfg := xmunch.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = xmunch.LoadConfig(*configPath); err != nil {
			logger.Print(err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "u":
			if *uncompressed {
				cfg.Output = xmunch.OutputUncompressed
			}
		case "e":
			if *expand {
				cfg.Output = xmunch.OutputWordList
			}
		case "d":
			cfg.Dump = *dump
		case "stats":
			cfg.Stats = *stats
		case "normalize":
			cfg.Normalize = xmunch.TextForm(*normalize)
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Print(err)
		return 1
	}

	if err := munch(fs.Arg(0), fs.Arg(1), fs.Arg(2), *premunched, cfg, stdin, stdout, stderr, logger); err != nil {
		logger.Print(err)
		return 1
	}
	return 0
}

func munch(inPath, affPath, outPath string, premunched bool, cfg xmunch.Config,
	stdin io.Reader, stdout, stderr io.Writer, logger *log.Logger) error {

	aff, err := os.Open(affPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", affPath, err)
	}
	defer aff.Close()

	p := xmunch.Parser{Logger: logger, Form: cfg.Normalize}
	g, err := p.Parse(aff)
	if err != nil {
		return fmt.Errorf("%s: %w", affPath, err)
	}
	if cfg.Dump {
		if err := g.Dump(stderr); err != nil {
			return err
		}
	}

	d := xmunch.New(g)
	d.Logger = logger
	d.Form = cfg.Normalize
	if !cfg.Markers.Empty() {
		d.SetMarkers(cfg.Markers.Apply(g.Markers))
	}

	in := stdin
	if inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", inPath, err)
		}
		defer f.Close()
		in = f
	}
	if premunched {
		err = d.LoadPremunched(in)
	} else {
		err = d.LoadWordList(in)
	}
	if err != nil {
		return err
	}

	st := d.Munch()
	if cfg.Stats {
		printStats(logger, st)
	}

	out := stdout
	var file *os.File
	if outPath != "-" {
		if file, err = os.Create(outPath); err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		out = file
	}

	switch cfg.Output {
	case xmunch.OutputUncompressed:
		err = d.WriteUncompressed(out)
	case xmunch.OutputWordList:
		err = d.WriteWordList(out)
	default:
		err = d.WriteCompressed(out)
	}
	if file != nil {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

func printStats(logger *log.Logger, st xmunch.Stats) {
	logger.Printf("%d words, %d consumed, %d stems (%d virtual)",
		st.Words, st.Consumed, st.Stems, st.VirtualStems)
	for _, g := range st.Groups {
		logger.Printf("group %s: %d candidates, %d confirmed, %d incompatible, %d below threshold",
			g.Name, g.Candidates, g.Confirmed, g.Incompatible, g.BelowThreshold)
	}
}
