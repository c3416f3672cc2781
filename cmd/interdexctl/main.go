// Command interdexctl packs a container archive according to a
// cold-start ordering and capacity profile, generalizing the
// teacher's apkreader command to this module's own container format.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dexpack/interdex/config"
	"github.com/dexpack/interdex/containerio"
	"github.com/dexpack/interdex/interdex"
	"github.com/dexpack/interdex/srcstring"
)

var (
	verbflag    = flag.Int("v", 0, "verbose trace output level")
	configFlag  = flag.String("config", "", "path to a YAML config file")
	outFlag     = flag.String("o", "", "output archive path")
	shortenFlag = flag.Bool("shorten-strings", false, "shorten source-file debug strings after packing")
	mappingFlag = flag.String("mapping", "", "path to write the source-string mapping file (requires -shorten-strings)")
)

type stderrLogger struct{ vlevel int }

func (l stderrLogger) Verbose(level int, format string, args ...any) {
	if l.vlevel >= level {
		fmt.Fprintf(os.Stderr, "++ "+format+"\n", args...)
	}
}

func usage(msg string) {
	if len(msg) > 0 {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	fmt.Fprintf(os.Stderr, "usage: interdexctl [flags] <input archive>\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("interdexctl: ")
	flag.Parse()

	if flag.NArg() != 1 {
		usage("please supply an input container archive")
	}
	if *outFlag == "" {
		usage("please supply -o <output archive>")
	}

	var cfg config.Config
	if *configFlag != "" {
		var err error
		cfg, err = config.Load(*configFlag)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	containers, err := containerio.Read(flag.Arg(0), nil)
	if err != nil {
		log.Fatalf("%v", err)
	}

	opts := interdex.Options{
		ColdStartClasses:   cfg.ColdStartClasses(),
		StaticPruneClasses: cfg.StaticPrune,
		NormalPrimaryDex:   cfg.NormalPrimaryDex,
		EmitCanaries:       cfg.EmitCanaries,
		Profile:            cfg.Profile(),
		Logger:             stderrLogger{vlevel: *verbflag},
	}

	outputs, stats, err := interdex.PackWithRetry(containers, opts)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *shortenFlag {
		result := srcstring.Shorten(outputs)
		fmt.Fprintf(os.Stderr, "shortened %d source strings\n", result.Shortened)
		if *mappingFlag != "" {
			if err := os.WriteFile(*mappingFlag, []byte(result.FormatMapping()), 0o644); err != nil {
				log.Fatalf("writing mapping file: %v", err)
			}
		}
	}

	if err := containerio.Write(*outFlag, outputs); err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("invocation %s: %d containers, %d classes, retried=%v\n",
		stats.InvocationID, len(outputs), stats.TotalClasses(), stats.Retried)
	for i, c := range stats.Containers {
		fmt.Printf("  container %d: %d classes, %d linear-alloc, %d method refs, %d field refs\n",
			i, c.ClassCount, c.LinearSize, c.MethodRefs, c.FieldRefs)
	}
}
