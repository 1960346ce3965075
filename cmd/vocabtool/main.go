// Command vocabtool exports the builtin marker table as YAML and checks
// curated marker files before they are deployed.
//
// Usage:
//
//	vocabtool export [-o markers.yaml]
//	vocabtool check -f markers.yaml [-resolve "Lead,Total Testosterone"]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/MikeSquared-Agency/Toxscan/internal/normalize"
	"github.com/MikeSquared-Agency/Toxscan/internal/observability"
	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

func main() {
	logger := observability.NewLogger("info", "text")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "export":
		err = runExport(os.Args[2:], os.Stdout)
	case "check":
		err = runCheck(os.Args[2:], os.Stdout, logger)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("vocabtool failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vocabtool export [-o file] | check -f file [-resolve names]")
}

func runExport(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)

	data, err := vocab.MarshalYAML(vocab.Builtin())
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(*out, data, 0o644)
}

func runCheck(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	path := fs.String("f", "", "marker YAML file")
	resolve := fs.String("resolve", "", "comma-separated names to resolve against the file")
	fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("-f is required")
	}
	set, err := vocab.NewFileSource(*path).LoadMarkers(context.Background())
	if err != nil {
		return err
	}
	if len(set.Markers) == 0 {
		return fmt.Errorf("%s defines no markers", *path)
	}

	v := vocab.New(set.Version, set.Markers, logger)
	fmt.Fprintf(stdout, "version %s: %d markers, %d aliases, %d conflicts\n",
		v.Version(), v.Len(), len(v.Aliases()), len(v.Conflicts()))
	for _, c := range v.Conflicts() {
		fmt.Fprintf(stdout, "  %s conflict %q: kept %s, dropped %s\n", c.Kind, c.Alias, c.KeptID, c.DroppedID)
	}

	if *resolve != "" {
		n := normalize.New(v, normalize.Options{}, nil)
		for _, name := range strings.Split(*resolve, ",") {
			r := n.Normalize(strings.TrimSpace(name))
			fmt.Fprintf(stdout, "  %q -> %s (%s)\n", r.SourceText, r.MarkerID, r.Method)
		}
	}
	return nil
}
