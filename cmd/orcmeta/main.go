// Command orcmeta prints an ORC file's tail metadata as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/orcmeta/orcmeta"
	"github.com/orcmeta/orcmeta/internal/xlog"
)

func main() {
	ctx, done := context.WithCancel(context.Background())
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		<-ch
		done()
	}()

	var opts orcmeta.ReadOptions
	var verbose bool
	fs := flag.NewFlagSet("orcmeta", flag.ExitOnError)
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [flags] file.orc\n", os.Args[0])
		fs.PrintDefaults()
	}
	fs.BoolVar(&opts.Schema, "schema", false, "include the reconstructed schema string")
	fs.BoolVar(&opts.FileStats, "file-stats", false, "include file-level column statistics")
	fs.BoolVar(&opts.StripeStats, "stripe-stats", false, "include per-stripe column statistics")
	fs.BoolVar(&opts.Stripes, "stripes", false, "include per-stripe stream and encoding directories")
	fs.BoolVar(&verbose, "v", false, "log each tail-decode step to stderr")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(xlog.WrapHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))))

	res, err := orcmeta.ReadMetadata(ctx, fs.Arg(0), opts)
	if err != nil {
		var orcErr *orcmeta.Error
		if errors.As(err, &orcErr) {
			slog.Error("reading metadata failed", "kind", orcErr.Kind, "op", orcErr.Op, "err", err)
		}
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Fatal(err)
	}
}
