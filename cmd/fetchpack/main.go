// Command fetchpack downloads a structure pack and checks its manifest.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getter "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/mazeworld/internal/catalog"
)

func main() {
	var (
		base = flag.String("base", "", "pack git repository url")
		ref  = flag.String("ref", "main", "git ref to fetch")
		sub  = flag.String("dir", "", "subdirectory of the repository holding the pack")
		out  = flag.String("o", "./pack", "output dir path")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *out == "" || *base == "" {
		log.Error("base url and output dir are required")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := fetch(ctx, packURL(*base, *sub, *ref), *out, log); err != nil {
		log.Error("fetch pack", "error", err)
		os.Exit(1)
	}
}

// packURL builds a go-getter git source for a pack.
func packURL(base, sub, ref string) string {
	url := "git::" + base
	if sub != "" {
		url += "//" + sub
	}
	if ref != "" {
		url += "?ref=" + ref
	}
	return url
}

func fetch(ctx context.Context, url, out string, log *slog.Logger) error {
	if err := os.RemoveAll(out); err != nil {
		return fmt.Errorf("clean %s: %w", out, err)
	}

	log.Info("start downloading pack", "url", url, "dir", out)
	client := &getter.Client{
		Ctx:  ctx,
		Src:  url,
		Dst:  out,
		Mode: getter.ClientModeDir,
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}

	cat, err := catalog.Load(out)
	if err != nil {
		return fmt.Errorf("check manifest: %w", err)
	}
	log.Info("done downloading pack", "dir", out, "structures", len(cat.IDs()))
	return nil
}
