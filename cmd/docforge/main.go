package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dgallion1/docforge/internal/backend"
	"github.com/dgallion1/docforge/internal/reportspec"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Render struct {
		Spec    string `arg:"" help:"Report spec file (YAML)"`
		Output  string `short:"o" help:"Output file (default: stdout)"`
		Backend string `short:"b" help:"Backend: markup, html, or command" default:"markup"`
		Command string `help:"External typeset command for the command backend"`
	} `cmd:"" help:"Assemble a report spec and render it"`

	Check struct {
		Spec string `arg:"" help:"Report spec file (YAML)"`
	} `cmd:"" help:"Validate a report spec without rendering"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "render <spec>":
		if err := runRender(); err != nil {
			slog.Error("Render failed", "error", err)
			os.Exit(1)
		}
	case "check <spec>":
		if err := runCheck(); err != nil {
			slog.Error("Check failed", "error", err)
			os.Exit(1)
		}
	}
}

func runRender() error {
	spec, err := reportspec.Load(CLI.Render.Spec)
	if err != nil {
		return err
	}
	r, err := spec.Build()
	if err != nil {
		return err
	}

	var b backend.Backend
	switch CLI.Render.Backend {
	case "markup":
		b = backend.Markup{}
	case "html":
		b = backend.NewHTML()
	case "command":
		if CLI.Render.Command == "" {
			return fmt.Errorf("command backend requires --command")
		}
		b = &backend.Command{Path: CLI.Render.Command}
	default:
		return fmt.Errorf("unknown backend %q", CLI.Render.Backend)
	}

	out := os.Stdout
	if CLI.Render.Output != "" {
		f, err := os.Create(CLI.Render.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := r.Generate(context.Background(), b, out); err != nil {
		return err
	}
	if CLI.Render.Output != "" {
		slog.Info("Report rendered", "output", CLI.Render.Output)
	}
	return nil
}

func runCheck() error {
	spec, err := reportspec.Load(CLI.Check.Spec)
	if err != nil {
		return err
	}
	slog.Info("Spec is valid",
		"title", spec.Title,
		"sections", len(spec.Sections),
		"outline", spec.Outline != "",
		"glossary", spec.Glossary.Source != "")
	return nil
}
