package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/pdfqa/internal/cli"
	"github.com/dgallion1/pdfqa/internal/config"
	"github.com/dgallion1/pdfqa/internal/llm"
	"github.com/dgallion1/pdfqa/internal/parser"
	"github.com/dgallion1/pdfqa/internal/pipeline"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "pdfqa [file]",
		Short: "Ask questions about a PDF from the terminal",
		Long: `pdfqa extracts sections and tables from a PDF and answers questions
about it with Gemini. Without a subcommand it starts the chat loop.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	chat := &cobra.Command{
		Use:           "chat [file]",
		Short:         "Load a PDF and answer questions until 'exit'",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), args, verbose)
		},
	}
	root.RunE = chat.RunE

	inspect := &cobra.Command{
		Use:           "inspect [file]",
		Short:         "Print detected sections and the first table",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args, verbose)
		},
	}

	root.AddCommand(chat, inspect)
	return root
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func pdfPath(cfg config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.PDFPath
}

func runChat(ctx context.Context, args []string, verbose bool) error {
	log := newLogger(verbose)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring API: %v\n", err)
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring API: %v\n", err)
		return err
	}
	stats := llm.NewLLMStats(cfg.LLMStatsWindow)
	p := pipeline.New(
		&parser.PDFParser{FallbackPdftotext: cfg.PDFFallbackPdftotext, Log: log},
		nil,
		llm.NewAnswerer(gemini, stats, log),
		log,
	)

	r := &cli.Runner{Pipeline: p, In: os.Stdin, Out: os.Stdout}
	err = r.Chat(ctx, pdfPath(cfg, args))
	log.Debug("session finished", "stats", stats.Snapshot())
	return err
}

func runInspect(ctx context.Context, args []string, verbose bool) error {
	log := newLogger(verbose)
	cfg := config.Load()
	if ctx == nil {
		ctx = context.Background()
	}

	p := pipeline.New(
		&parser.PDFParser{FallbackPdftotext: cfg.PDFFallbackPdftotext, Log: log},
		nil, nil, log,
	)
	r := &cli.Runner{Pipeline: p, In: os.Stdin, Out: os.Stdout}
	return r.Inspect(ctx, pdfPath(cfg, args))
}
