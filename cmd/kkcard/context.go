package main

import (
	"fmt"
	"github.com/go-andiamo/kkcard"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"os"
)

type globalFlags struct {
	configPath string
	strict     bool
	noPNG      bool
	logLevel   string
	logFormat  string
	noColor    bool
}

type commandContext struct {
	flags    globalFlags
	config   *Config
	logger   *slog.Logger
	colorize bool
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

// init loads the config file and applies any explicitly set flags over it
func (c *commandContext) init(cmd *cobra.Command) error {
	cfg, err := LoadConfig(c.flags.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Strict = c.flags.strict
	}
	if flags.Changed("no-png") {
		cfg.SkipPNG = c.flags.noPNG
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.flags.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = c.flags.logFormat
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	c.config = cfg
	c.logger = logger
	c.colorize = !c.flags.noColor && shouldColorize(cmd.OutOrStdout())
	logger.Debug("configuration loaded",
		slog.Bool("strict", cfg.Strict),
		slog.Bool("skip_png", cfg.SkipPNG),
		slog.Int64("max_input_size", cfg.MaxInputSize),
		slog.Int("max_kkex_depth", cfg.MaxKKExDepth))
	return nil
}

func (c *commandContext) parseOptions() *kkcard.ParseOptions {
	return &kkcard.ParseOptions{
		SkipPNG:      c.config.SkipPNG,
		Strict:       c.config.Strict,
		MaxKKExDepth: c.config.MaxKKExDepth,
		MaxInputSize: c.config.MaxInputSize,
	}
}

// readFile reads a whole input file, honouring the configured max input size
func (c *commandContext) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	limit := c.config.MaxInputSize
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%s: card data exceeds max input size (%d bytes)", path, limit)
	}
	return data, nil
}

// parseFile parses a card file and logs any collected (lenient) block errors
func (c *commandContext) parseFile(path string, options *kkcard.ParseOptions) (*kkcard.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	card, err := kkcard.ParseCardFrom(f, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.logCardProblems(path, card)
	return card, nil
}

func (c *commandContext) logCardProblems(path string, card *kkcard.Card) {
	if card.UnsupportedHeader {
		c.logger.Warn("unsupported card header",
			slog.String("file", path),
			slog.String("code", kkcard.CodeUnsupportedHeader),
			slog.String("header", card.Header.Header))
	}
	for _, perr := range card.Errors {
		c.logger.Warn(perr.Message,
			slog.String("file", path),
			slog.String("code", perr.Code()),
			slog.String("block", perr.At),
			slog.Any("error", perr))
	}
}
