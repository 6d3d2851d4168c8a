package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/postview/internal/application/settings"
	"github.com/tesso57/postview/internal/application/usecase"
	"github.com/tesso57/postview/internal/infrastructure/config"
	"github.com/tesso57/postview/internal/infrastructure/logging"
	"github.com/tesso57/postview/internal/infrastructure/posts"
	"github.com/tesso57/postview/internal/presentation/tui"
)

var version = "dev"

type program interface {
	Run() (tea.Model, error)
}

var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
}

type cli struct {
	ConfigPath string `name:"config" help:"Path to the config file." type:"path"`
	URL        string `name:"url" help:"Override source.url."`
	Format     string `name:"format" help:"Override source.format (json/feed)."`
	LogFile    string `name:"log-file" help:"Write diagnostic logs to this file." type:"path"`
	LogLevel   string `name:"log-level" help:"Override log.level."`
	Version    bool   `name:"version" help:"Show version."`

	Browse   browseCmd `cmd:"" default:"1" help:"Browse posts (default)."`
	Settings configCmd `cmd:"" name:"config" help:"Inspect or create the config file."`
}

type browseCmd struct{}

type configCmd struct {
	Show showCmd `cmd:"" help:"Print the resolved settings as YAML or TOML."`
	Init initCmd `cmd:"" help:"Write the default settings to the config path."`
}

type showCmd struct {
	Output string `help:"Output format (yaml/toml). Defaults to the config file's format."`
}

type initCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	var c cli
	exited := false
	parser, err := kong.New(&c,
		kong.Name("postview"),
		kong.Description("Browse and search posts in the terminal."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { exited = true }),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if exited {
		return nil
	}
	if err != nil {
		return err
	}

	if c.Version {
		_, _ = fmt.Fprintf(stdout, "postview %s\n", version)
		return nil
	}

	switch kctx.Command() {
	case "config show":
		store, err := c.load()
		if err != nil {
			return err
		}
		return store.EncodeAs(stdout, c.Settings.Show.Output)
	case "config init":
		return c.initConfig(stdout)
	default:
		store, err := c.load()
		if err != nil {
			return err
		}
		return browse(ctx, store.Settings)
	}
}

// load reads the config file and applies command line overrides.
func (c *cli) load() (*config.Store, error) {
	store, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.apply(&store.Settings)
	if err := store.Settings.Check(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", store.Path(), err)
	}
	return store, nil
}

func (c *cli) apply(cfg *settings.Settings) {
	if v := strings.TrimSpace(c.URL); v != "" {
		cfg.Source.URL = v
	}
	if v := strings.TrimSpace(c.Format); v != "" {
		cfg.Source.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(c.LogFile); v != "" {
		cfg.Log.File = v
	}
	if v := strings.TrimSpace(c.LogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
}

func (c *cli) initConfig(stdout io.Writer) error {
	path := c.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	store, err := config.Defaults(path)
	if err != nil {
		return err
	}
	if store.Exists() && !c.Settings.Init.Force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", store.Path())
	}
	if err := store.Save(); err != nil {
		return fmt.Errorf("write config %s: %w", store.Path(), err)
	}
	_, _ = fmt.Fprintf(stdout, "wrote %s\n", store.Path())
	return nil
}

func browse(ctx context.Context, cfg settings.Settings) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	defer func() { _ = logger.Close() }()

	logger.Info("starting", "version", version, "url", cfg.Source.URL, "format", cfg.Source.Format)

	client := posts.NewClient(cfg.Source)
	browser := usecase.NewBrowser(client, usecase.WithLogger(logger.Logger))
	defer browser.Close()

	m := tui.NewModelWithContext(ctx, cfg, browser)
	defer m.Close()

	if _, err := programFactory(m).Run(); err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("exiting")
	return nil
}
