package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/strictlymomo/trainspotters-friend/internal/loader"
	"github.com/strictlymomo/trainspotters-friend/internal/player"
	"github.com/strictlymomo/trainspotters-friend/internal/services"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
	"github.com/strictlymomo/trainspotters-friend/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config       *shared.Config
	mixesdb      *services.MixesDB
	searchers    []services.Searcher
	cache        tasks.ResultCacher
	httpClient   *http.Client
	logger       *log.Logger
	output       io.Writer
	digEngine    *tasks.DigEngine
	searchEngine *tasks.SearchEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Cache      tasks.ResultCacher
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	cfg := opts.Config

	mixesdb := services.NewMixesDB(cfg.Digger.BaseURL, services.Opts{
		Client:    opts.HTTPClient,
		UserAgent: cfg.Digger.UserAgent,
		Timeout:   time.Duration(cfg.Digger.RequestTimeout) * time.Second,
		Logger:    opts.Logger,
	})

	searchers := services.NewSearchers(cfg.Search.Stores, services.Opts{
		Client:     opts.HTTPClient,
		UserAgent:  cfg.Search.UserAgent,
		Timeout:    time.Duration(cfg.Search.RequestTimeout) * time.Second,
		MaxResults: cfg.Search.ResultsPerStore,
		Logger:     opts.Logger,
	})

	loaderOpts := loader.Opts{
		SettleDelay: time.Duration(cfg.Digger.SettleDelayMS) * time.Millisecond,
		Logger:      opts.Logger,
	}

	return &Runner{
		config:       cfg,
		mixesdb:      mixesdb,
		searchers:    searchers,
		cache:        opts.Cache,
		httpClient:   opts.HTTPClient,
		logger:       opts.Logger,
		output:       opts.Output,
		digEngine:    tasks.NewDigEngine(mixesdb, loaderOpts, cfg.Digger.MaxMixes, cfg.Search.RateLimit, opts.Logger),
		searchEngine: tasks.NewSearchEngine(searchers, opts.Cache, cfg.Search.RateLimit, opts.Logger),
	}
}

// SetLogger replaces the runner's logger, for commands that redirect logging.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// previewConfig converts the TOML preview section into a [player.Config].
func (r *Runner) previewConfig() player.Config {
	p := r.config.Preview
	return player.Config{
		HoverDelay:   time.Duration(p.HoverDelayMS) * time.Millisecond,
		SeekStep:     time.Duration(p.SeekStepS) * time.Second,
		PollInterval: time.Duration(p.PollIntervalMS) * time.Millisecond,
		PollTimeout:  time.Duration(p.PollTimeoutMS) * time.Millisecond,
		SkipGuard:    time.Duration(p.SkipGuardMS) * time.Millisecond,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, digCommand, searchCommand, viewCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
