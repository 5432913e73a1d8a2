package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind              string
	port              int
	prefix            string
	profile           bool
	tlsCert           string
	tlsKey            string
	verbose           bool
	version           bool

	dsn               string
	judgeURL          string
	responderURL      string
	judgeTimeout      time.Duration
	responderTimeout  time.Duration
	responseTimeout   time.Duration
	votingTimeout     time.Duration
	minPlayers        int
	maxPlayers        int
	sessionTimeout    time.Duration
	trainingBatchSize int
	styleCloaks       bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.minPlayers < 2 {
		return fmt.Errorf("invalid --min-players (must be at least 2): %d", c.minPlayers)
	}
	if c.maxPlayers < c.minPlayers {
		return fmt.Errorf("invalid --max-players (must be at least --min-players): %d", c.maxPlayers)
	}
	if c.responseTimeout <= 0 || c.votingTimeout <= 0 {
		return errors.New("phase timeouts must be positive")
	}
	if c.trainingBatchSize < 1 {
		return fmt.Errorf("invalid --training-batch-size: %d", c.trainingBatchSize)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PRETENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "pretender",
		Short:         "A social deduction game server where players try to out-write an AI and spot its answers.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: PRETENDER_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: PRETENDER_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: PRETENDER_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: PRETENDER_PROFILE)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: PRETENDER_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: PRETENDER_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: PRETENDER_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: PRETENDER_VERSION)")

	fs.StringVar(&cfg.dsn, "dsn", "", "postgres connection string; empty keeps results in memory (env: PRETENDER_DSN)")
	fs.StringVar(&cfg.judgeURL, "judge-url", "http://localhost:8001/judge", "judge inference service endpoint (env: PRETENDER_JUDGE_URL)")
	fs.StringVar(&cfg.responderURL, "responder-url", "http://localhost:8002/generate", "responder inference service endpoint (env: PRETENDER_RESPONDER_URL)")
	fs.DurationVar(&cfg.judgeTimeout, "judge-timeout", 30*time.Second, "wall-clock budget for a single judge call (env: PRETENDER_JUDGE_TIMEOUT)")
	fs.DurationVar(&cfg.responderTimeout, "responder-timeout", 30*time.Second, "wall-clock budget for a single responder call (env: PRETENDER_RESPONDER_TIMEOUT)")
	fs.DurationVar(&cfg.responseTimeout, "response-timeout", 90*time.Second, "deadline for players to submit responses (env: PRETENDER_RESPONSE_TIMEOUT)")
	fs.DurationVar(&cfg.votingTimeout, "voting-timeout", 30*time.Second, "deadline for players to vote (env: PRETENDER_VOTING_TIMEOUT)")
	fs.IntVar(&cfg.minPlayers, "min-players", 2, "players required before a round starts (env: PRETENDER_MIN_PLAYERS)")
	fs.IntVar(&cfg.maxPlayers, "max-players", 10, "maximum players per room (env: PRETENDER_MAX_PLAYERS)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle rooms are ended (env: PRETENDER_SESSION_TIMEOUT)")
	fs.IntVar(&cfg.trainingBatchSize, "training-batch-size", 50, "misclassified examples per training batch (env: PRETENDER_TRAINING_BATCH_SIZE)")
	fs.BoolVar(&cfg.styleCloaks, "style-cloaks", false, "apply a random style cloak to each round (env: PRETENDER_STYLE_CLOAKS)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("pretender v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
