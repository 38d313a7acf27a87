package contract

import (
	"fmt"
	"strings"

	"github.com/huangsam/secpulse/schema"
)

// Default values for configuration.
const (
	DefaultPrecision   = 1
	MaxPrecision       = 2
	DefaultHistoryList = 25
	DefaultServeAddr   = ":8380"
)

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	InputFile   string // JSON file of raw calculator inputs
	AnswersFile string // JSON file of assessment answers

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	RankFloor schema.Rank // Empty means no gate

	ServeAddr     string
	ChatUpstream  string
	EmailUpstream string

	// StatusOverrides replaces the cut points of named ladders, computed
	// from defaults plus config-file overrides.
	StatusOverrides map[string]schema.StatusLadder
}

// LadderRawInput holds custom cut points for one status ladder from the
// config file. Pointers keep "not set" distinct from zero.
type LadderRawInput struct {
	Excellent *float64 `mapstructure:"excellent"`
	Good      *float64 `mapstructure:"good"`
	Fair      *float64 `mapstructure:"fair"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Color      string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`

	InputFile   string `mapstructure:"input"`
	AnswersFile string `mapstructure:"answers"`

	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	RankFloor string `mapstructure:"rank-floor"`

	ServeAddr     string `mapstructure:"addr"`
	ChatUpstream  string `mapstructure:"chat-upstream"`
	EmailUpstream string `mapstructure:"email-upstream"`

	// --- Status ladder overrides from config file ---
	Ladders map[string]LadderRawInput `mapstructure:"ladders"`
}

// ProcessAndValidate turns raw input into a validated Config. It is the
// single choke point between viper and the rest of the program.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	output := schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile

	if input.Precision < DefaultPrecision {
		input.Precision = DefaultPrecision
	}
	if input.Precision > MaxPrecision {
		input.Precision = MaxPrecision
	}
	cfg.Precision = input.Precision
	cfg.UseColors = parseBoolish(input.Color)
	cfg.Width = input.Width

	cfg.InputFile = input.InputFile
	cfg.AnswersFile = input.AnswersFile

	backend := schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend %q", input.HistoryBackend)
	}
	if backend != schema.NoneBackend && backend != schema.SQLiteBackend && input.HistoryDBConnect == "" {
		return fmt.Errorf("history backend %q requires --history-db-connect", backend)
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect

	if input.RankFloor != "" {
		floor := schema.Rank(strings.ToUpper(input.RankFloor))
		if !validRank(floor) {
			return fmt.Errorf("invalid rank floor %q", input.RankFloor)
		}
		cfg.RankFloor = floor
	}

	cfg.ServeAddr = input.ServeAddr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}
	cfg.ChatUpstream = input.ChatUpstream
	cfg.EmailUpstream = input.EmailUpstream

	overrides, err := processLadders(input.Ladders)
	if err != nil {
		return err
	}
	cfg.StatusOverrides = overrides

	return nil
}

// processLadders merges config-file cut points over the built-in ladders.
// Only the four named families are recognized.
func processLadders(raw map[string]LadderRawInput) (map[string]schema.StatusLadder, error) {
	defaults := map[string]schema.StatusLadder{
		"default":  schema.DefaultLadder,
		"coverage": schema.CoverageLadder,
		"time":     schema.TimeLadder,
		"cost":     schema.CostLadder,
	}
	if len(raw) == 0 {
		return nil, nil
	}
	overrides := make(map[string]schema.StatusLadder)
	for name, in := range raw {
		base, ok := defaults[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown status ladder %q", name)
		}
		if in.Excellent != nil {
			base.Excellent = *in.Excellent
		}
		if in.Good != nil {
			base.Good = *in.Good
		}
		if in.Fair != nil {
			base.Fair = *in.Fair
		}
		if !(base.Excellent >= base.Good && base.Good >= base.Fair) {
			return nil, fmt.Errorf("ladder %q cut points must be non-increasing", name)
		}
		overrides[strings.ToLower(name)] = base
	}
	return overrides, nil
}

// parseBoolish interprets the yes/no/true/false/1/0 flag convention.
func parseBoolish(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "1", "on", "":
		return true
	default:
		return false
	}
}

func validRank(r schema.Rank) bool {
	for _, known := range schema.AllRanks {
		if r == known {
			return true
		}
	}
	return false
}

// RankAtLeast reports whether got is the same as or better than floor,
// where better means earlier in the S-to-F ordering.
func RankAtLeast(got, floor schema.Rank) bool {
	pos := func(r schema.Rank) int {
		for i, known := range schema.AllRanks {
			if r == known {
				return i
			}
		}
		return len(schema.AllRanks)
	}
	return pos(got) <= pos(floor)
}
