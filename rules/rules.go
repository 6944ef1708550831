// Package rules implements C8: the configuration record spec 4.8
// describes, loaded the way the teacher loads its own app config
// (common/config/fixed_config.go: viper + fsnotify hot-reload,
// mapstructure tags) and round-tripped to YAML via yaml.v3 for the
// standalone (non-viper) Marshal/Unmarshal path other packages and
// tests use directly.
package rules

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"riichi/yaku"
)

// RedFiveCounts is how many red fives (aka-dora) each numbered suit
// carries; 0 disables red fives for that suit entirely.
type RedFiveCounts struct {
	Man int `mapstructure:"m" yaml:"m"`
	Pin int `mapstructure:"p" yaml:"p"`
	Sou int `mapstructure:"s" yaml:"s"`
}

// RuleSet is every documented option from spec 4.8, one field per rule.
type RuleSet struct {
	OriginPoints int       `mapstructure:"origin_points" yaml:"origin_points"`
	RankPoints   []float64 `mapstructure:"rank_points" yaml:"rank_points"`
	RedFives     RedFiveCounts `mapstructure:"red_fives" yaml:"red_fives"`

	KuitanEnabled bool `mapstructure:"kuitan_enabled" yaml:"kuitan_enabled"`
	KuikaeLevel   int  `mapstructure:"kuikae_level" yaml:"kuikae_level"` // 0 none, 1 suji, 2 genbutsu
	GameCount     int  `mapstructure:"game_count" yaml:"game_count"`     // 0 one-hand, 1 east, 2 east-south, 4 full

	InterruptedDrawsEnabled bool `mapstructure:"interrupted_draws_enabled" yaml:"interrupted_draws_enabled"`
	NagashiManganEnabled    bool `mapstructure:"nagashi_mangan_enabled" yaml:"nagashi_mangan_enabled"`
	NotenDeclarationEnabled bool `mapstructure:"noten_declaration_enabled" yaml:"noten_declaration_enabled"`
	NotenPenaltyEnabled     bool `mapstructure:"noten_penalty_enabled" yaml:"noten_penalty_enabled"`

	MaxSimultaneousWin int `mapstructure:"max_simultaneous_win" yaml:"max_simultaneous_win"` // 1..3
	ConsecutiveMode    int `mapstructure:"consecutive_mode" yaml:"consecutive_mode"`          // 0..3
	BustEndsGame       bool `mapstructure:"bust_ends_game" yaml:"bust_ends_game"`
	OrasStopEnabled    bool `mapstructure:"oras_stop_enabled" yaml:"oras_stop_enabled"`
	ExtensionMode      int  `mapstructure:"extension_mode" yaml:"extension_mode"` // 0..3

	IppatsuEnabled bool `mapstructure:"ippatsu_enabled" yaml:"ippatsu_enabled"`
	UraDoraEnabled bool `mapstructure:"ura_dora_enabled" yaml:"ura_dora_enabled"`
	KanDoraEnabled bool `mapstructure:"kan_dora_enabled" yaml:"kan_dora_enabled"`
	KanUraEnabled  bool `mapstructure:"kan_ura_enabled" yaml:"kan_ura_enabled"`
	KanDoraDelayed bool `mapstructure:"kan_dora_delayed" yaml:"kan_dora_delayed"`

	RiichiWithoutTsumo    bool `mapstructure:"riichi_without_tsumo" yaml:"riichi_without_tsumo"`
	AnkanAfterRiichiLevel int  `mapstructure:"ankan_after_riichi_level" yaml:"ankan_after_riichi_level"` // 0..2

	YakumanCompositionEnabled bool `mapstructure:"yakuman_composition_enabled" yaml:"yakuman_composition_enabled"`
	DoubleYakumanEnabled      bool `mapstructure:"double_yakuman_enabled" yaml:"double_yakuman_enabled"`
	CountedYakumanEnabled     bool `mapstructure:"counted_yakuman_enabled" yaml:"counted_yakuman_enabled"`
	YakumanPaoEnabled         bool `mapstructure:"yakuman_pao_enabled" yaml:"yakuman_pao_enabled"`
	RoundUpMangan             bool `mapstructure:"round_up_mangan" yaml:"round_up_mangan"`
}

// Default returns spec 4.8's parenthesized defaults.
func Default() RuleSet {
	return RuleSet{
		OriginPoints: 25000,
		RankPoints:   []float64{20.0, 10.0, -10.0, -20.0},
		RedFives:     RedFiveCounts{Man: 1, Pin: 1, Sou: 1},

		KuitanEnabled: true,
		KuikaeLevel:   0,
		GameCount:     2,

		InterruptedDrawsEnabled: true,
		NagashiManganEnabled:    true,
		NotenDeclarationEnabled: false,
		NotenPenaltyEnabled:     true,

		MaxSimultaneousWin: 2,
		ConsecutiveMode:    2,
		BustEndsGame:       true,
		OrasStopEnabled:    true,
		ExtensionMode:      1,

		IppatsuEnabled: true,
		UraDoraEnabled: true,
		KanDoraEnabled: true,
		KanUraEnabled:  true,
		KanDoraDelayed: true,

		RiichiWithoutTsumo:    false,
		AnkanAfterRiichiLevel: 2,

		YakumanCompositionEnabled: true,
		DoubleYakumanEnabled:      true,
		CountedYakumanEnabled:     true,
		YakumanPaoEnabled:         true,
		RoundUpMangan:             false,
	}
}

// Validate rejects an out-of-range enum field; numeric point/count fields
// are left unchecked since the spec places no bound on them beyond type.
func (r RuleSet) Validate() error {
	if r.KuikaeLevel < 0 || r.KuikaeLevel > 2 {
		return fmt.Errorf("rules: kuikae_level must be 0..2, got %d", r.KuikaeLevel)
	}
	if r.GameCount != 0 && r.GameCount != 1 && r.GameCount != 2 && r.GameCount != 4 {
		return fmt.Errorf("rules: game_count must be one of 0,1,2,4, got %d", r.GameCount)
	}
	if r.MaxSimultaneousWin < 1 || r.MaxSimultaneousWin > 3 {
		return fmt.Errorf("rules: max_simultaneous_win must be 1..3, got %d", r.MaxSimultaneousWin)
	}
	if r.ConsecutiveMode < 0 || r.ConsecutiveMode > 3 {
		return fmt.Errorf("rules: consecutive_mode must be 0..3, got %d", r.ConsecutiveMode)
	}
	if r.ExtensionMode < 0 || r.ExtensionMode > 3 {
		return fmt.Errorf("rules: extension_mode must be 0..3, got %d", r.ExtensionMode)
	}
	if r.AnkanAfterRiichiLevel < 0 || r.AnkanAfterRiichiLevel > 2 {
		return fmt.Errorf("rules: ankan_after_riichi_level must be 0..2, got %d", r.AnkanAfterRiichiLevel)
	}
	return nil
}

// ForbidKuikaeStrict maps the 3-valued kuikae_level onto hand.LegalChi's
// single strictness bool (see DESIGN.md's Open Question resolution):
// genbutsu is always forbidden; level 0 (none) additionally forbids the
// suji-swap tile.
func (r RuleSet) ForbidKuikaeStrict() bool { return r.KuikaeLevel <= 0 }

// ToYakuOptions projects the scoring-relevant subset onto yaku.Options,
// keeping the yaku package free of a dependency on rules (which would
// otherwise need to import the decomposition/scoring types right back).
func (r RuleSet) ToYakuOptions() yaku.Options {
	return yaku.Options{
		KuitanEnabled:             r.KuitanEnabled,
		YakumanCompositionEnabled: r.YakumanCompositionEnabled,
		DoubleYakumanEnabled:      r.DoubleYakumanEnabled,
		CountedYakumanEnabled:     r.CountedYakumanEnabled,
		YakumanPaoEnabled:         r.YakumanPaoEnabled,
		RoundUpMangan:             r.RoundUpMangan,
	}
}

// MarshalYAML, ToYAML and ParseYAML round-trip a RuleSet through yaml.v3
// tags directly (no viper involved) for callers that just need to persist
// or load a rule file without the hot-reload machinery below.
func (r RuleSet) MarshalYAML() (interface{}, error) {
	type plain RuleSet
	return plain(r), nil
}

func ParseYAML(data []byte) (RuleSet, error) {
	r := Default()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return RuleSet{}, fmt.Errorf("rules: parse yaml: %w", err)
	}
	if err := r.Validate(); err != nil {
		return RuleSet{}, err
	}
	return r, nil
}

func (r RuleSet) ToYAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// Loader wraps a viper instance watching one rule file on disk, grounded
// on common/config/fixed_config.go's InitConfig: ReadInConfig once, then
// WatchConfig+OnConfigChange to push updates through onChange as they
// land, rather than the teacher's pattern of mutating a package-level
// global (Conf) — every caller here gets an explicit *RuleSet snapshot.
type Loader struct {
	v   *viper.Viper
	set RuleSet
}

// NewLoader reads configFile into a RuleSet (defaults first, then
// overridden by whatever keys the file sets), validating before return.
func NewLoader(configFile string) (*Loader, error) {
	v := viper.New()
	v.SetConfigFile(configFile)

	def := Default()
	setViperDefaults(v, def)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("rules: read config: %w", err)
	}

	var rs RuleSet
	if err := v.Unmarshal(&rs); err != nil {
		return nil, fmt.Errorf("rules: unmarshal config: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &Loader{v: v, set: rs}, nil
}

// Current returns the most recently loaded RuleSet.
func (l *Loader) Current() RuleSet { return l.set }

// Watch begins hot-reloading the underlying file, invoking onChange with
// each successfully parsed and validated RuleSet. A reload that fails
// validation is dropped (the previous RuleSet stays current) rather than
// propagated, since an in-flight round should never be handed a broken
// config mid-hand.
func (l *Loader) Watch(onChange func(RuleSet)) {
	l.v.WatchConfig()
	l.v.OnConfigChange(func(_ fsnotify.Event) {
		var rs RuleSet
		if err := l.v.Unmarshal(&rs); err != nil {
			return
		}
		if err := rs.Validate(); err != nil {
			return
		}
		l.set = rs
		onChange(rs)
	})
}

func setViperDefaults(v *viper.Viper, d RuleSet) {
	v.SetDefault("origin_points", d.OriginPoints)
	v.SetDefault("rank_points", d.RankPoints)
	v.SetDefault("red_fives.m", d.RedFives.Man)
	v.SetDefault("red_fives.p", d.RedFives.Pin)
	v.SetDefault("red_fives.s", d.RedFives.Sou)
	v.SetDefault("kuitan_enabled", d.KuitanEnabled)
	v.SetDefault("kuikae_level", d.KuikaeLevel)
	v.SetDefault("game_count", d.GameCount)
	v.SetDefault("interrupted_draws_enabled", d.InterruptedDrawsEnabled)
	v.SetDefault("nagashi_mangan_enabled", d.NagashiManganEnabled)
	v.SetDefault("noten_declaration_enabled", d.NotenDeclarationEnabled)
	v.SetDefault("noten_penalty_enabled", d.NotenPenaltyEnabled)
	v.SetDefault("max_simultaneous_win", d.MaxSimultaneousWin)
	v.SetDefault("consecutive_mode", d.ConsecutiveMode)
	v.SetDefault("bust_ends_game", d.BustEndsGame)
	v.SetDefault("oras_stop_enabled", d.OrasStopEnabled)
	v.SetDefault("extension_mode", d.ExtensionMode)
	v.SetDefault("ippatsu_enabled", d.IppatsuEnabled)
	v.SetDefault("ura_dora_enabled", d.UraDoraEnabled)
	v.SetDefault("kan_dora_enabled", d.KanDoraEnabled)
	v.SetDefault("kan_ura_enabled", d.KanUraEnabled)
	v.SetDefault("kan_dora_delayed", d.KanDoraDelayed)
	v.SetDefault("riichi_without_tsumo", d.RiichiWithoutTsumo)
	v.SetDefault("ankan_after_riichi_level", d.AnkanAfterRiichiLevel)
	v.SetDefault("yakuman_composition_enabled", d.YakumanCompositionEnabled)
	v.SetDefault("double_yakuman_enabled", d.DoubleYakumanEnabled)
	v.SetDefault("counted_yakuman_enabled", d.CountedYakumanEnabled)
	v.SetDefault("yakuman_pao_enabled", d.YakumanPaoEnabled)
	v.SetDefault("round_up_mangan", d.RoundUpMangan)
}
