package solver

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Viper keys recognized by the config loader. Values absent from the
// source fall back to DefaultConfig.
const (
	keyStrategy        = "strategy"
	keyValueRepr       = "valueRepr"
	keyUseHeuristic    = "useHeuristic"
	keyTargetPrecision = "targetPrecision"
	keyMaxWallSeconds  = "maxWallSeconds"
	keySeed            = "seed"
	keyMaxTrialDepth   = "maxTrialDepth"
	keyHDPLowerBound   = "hdpLowerBound"
	keyDebugChecks     = "debugChecks"
	keyMinOrder        = "minOrder"
	keyMaxOrder        = "maxOrder"
	keyTicksPerOrder   = "ticksPerOrder"
)

// envPrefix namespaces environment overrides: ZMDP_STRATEGY,
// ZMDP_TARGETPRECISION, and so on.
const envPrefix = "zmdp"

// LoadConfig reads a solver Config from the file at path (any format
// viper understands by extension: yaml, json, toml, ...), with
// environment variables overriding file values. Missing keys keep
// their DefaultConfig values; the result is validated before return.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("solver: reading config %q: %w", path, err)
	}

	return LoadConfigFromViper(v)
}

// LoadConfigFromViper assembles a Config from an already-populated
// viper instance. Callers that compose configuration from several
// sources (flags, files, remote stores) bind them into v first.
func LoadConfigFromViper(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault(keyStrategy, cfg.Strategy.String())
	v.SetDefault(keyValueRepr, cfg.ValueRepr.String())
	v.SetDefault(keyUseHeuristic, cfg.UseHeuristic)
	v.SetDefault(keyTargetPrecision, cfg.TargetPrecision)
	v.SetDefault(keyMaxWallSeconds, cfg.MaxWallSeconds)
	v.SetDefault(keySeed, cfg.Seed)
	v.SetDefault(keyMaxTrialDepth, cfg.MaxTrialDepth)
	v.SetDefault(keyHDPLowerBound, cfg.HDPLowerBound)
	v.SetDefault(keyDebugChecks, cfg.DebugChecks)
	v.SetDefault(keyMinOrder, cfg.MinOrder)
	v.SetDefault(keyMaxOrder, cfg.MaxOrder)
	v.SetDefault(keyTicksPerOrder, cfg.TicksPerOrder)

	var err error
	if cfg.Strategy, err = ParseStrategy(strings.ToLower(v.GetString(keyStrategy))); err != nil {
		return Config{}, err
	}
	if cfg.ValueRepr, err = ParseValueRepr(strings.ToLower(v.GetString(keyValueRepr))); err != nil {
		return Config{}, err
	}
	cfg.UseHeuristic = v.GetBool(keyUseHeuristic)
	cfg.TargetPrecision = v.GetFloat64(keyTargetPrecision)
	cfg.MaxWallSeconds = v.GetFloat64(keyMaxWallSeconds)
	cfg.Seed = v.GetInt64(keySeed)
	cfg.MaxTrialDepth = v.GetInt(keyMaxTrialDepth)
	cfg.HDPLowerBound = v.GetBool(keyHDPLowerBound)
	cfg.DebugChecks = v.GetBool(keyDebugChecks)
	cfg.MinOrder = v.GetInt(keyMinOrder)
	cfg.MaxOrder = v.GetInt(keyMaxOrder)
	cfg.TicksPerOrder = v.GetInt(keyTicksPerOrder)

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
