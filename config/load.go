package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every environment override
const EnvPrefix = "DARTPOP_"

// Load builds the configuration in layers: defaults, the TOML file at path,
// the dotenv file at envFile, then the process environment, then validation
// Empty paths skip their layer; a missing envFile is not an error
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	dotenv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			dotenv = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("env file %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// envBinding maps one variable onto a field
type envBinding struct {
	key   string
	apply func(string) error
}

func (c *Config) envBindings() []envBinding {
	return []envBinding{
		{"LOOP_INTERVAL", setDuration(&c.Loop.Interval)},
		{"TARGETS_MAX", setInt(&c.Targets.Max)},
		{"SPAWNER_SEED", setInt64(&c.Spawner.Seed)},
		{"SENSOR_RATE", setString(&c.Sensor.Rate)},
		{"AUDIO_ENABLED", setBool(&c.Audio.Enabled)},
		{"AUDIO_VOLUME", setVolume(&c.Audio.Volume)},
		{"ASSETS_DIR", setString(&c.Assets.Dir)},
		{"INGEST_ENABLED", setBool(&c.Ingest.Enabled)},
		{"INGEST_ADDR", setString(&c.Ingest.Address)},
		{"INGEST_MAX_PEERS", setInt(&c.Ingest.MaxPeers)},
	}
}

// EnvKeys lists every recognised variable, sorted
func EnvKeys() []string {
	var keys []string
	for _, b := range Default().envBindings() {
		keys = append(keys, EnvPrefix+b.key)
	}
	slices.Sort(keys)
	return keys
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	for _, b := range c.envBindings() {
		key := EnvPrefix + b.key
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		if err := b.apply(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func setString(dst *string) func(string) error {
	return func(v string) error {
		*dst = v
		return nil
	}
}

func setBool(dst *bool) func(string) error {
	return func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst = b
		return nil
	}
}

func setInt(dst *int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func setInt64(dst *int64) func(string) error {
	return func(v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func setDuration(dst *time.Duration) func(string) error {
	return func(v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*dst = d
		return nil
	}
}

// setVolume takes 0-100 and stores 0.0-1.0, clamped
func setVolume(dst *float64) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst = max(0, min(1, float64(n)/100))
		return nil
	}
}
