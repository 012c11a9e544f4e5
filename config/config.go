//  Copyright (c) 2025 the Symflow authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config defines the checker configuration: one selector per
// diagnostic family. The configuration is an immutable value handed to the
// checker at construction; it is never mutated afterwards. Disabling a
// selector suppresses only the corresponding reports. Nullability propagation
// is unconditional, so downstream checks keep seeing accurate tracked state
// no matter which diagnostics are enabled.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the checker configuration.
type Config struct {
	Checks ChecksConfig `toml:"checks"`
}

// ChecksConfig enables or disables each diagnostic family.
type ChecksConfig struct {
	NullPassedToNonnull         bool `toml:"null_passed_to_nonnull"`
	NullReturnedFromNonnull     bool `toml:"null_returned_from_nonnull"`
	NullableDereferenced        bool `toml:"nullable_dereferenced"`
	NullablePassedToNonnull     bool `toml:"nullable_passed_to_nonnull"`
	NullableReturnedFromNonnull bool `toml:"nullable_returned_from_nonnull"`
}

var defaultConfig = Config{
	Checks: ChecksConfig{
		NullPassedToNonnull:         true,
		NullReturnedFromNonnull:     true,
		NullableDereferenced:        true,
		NullablePassedToNonnull:     true,
		NullableReturnedFromNonnull: true,
	},
}

// Default returns the configuration with every check enabled.
func Default() Config {
	return defaultConfig
}

type config struct {
	cfg  Config
	meta toml.MetaData
}

// Merge overlays ocfg on cfg, taking only the keys ocfg explicitly defines.
func (cfg config) Merge(ocfg config) config {
	overlay := func(key string, dst *bool, src bool) {
		if ocfg.meta.IsDefined("checks", key) {
			*dst = src
		}
	}
	overlay("null_passed_to_nonnull", &cfg.cfg.Checks.NullPassedToNonnull, ocfg.cfg.Checks.NullPassedToNonnull)
	overlay("null_returned_from_nonnull", &cfg.cfg.Checks.NullReturnedFromNonnull, ocfg.cfg.Checks.NullReturnedFromNonnull)
	overlay("nullable_dereferenced", &cfg.cfg.Checks.NullableDereferenced, ocfg.cfg.Checks.NullableDereferenced)
	overlay("nullable_passed_to_nonnull", &cfg.cfg.Checks.NullablePassedToNonnull, ocfg.cfg.Checks.NullablePassedToNonnull)
	overlay("nullable_returned_from_nonnull", &cfg.cfg.Checks.NullableReturnedFromNonnull, ocfg.cfg.Checks.NullableReturnedFromNonnull)
	return cfg
}

func parseConfigs(dir string) ([]config, error) {
	var out []config

	for dir != "" {
		f, err := os.Open(filepath.Join(dir, ConfigName))
		if os.IsNotExist(err) {
			ndir := filepath.Dir(dir)
			if ndir == dir {
				break
			}
			dir = ndir
			continue
		}
		if err != nil {
			return nil, err
		}
		var cfg Config
		meta, err := toml.NewDecoder(f).Decode(&cfg)
		f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, config{cfg, meta})
		ndir := filepath.Dir(dir)
		if ndir == dir {
			break
		}
		dir = ndir
	}
	out = append(out, config{
		cfg:  defaultConfig,
		meta: toml.MetaData{}, // meta of the base config is never accessed
	})
	// Reverse so the default comes first and the most specific file wins.
	for i := 0; i < len(out)/2; i++ {
		out[i], out[len(out)-1-i] = out[len(out)-1-i], out[i]
	}
	return out, nil
}

// Load reads the configuration for code rooted at dir: every ConfigName
// file from dir upward is parsed, and closer files override farther ones
// key by key, on top of the defaults.
func Load(dir string) (Config, error) {
	confs, err := parseConfigs(dir)
	if err != nil {
		return Config{}, err
	}
	conf := confs[0]
	for _, oconf := range confs[1:] {
		conf = conf.Merge(oconf)
	}
	return conf.cfg, nil
}
