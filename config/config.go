// Copyright 2025 PolyCrypt GmbH
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


// Package config loads the settings of the adjudicator demo from a .env file and the process
// environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stellar/go/keypair"
	"perun.network/go-perun/log"
)

const (
	// DirPathEnv names the variable that overrides the directory searched for the .env file.
	DirPathEnv = "PERUN_CONFIG_DIR_PATH"

	defaultDirPath = "."
)

// Config holds the demo settings.
type Config struct {
	ChallengeDuration uint64 `env:"PERUN_CHALLENGE_DURATION" env-default:"20"`
	// AdjudicatorSeed is the strkey secret seed (S...) of the adjudicator identity. A random
	// identity is used when it is empty.
	AdjudicatorSeed  string `env:"PERUN_ADJUDICATOR_SEED"`
	LogLevel         string `env:"PERUN_LOG_LEVEL" env-default:"info"`
	MetricsNamespace string `env:"PERUN_METRICS_NAMESPACE" env-default:"perun"`
}

// Load reads dir/.env, if present, and then the environment. An empty dir falls back to
// PERUN_CONFIG_DIR_PATH or the working directory.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = os.Getenv(DirPathEnv)
	}
	if dir == "" {
		dir = defaultDirPath
	}

	path := filepath.Join(dir, ".env")
	if err := godotenv.Load(path); err != nil {
		log.WithField("path", path).Warn(".env file not found")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "reading environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.ChallengeDuration == 0 {
		return errors.New("challenge duration must be positive")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.AdjudicatorSeed != "" {
		if _, err := keypair.ParseFull(c.AdjudicatorSeed); err != nil {
			return errors.Wrap(err, "parsing adjudicator seed")
		}
	}
	return nil
}

// Level parses the configured log level.
func (c *Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	return lvl, errors.Wrap(err, "parsing log level")
}

// AdjudicatorKey returns the key pair of the adjudicator identity.
func (c *Config) AdjudicatorKey() (*keypair.Full, error) {
	if c.AdjudicatorSeed == "" {
		return keypair.Random()
	}
	return keypair.ParseFull(c.AdjudicatorSeed)
}
