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


package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"

	"perun.network/perun-adjudicator/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, uint64(20), cfg.ChallengeDuration)
	require.Equal(t, "perun", cfg.MetricsNamespace)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, logrus.InfoLevel, lvl)

	kp, err := cfg.AdjudicatorKey()
	require.NoError(t, err)
	require.NotEmpty(t, kp.Address())
}

func TestLoadEnvironment(t *testing.T) {
	kp, err := keypair.Random()
	require.NoError(t, err)
	t.Setenv("PERUN_CHALLENGE_DURATION", "60")
	t.Setenv("PERUN_ADJUDICATOR_SEED", kp.Seed())
	t.Setenv("PERUN_LOG_LEVEL", "debug")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, uint64(60), cfg.ChallengeDuration)

	got, err := cfg.AdjudicatorKey()
	require.NoError(t, err)
	require.Equal(t, kp.Address(), got.Address())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PERUN_METRICS_NAMESPACE=dotenv_ns\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PERUN_METRICS_NAMESPACE") })

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.Equal(t, "dotenv_ns", cfg.MetricsNamespace)
}

func TestValidate(t *testing.T) {
	valid := config.Config{ChallengeDuration: 1, LogLevel: "warn"}
	require.NoError(t, valid.Validate())

	zero := valid
	zero.ChallengeDuration = 0
	require.Error(t, zero.Validate())

	badLevel := valid
	badLevel.LogLevel = "loud"
	require.Error(t, badLevel.Validate())

	badSeed := valid
	badSeed.AdjudicatorSeed = "not-a-seed"
	require.Error(t, badSeed.Validate())
}
