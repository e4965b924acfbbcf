// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type failingStore struct {
	err error
}

func (s failingStore) Set(key string, value any) error {
	return s.err
}

func TestRead(t *testing.T) {
	t.Run("will merge sources", func(t *testing.T) {
		t.Run("if later sources override earlier ones", func(t *testing.T) {
			m, err := Read(
				Map{"OTEL_TRACES_EXPORTER": "none", "OTEL_LOGS_EXPORTER": "otlp"},
				Map{"OTEL_TRACES_EXPORTER": "otlp"},
			)
			require.NoError(t, err)

			var cfg struct {
				Traces string `config:"OTEL_TRACES_EXPORTER"`
				Logs   string `config:"OTEL_LOGS_EXPORTER"`
			}
			require.NoError(t, m.Unmarshal(&cfg))
			require.Equal(t, "otlp", cfg.Traces)
			require.Equal(t, "otlp", cfg.Logs)
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if a source fails to apply", func(t *testing.T) {
			applyErr := errors.New("apply failed")
			_, err := Read(sourceFunc(func(Store) error { return applyErr }))
			require.ErrorIs(t, err, applyErr)
		})
	})
}

type sourceFunc func(Store) error

func (f sourceFunc) Apply(store Store) error {
	return f(store)
}

func TestManager_Unmarshal(t *testing.T) {
	t.Run("will decode durations", func(t *testing.T) {
		t.Run("if the value is a duration string", func(t *testing.T) {
			m, err := Read(Map{"TIMEOUT": "5s"})
			require.NoError(t, err)

			var cfg struct {
				Timeout time.Duration `config:"TIMEOUT"`
			}
			require.NoError(t, m.Unmarshal(&cfg))
			require.Equal(t, 5*time.Second, cfg.Timeout)
		})
	})

	t.Run("will return a TypeCoercionError", func(t *testing.T) {
		t.Run("if the duration string is malformed", func(t *testing.T) {
			m, err := Read(Map{"TIMEOUT": "abc"})
			require.NoError(t, err)

			var cfg struct {
				Timeout time.Duration `config:"TIMEOUT"`
			}
			err = m.Unmarshal(&cfg)
			require.Error(t, err)

			var tce TypeCoercionError
			require.ErrorAs(t, err, &tce)
		})
	})
}

func TestEnv_Apply(t *testing.T) {
	t.Run("will apply environment variables", func(t *testing.T) {
		t.Run("if no prefix is set", func(t *testing.T) {
			src := Env{
				environ: func() []string {
					return []string{"A=1", "B=2", "malformed"}
				},
			}

			store := make(Map)
			require.NoError(t, src.Apply(store))
			require.Equal(t, Map{"A": "1", "B": "2"}, store)
		})

		t.Run("if a prefix filters unrelated variables", func(t *testing.T) {
			src := Env{
				prefix: "OTEL_",
				environ: func() []string {
					return []string{"OTEL_TRACES_EXPORTER=otlp", "HOME=/root"}
				},
			}

			store := make(Map)
			require.NoError(t, src.Apply(store))
			require.Equal(t, Map{"OTEL_TRACES_EXPORTER": "otlp"}, store)
		})
	})

	t.Run("will read the process environment", func(t *testing.T) {
		t.Run("if constructed with FromEnv", func(t *testing.T) {
			t.Setenv("OTEL_TRACES_EXPORTER", "console")

			store := make(Map)
			require.NoError(t, FromEnv(Prefix("OTEL_")).Apply(store))
			require.Equal(t, "console", store["OTEL_TRACES_EXPORTER"])
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the store rejects a key", func(t *testing.T) {
			setErr := errors.New("set failed")
			src := Env{
				environ: func() []string {
					return []string{"A=1"}
				},
			}
			require.ErrorIs(t, src.Apply(failingStore{err: setErr}), setErr)
		})
	})
}
