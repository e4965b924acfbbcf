// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"
)

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	prefix  string
	environ func() []string
}

// EnvOption configures an Env source.
type EnvOption func(*Env)

// Prefix limits the source to environment variables whose
// name starts with the given prefix.
func Prefix(prefix string) EnvOption {
	return func(src *Env) {
		src.prefix = prefix
	}
}

// FromEnv returns a Source which will apply its config
// from the environment variables available to the
// current process.
func FromEnv(opts ...EnvOption) Env {
	src := Env{
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(&src)
	}
	return src
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	m := make(Map)
	env := src.environ()
	for _, pair := range env {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if src.prefix != "" && !strings.HasPrefix(k, src.prefix) {
			continue
		}
		m[k] = v
	}
	return m.Apply(store)
}
