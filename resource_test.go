// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
)

func attributeValue(res *resource.Resource, key attribute.Key) (attribute.Value, bool) {
	for _, attr := range res.Attributes() {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestBuildResource(t *testing.T) {
	t.Run("will carry environment declared attributes", func(t *testing.T) {
		t.Run("if OTEL_RESOURCE_ATTRIBUTES is set", func(t *testing.T) {
			t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "service.name=my-test-service")

			res, err := buildResource(context.Background(), "", nil)
			require.NoError(t, err)

			val, ok := attributeValue(res, "service.name")
			require.True(t, ok)
			require.Equal(t, "my-test-service", val.AsString())
		})
	})

	t.Run("will set telemetry.auto.version", func(t *testing.T) {
		t.Run("if an auto version is given", func(t *testing.T) {
			res, err := buildResource(context.Background(), "test-version", nil)
			require.NoError(t, err)

			val, ok := attributeValue(res, autoVersionKey)
			require.True(t, ok)
			require.Equal(t, "test-version", val.AsString())
		})

		t.Run("if the environment declares a competing value", func(t *testing.T) {
			t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "telemetry.auto.version=env-version")

			res, err := buildResource(context.Background(), "test-version", nil)
			require.NoError(t, err)

			val, ok := attributeValue(res, autoVersionKey)
			require.True(t, ok)
			require.Equal(t, "test-version", val.AsString())
		})
	})

	t.Run("will not set telemetry.auto.version", func(t *testing.T) {
		t.Run("if no auto version is given", func(t *testing.T) {
			res, err := buildResource(context.Background(), "", nil)
			require.NoError(t, err)

			_, ok := attributeValue(res, autoVersionKey)
			require.False(t, ok)
		})
	})

	t.Run("will apply configured detectors", func(t *testing.T) {
		t.Run("if any are given", func(t *testing.T) {
			detector := resource.StringDetector("", "custom.key", func() (string, error) {
				return "custom-value", nil
			})

			res, err := buildResource(context.Background(), "", []resource.Detector{detector})
			require.NoError(t, err)

			val, ok := attributeValue(res, "custom.key")
			require.True(t, ok)
			require.Equal(t, "custom-value", val.AsString())
		})
	})
}
