// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextMapPropagator(t *testing.T) {
	testCases := []struct {
		name             string
		directive        string
		expectedFields   []string
		expectedWarnings int
	}{
		{
			name:           "unset defaults to tracecontext and baggage",
			directive:      "",
			expectedFields: []string{"traceparent", "tracestate", "baggage"},
		},
		{
			name:      "none disables propagation",
			directive: "none",
		},
		{
			name:           "tracecontext only",
			directive:      "tracecontext",
			expectedFields: []string{"traceparent", "tracestate"},
		},
		{
			name:           "baggage only",
			directive:      "baggage",
			expectedFields: []string{"baggage"},
		},
		{
			name:           "names are trimmed and lowercased",
			directive:      " TraceContext , baggage ",
			expectedFields: []string{"traceparent", "tracestate", "baggage"},
		},
		{
			name:             "unknown names are skipped with a warning",
			directive:        "tracecontext,b3",
			expectedFields:   []string{"traceparent", "tracestate"},
			expectedWarnings: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := &recordingHandler{}
			prop := textMapPropagator(slog.New(h), tc.directive)

			require.ElementsMatch(t, tc.expectedFields, prop.Fields())
			require.Equal(t, tc.expectedWarnings, h.len())
		})
	}
}
