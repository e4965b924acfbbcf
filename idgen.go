// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package autotel

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func init() {
	defaultRegistry.RegisterIDGenerator("random", RandomIDGenerator)
}

// RandomIDGenerator is the Factory behind the default "random" id generator
// plugin. Each call returns an independently seeded generator.
func RandomIDGenerator(ctx context.Context) (sdktrace.IDGenerator, error) {
	var seed [32]byte
	_, err := crand.Read(seed[:])
	if err != nil {
		return nil, err
	}
	return &randomIDGenerator{
		rand: rand.New(rand.NewChaCha8(seed)),
	}, nil
}

type randomIDGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewIDs implements the sdktrace.IDGenerator interface.
func (g *randomIDGenerator) NewIDs(ctx context.Context) (trace.TraceID, trace.SpanID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var tid trace.TraceID
	for !tid.IsValid() {
		binary.NativeEndian.PutUint64(tid[:8], g.rand.Uint64())
		binary.NativeEndian.PutUint64(tid[8:], g.rand.Uint64())
	}
	return tid, g.newSpanID()
}

// NewSpanID implements the sdktrace.IDGenerator interface.
func (g *randomIDGenerator) NewSpanID(ctx context.Context, traceID trace.TraceID) trace.SpanID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.newSpanID()
}

func (g *randomIDGenerator) newSpanID() trace.SpanID {
	var sid trace.SpanID
	for !sid.IsValid() {
		binary.NativeEndian.PutUint64(sid[:], g.rand.Uint64())
	}
	return sid
}
