package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorSampler(t *testing.T) {
	sampler := NewErrorSampler(10)

	assert.True(t, sampler.ShouldLog("upstream_429"), "first occurrence should be logged")
	for i := 2; i <= 9; i++ {
		assert.False(t, sampler.ShouldLog("upstream_429"), "occurrence %d should be sampled out", i)
	}
	assert.True(t, sampler.ShouldLog("upstream_429"), "10th occurrence should be logged")
	assert.Equal(t, 10, sampler.Count("upstream_429"))

	sampler.Reset("upstream_429")
	assert.Equal(t, 0, sampler.Count("upstream_429"))
	assert.True(t, sampler.ShouldLog("upstream_429"), "first occurrence after reset should be logged")
}

func TestErrorSamplerMultipleKeys(t *testing.T) {
	sampler := NewErrorSampler(5)

	assert.True(t, sampler.ShouldLog("network"))
	assert.True(t, sampler.ShouldLog("upstream_500"))
	assert.False(t, sampler.ShouldLog("network"))
	assert.Equal(t, 2, sampler.Count("network"))
	assert.Equal(t, 1, sampler.Count("upstream_500"))
}

func TestErrorSamplerDefaultInterval(t *testing.T) {
	sampler := NewErrorSampler(0)
	assert.Equal(t, 10, sampler.interval)
}

func TestErrorSamplerError(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	sampler := NewErrorSampler(3)
	for i := 0; i < 3; i++ {
		sampler.Error(context.Background(), "network", "Search request failed", "query", "cats")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "occurrences=1")
	assert.Contains(t, lines[1], "occurrences=3")
	assert.Contains(t, lines[1], "query=cats")
}
