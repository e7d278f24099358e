package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arena "github.com/pavanmanishd/fixedarena"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestHello(t *testing.T) {
	out := run(t, "hello")
	assert.Equal(t, "Hello world!\nused=12\nNumbers 1-3:\n1\n2\n3\nused=24 peak=24\n", out)
}

func TestAligned(t *testing.T) {
	out := run(t, "aligned")
	assert.Equal(t, "used=10\nused=22\nused=34\n", out)
}

func TestTrack(t *testing.T) {
	out := run(t, "track")
	assert.Equal(t, "#0 offset=0 length=5\n#1 offset=5 length=25\nmid-allocation lookup found=false\n", out)
}

func TestCopy(t *testing.T) {
	out := run(t, "copy", "--capacity", "64")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "src used=64 "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "dst used=32 "), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], "copied=32"), lines[1])
}

func TestServeSim(t *testing.T) {
	for _, backing := range []string{"heap", "libc"} {
		t.Run(backing, func(t *testing.T) {
			out := run(t, "serve-sim", "--backing", backing, "--requests", "20", "--workers", "3")
			assert.Contains(t, out, "requests=20 failures=0")
			assert.Contains(t, out, "arenademo_arena_pool_created_total")
		})
	}
}

func TestUnknownBacking(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"hello", "--backing", "tape"})
	assert.ErrorContains(t, cmd.Execute(), `unknown backing allocator "tape"`)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("ARENADEMO_CAPACITY", "4096")
	t.Setenv("ARENADEMO_LOG_LEVEL", "DEBUG")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"--tracking", "--alignment", "8"}))

	cfg, err := LoadConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.Capacity)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.True(t, cfg.Tracking)
	assert.Equal(t, 8, cfg.Alignment)
	assert.Equal(t, "heap", cfg.Backing)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(fs)
	require.NoError(t, fs.Parse([]string{"--capacity", "0"}))
	_, err := LoadConfig(fs)
	assert.Error(t, err)
}

func TestConfigOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tracking = true
	cfg.Alignment = arena.WordAlignment

	opts, cleanup, err := cfg.Options(NewLogger(&bytes.Buffer{}, "INFO", "json"))
	require.NoError(t, err)
	defer cleanup()

	a, err := arena.New(64, opts...)
	require.NoError(t, err)
	defer a.Release()

	assert.True(t, a.Tracking())
	require.NotNil(t, a.Alloc(1))
	require.NotNil(t, a.Alloc(1))
	recs := a.Allocations()
	require.Len(t, recs, 2)
	assert.Equal(t, 0, recs[1].Offset%arena.WordAlignment)
}
