package app

import (
	"bytes"
	"io"
	"testing"

	"github.com/peterbourgon/ff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_help(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Short form
	err := Start(io.Discard, io.Discard, []string{"-h"})
	assert.ErrorIs(t, err, ff.ErrHelp)

	// Long form
	var stderr bytes.Buffer
	err = Start(io.Discard, &stderr, []string{"--help"})
	assert.ErrorIs(t, err, ff.ErrHelp)
	assert.Contains(t, stderr.String(), "--base-url")
}

func TestStart_version(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var stdout bytes.Buffer
	err := Start(&stdout, io.Discard, []string{"--version"})
	require.NoError(t, err)
	assert.Regexp(t, `^postie \S+\n$`, stdout.String())
}

func TestStart_invalidFixture(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := Start(io.Discard, io.Discard, []string{"--fixture", "testdata/missing.yaml"})
	assert.Error(t, err)
}
