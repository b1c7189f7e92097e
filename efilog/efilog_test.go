package efilog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/efifs/corefs"
	"github.com/efifs/corefs/efilog"
	"github.com/stretchr/testify/assert"
)

func TestNewFromEnv_Unset(t *testing.T) {
	var buf bytes.Buffer
	logger := efilog.NewFromEnv(&buf, "", false)

	logger.Error("should not print")
	assert.Empty(t, buf.String())
}

func TestNewFromEnv_InvalidValueFallsBackToNone(t *testing.T) {
	var buf bytes.Buffer
	logger := efilog.NewFromEnv(&buf, "not-a-number", true)

	logger.Error("should not print")
	assert.Empty(t, buf.String())
}

func TestLevelGating(t *testing.T) {
	// S10: FS_LOGLEVEL=2 (warning) logs error and warning, not debug/extra.
	var buf bytes.Buffer
	logger := efilog.NewFromEnv(&buf, "2", true)

	logger.Error("err line")
	logger.Warning("warn line")
	logger.Debug("debug line")
	logger.Extra("extra line")

	output := buf.String()
	assert.True(t, strings.Contains(output, "err line"))
	assert.True(t, strings.Contains(output, "warn line"))
	assert.False(t, strings.Contains(output, "debug line"))
	assert.False(t, strings.Contains(output, "extra line"))
}

func TestLevelExtra_LogsEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := efilog.New(&buf, efifs.LogLevelExtra)

	logger.Error("e")
	logger.Warning("w")
	logger.Info("i")
	logger.Debug("d")
	logger.Extra("x")

	output := buf.String()
	for _, want := range []string{"e", "w", "i", "d", "x"} {
		assert.True(t, strings.Contains(output, want), "expected %q in output", want)
	}
}
