package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestSimulationRecoversToFull(t *testing.T) {
	out, err := execute(t, "--max", "100", "--damage", "25", "--amount", "25", "--interval", "1", "--timeout", "5000")
	require.NoError(t, err)
	assert.Contains(t, out, "outcome=SUCCEEDED hp=100/100 ticks=1")
}

func TestSimulationTimesOut(t *testing.T) {
	out, err := execute(t, "--max", "100", "--damage", "50", "--amount", "10", "--interval", "60000", "--timeout", "10")
	require.NoError(t, err, "a cancelled recovery is not a failure")
	assert.Contains(t, out, "outcome=CANCELLED hp=50/100 ticks=0")
}

func TestSimulationRejectsInvalidFlags(t *testing.T) {
	_, err := execute(t, "--max", "0")
	assert.ErrorContains(t, err, "VITALS_MAX_HP")

	_, err = execute(t, "--amount=-5")
	assert.ErrorContains(t, err, "VITALS_AMOUNT_PER_TICK")
}

func TestSimulationFlagsOverrideInvalidEnv(t *testing.T) {
	t.Setenv("VITALS_MAX_HP", "0")

	out, err := execute(t, "--max", "100", "--damage", "0", "--interval", "60000")
	require.NoError(t, err, "--max must win over the environment before validation")
	assert.Contains(t, out, "outcome=SUCCEEDED hp=100/100 ticks=0")
}

func TestSimulationFullHPNeedsNoTicks(t *testing.T) {
	out, err := execute(t, "--damage", "0", "--interval", "60000")
	require.NoError(t, err)
	assert.Contains(t, out, "outcome=SUCCEEDED hp=100/100 ticks=0")
}
