package test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MRamiBalles/vitals/internal/engine"
)

func TestRecoverySuitePasses(t *testing.T) {
	suite := NewRecoverySuite(nil, 5*time.Second)

	ok := suite.Run(context.Background())

	results := suite.GetResults()
	require.Len(t, results, len(scenarios))
	for _, r := range results {
		assert.True(t, r.Passed, "%s: %s", r.ScenarioName, r.Reason)
	}
	assert.True(t, ok)

	runs := suite.Metrics().Snapshot()["runs"].(map[string]interface{})
	assert.Equal(t, int64(2), runs["succeeded"])
	assert.Equal(t, int64(1), runs["cancelled"])

	report := suite.Report()
	assert.Contains(t, report, "[PASS] A: full HP completes immediately")
	assert.NotContains(t, report, "[FAIL]")
}

func TestRecoverySuiteFlagsMismatch(t *testing.T) {
	suite := NewRecoverySuite(nil, time.Second)

	r := suite.runScenario(context.Background(), scenario{
		name:          "wrong expectation",
		maxHP:         10,
		damage:        5,
		amountPerTick: 5,
		interval:      time.Millisecond,
		wantOutcome:   engine.OutcomeSucceeded,
		wantHP:        7,
	})

	assert.False(t, r.Passed)
	assert.Equal(t, 10, r.ActualHP)
	assert.Contains(t, r.Reason, "HP 10, want 7")
}

func TestRecoverySuiteReportsSetupErrors(t *testing.T) {
	suite := NewRecoverySuite(nil, time.Second)

	r := suite.runScenario(context.Background(), scenario{name: "bad max", maxHP: 0})

	assert.False(t, r.Passed)
	assert.Contains(t, r.Reason, "setup failed")
}
