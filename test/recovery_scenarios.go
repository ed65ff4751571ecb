// Package test - recovery_scenarios.go
// Acceptance suite: the three canonical recovery scenarios, run against the
// real timer so they can be executed outside `go test` by cmd/test-runner.
package test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MRamiBalles/vitals/internal/domain/health"
	"github.com/MRamiBalles/vitals/internal/engine"
	"github.com/MRamiBalles/vitals/internal/platform/logger"
	"github.com/MRamiBalles/vitals/internal/platform/metrics"
)

// RecoverySuite runs the acceptance scenarios.
type RecoverySuite struct {
	recoverer *engine.Recoverer
	metrics   *metrics.Collector
	logger    *logger.Logger
	timeout   time.Duration
	results   []TestResult
}

// TestResult captures the outcome of each scenario.
type TestResult struct {
	ScenarioName    string
	Input           string
	ExpectedOutcome engine.Outcome
	ActualOutcome   engine.Outcome
	ExpectedHP      int
	ActualHP        int
	Passed          bool
	Reason          string
}

// scenario is one row of the suite.
type scenario struct {
	name          string
	maxHP         int
	damage        int
	amountPerTick int
	interval      time.Duration
	preCancel     bool
	wantOutcome   engine.Outcome
	wantHP        int
}

var scenarios = []scenario{
	{
		name:          "A: full HP completes immediately",
		maxHP:         100,
		amountPerTick: 10,
		interval:      1000 * time.Millisecond,
		wantOutcome:   engine.OutcomeSucceeded,
		wantHP:        100,
	},
	{
		name:          "B: pre-cancelled run heals nothing",
		maxHP:         100,
		damage:        50,
		amountPerTick: 10,
		interval:      1000 * time.Millisecond,
		preCancel:     true,
		wantOutcome:   engine.OutcomeCancelled,
		wantHP:        50,
	},
	{
		name:          "C: one tick restores full HP",
		maxHP:         100,
		damage:        25,
		amountPerTick: 25,
		interval:      1 * time.Millisecond,
		wantOutcome:   engine.OutcomeSucceeded,
		wantHP:        100,
	},
}

// NewRecoverySuite creates the suite. Each scenario is bounded by timeout so a
// broken loop fails instead of hanging.
func NewRecoverySuite(log *logger.Logger, timeout time.Duration) *RecoverySuite {
	if log == nil {
		log = logger.Nop()
	}
	c := metrics.NewCollector()

	return &RecoverySuite{
		recoverer: engine.NewRecoverer(log, engine.WithMetrics(c)),
		metrics:   c,
		logger:    log,
		timeout:   timeout,
		results:   make([]TestResult, 0, len(scenarios)),
	}
}

// Run executes every scenario and reports whether all passed.
func (s *RecoverySuite) Run(ctx context.Context) bool {
	allPassed := true
	for _, sc := range scenarios {
		r := s.runScenario(ctx, sc)
		s.results = append(s.results, r)
		if !r.Passed {
			allPassed = false
		}
	}
	return allPassed
}

func (s *RecoverySuite) runScenario(parent context.Context, sc scenario) TestResult {
	result := TestResult{
		ScenarioName:    sc.name,
		Input:           fmt.Sprintf("max=%d damage=%d +%d/%s cancelled=%v", sc.maxHP, sc.damage, sc.amountPerTick, sc.interval, sc.preCancel),
		ExpectedOutcome: sc.wantOutcome,
		ExpectedHP:      sc.wantHP,
	}

	hp, err := health.NewPoints(sc.maxHP)
	if err == nil {
		err = hp.TakeDamage(sc.damage)
	}
	if err != nil {
		result.Reason = "setup failed: " + err.Error()
		return result
	}

	ctx, cancel := context.WithTimeout(parent, s.timeout)
	defer cancel()
	if sc.preCancel {
		cancel()
	}

	rec, err := s.recoverer.Start(ctx, hp, sc.amountPerTick, sc.interval)
	if err != nil {
		result.Reason = "start failed: " + err.Error()
		return result
	}

	result.ActualOutcome = rec.Wait()
	result.ActualHP = hp.Current()

	switch {
	case result.ActualOutcome != sc.wantOutcome:
		result.Reason = fmt.Sprintf("outcome %s, want %s", result.ActualOutcome, sc.wantOutcome)
	case result.ActualHP != sc.wantHP:
		result.Reason = fmt.Sprintf("HP %d, want %d", result.ActualHP, sc.wantHP)
	default:
		result.Passed = true
		result.Reason = fmt.Sprintf("%s with HP %s after %d ticks", result.ActualOutcome, hp, rec.Ticks())
	}

	if result.Passed {
		s.logger.Info("SCENARIO PASSED: " + sc.name)
	} else {
		s.logger.Error("SCENARIO FAILED: " + sc.name + " (" + result.Reason + ")")
	}
	return result
}

// GetResults returns all scenario results.
func (s *RecoverySuite) GetResults() []TestResult {
	return s.results
}

// Metrics returns the collector shared by every scenario run.
func (s *RecoverySuite) Metrics() *metrics.Collector {
	return s.metrics
}

// Report renders the results as a plain-text table.
func (s *RecoverySuite) Report() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", 60) + "\n")
	for _, r := range s.results {
		mark := "PASS"
		if !r.Passed {
			mark = "FAIL"
		}
		fmt.Fprintf(&b, "[%s] %s\n       %s\n       %s\n", mark, r.ScenarioName, r.Input, r.Reason)
	}
	b.WriteString(strings.Repeat("=", 60) + "\n")
	return b.String()
}
