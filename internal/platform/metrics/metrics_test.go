package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCounts(t *testing.T) {
	c := NewCollector()

	c.RecordRunStarted()
	c.RecordTick(10)
	c.RecordTick(15)
	c.RecordRunFinished(false, 20*time.Millisecond)

	c.RecordRunStarted()
	c.RecordRunFinished(true, 40*time.Millisecond)

	snap := c.Snapshot()
	runs := snap["runs"].(map[string]interface{})
	ticks := snap["ticks"].(map[string]interface{})

	assert.Equal(t, int64(2), runs["started"])
	assert.Equal(t, int64(1), runs["succeeded"])
	assert.Equal(t, int64(1), runs["cancelled"])
	assert.InDelta(t, 30.0, runs["avg_latency_ms"], 0.001)
	assert.InDelta(t, 40.0, runs["max_latency_ms"], 0.001)

	assert.Equal(t, int64(2), ticks["count"])
	assert.Equal(t, int64(25), ticks["hp_healed"])
	assert.NotEmpty(t, ticks["last_tick"])
}

func TestSnapshotEmpty(t *testing.T) {
	snap := NewCollector().Snapshot()
	runs := snap["runs"].(map[string]interface{})
	ticks := snap["ticks"].(map[string]interface{})

	assert.Equal(t, 0.0, runs["avg_latency_ms"])
	assert.Equal(t, "", ticks["last_tick"])
}

func TestSinkMirrorsCounters(t *testing.T) {
	c := NewCollector()
	c.RecordTick(5)
	c.RecordTick(5)

	data := c.Sink().Data()
	require.NotEmpty(t, data)

	counter, ok := data[len(data)-1].Counters["vitals.recovery.tick"]
	require.True(t, ok, "tick counter missing from sink")
	assert.Equal(t, 2, counter.Count)
}

func TestSnapshotReadsSink(t *testing.T) {
	c := NewCollector()

	// Anything written straight into the sink shows up in Snapshot.
	c.Sink().IncrCounter([]string{"vitals", "recovery", "tick"}, 1)
	c.Sink().IncrCounter([]string{"vitals", "recovery", "hp_healed"}, 7)
	c.Sink().AddSample([]string{"vitals", "recovery", "run_ms"}, 12)

	snap := c.Snapshot()
	runs := snap["runs"].(map[string]interface{})
	ticks := snap["ticks"].(map[string]interface{})

	assert.Equal(t, int64(1), ticks["count"])
	assert.Equal(t, int64(7), ticks["hp_healed"])
	assert.InDelta(t, 12.0, runs["max_latency_ms"], 0.001)
}
