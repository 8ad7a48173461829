package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func record(name string, d time.Duration) {
	mu.Lock()
	frameTotals[name] += d
	mu.Unlock()
}

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	stop := Track("scene.Update")
	stop()
	stop2 := Track("scene.Update")
	stop2()

	ss := Snapshot()
	assert.Contains(t, ss, "scene.Update")
	assert.Len(t, ss, 1)
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	record("scene.Update", 3*time.Millisecond)
	record("scene.Render", 2*time.Millisecond)
	record("glfw.PollEvents", time.Millisecond)

	assert.Equal(t, 5*time.Millisecond, SumWithPrefix("scene."))
	assert.Equal(t, time.Millisecond, SumWithPrefix("glfw."))
	assert.Zero(t, SumWithPrefix("resource."))
}

func TestTopN(t *testing.T) {
	ResetFrame()
	record("scene.Update", 4200*time.Microsecond)
	record("scene.Render", 2100*time.Microsecond)
	record("camera.Update", 100*time.Microsecond)

	assert.Equal(t, "scene.Update:4.2ms, scene.Render:2.1ms", TopN(2))
	assert.Equal(t, "scene.Update:4.2ms, scene.Render:2.1ms, camera.Update:0.1ms", TopN(10))
}

func TestResetFrame(t *testing.T) {
	record("scene.Update", time.Millisecond)
	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Equal(t, "", TopN(3))
}
