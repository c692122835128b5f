package project

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/fpgaflow/internal/config"
)

func newProjectWithTarget(t *testing.T) *Project {
	t.Helper()
	p := New("demo")
	require.NoError(t, p.AddTarget(&config.Target{
		ID: "board", Vendor: "lattice", Family: "ecp5", Device: "25k", Package: "CABGA381",
	}))
	return p
}

func TestAddInputFile(t *testing.T) {
	p := New("demo")
	require.NoError(t, p.AddInputFile("counter.v", Design))
	require.NoError(t, p.AddInputFile("counter_tb.v", Testbench))

	err := p.AddInputFile("counter.v", Design)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateInput))

	require.Len(t, p.InputFiles, 2)
	assert.Equal(t, Testbench, p.InputFile("counter_tb.v").Type)
}

func TestRemoveAndRetypeInputFile(t *testing.T) {
	p := New("demo")
	require.NoError(t, p.AddInputFile("a.v", Design))

	require.NoError(t, p.SetInputFileType("a.v", Testbench))
	assert.Equal(t, Testbench, p.InputFile("a.v").Type)

	assert.True(t, errors.Is(p.SetInputFileType("b.v", Design), ErrUnknownInput))

	require.NoError(t, p.RemoveInputFile("a.v"))
	assert.Empty(t, p.InputFiles)
	assert.True(t, errors.Is(p.RemoveInputFile("a.v"), ErrUnknownInput))
}

func TestInputMutationsInvalidateOutputs(t *testing.T) {
	p := newProjectWithTarget(t)
	p.RegisterOutputs("board", []string{"build/board/board.json"})
	require.False(t, p.OutputFiles[0].Stale)

	require.NoError(t, p.AddInputFile("counter.v", Design))
	assert.True(t, p.OutputFiles[0].Stale, "adding an input marks outputs stale")

	p.RegisterOutputs("board", []string{"build/board/board.json"})
	assert.False(t, p.OutputFiles[0].Stale, "re-registering refreshes in place")
	assert.Len(t, p.OutputFiles, 1)

	require.NoError(t, p.UpdateConfiguration(func(c *config.ProjectConfiguration) error {
		return c.SetTopLevelModule("board", "top")
	}))
	assert.True(t, p.OutputFiles[0].Stale, "configuration change marks outputs stale")
}

func TestRemoveTargetOrphansOutputs(t *testing.T) {
	p := newProjectWithTarget(t)
	require.NoError(t, p.AddTarget(&config.Target{
		ID: "other", Vendor: "lattice", Family: "ice40", Device: "up5k", Package: "sg48",
	}))
	p.RegisterOutputs("board", []string{"build/board/a.json", "build/board/b.config"})
	p.RegisterOutputs("other", []string{"build/other/c.asc"})

	require.NoError(t, p.RemoveTarget("board"))

	assert.Nil(t, p.Configuration.Target("board"))
	require.Len(t, p.OutputFiles, 3, "output files survive target removal")
	assert.Empty(t, p.OutputFile("build/board/a.json").TargetID)
	assert.Empty(t, p.OutputFile("build/board/b.config").TargetID)
	assert.Equal(t, "other", p.OutputFile("build/other/c.asc").TargetID)

	assert.True(t, errors.Is(p.RemoveTarget("board"), config.ErrUnknownTarget))
}

func TestDuplicateTargetRejected(t *testing.T) {
	p := newProjectWithTarget(t)
	err := p.AddTarget(&config.Target{ID: "board", Vendor: "v", Family: "f", Device: "d", Package: "p"})
	require.Error(t, err)
}

func TestBatchCoalescesNotifications(t *testing.T) {
	p := newProjectWithTarget(t)

	var notifications [][]EventKind
	p.Subscribe(func(changed []EventKind) {
		notifications = append(notifications, changed)
	})

	p.Batch(func() {
		require.NoError(t, p.AddInputFile("a.v", Design))
		require.NoError(t, p.AddInputFile("b.v", Design))
		p.SetName("renamed")
		// Nested batches flush with the outermost one.
		p.Batch(func() {
			p.RegisterOutputs("board", []string{"build/board/a.json"})
		})
		assert.Empty(t, notifications, "nothing flushes before the outermost batch ends")
	})

	require.Len(t, notifications, 1)
	assert.Equal(t, []EventKind{EventInputFiles, EventName, EventOutputFiles}, notifications[0])
}

func TestUnbatchedMutationNotifiesImmediately(t *testing.T) {
	p := New("demo")

	var count int
	p.Subscribe(func([]EventKind) { count++ })

	require.NoError(t, p.AddInputFile("a.v", Design))
	assert.Equal(t, 1, count)

	p.SetName("demo") // no-op rename emits nothing
	assert.Equal(t, 1, count)
}
