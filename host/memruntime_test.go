// ABOUTME: Tests for the in-memory Runtime used by tests and the simulator.
// ABOUTME: Validates participant lifecycle, activation, focus, and context store behavior.

package host

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemRuntime_ParticipantLookup(t *testing.T) {
	rt := NewMemRuntime(nil)
	rt.AddParticipant(&Participant{ID: "ext.a", Name: "Ext A", Active: true})

	info, ok := rt.Participant("ext.a")
	require.True(t, ok)
	assert.Equal(t, "Ext A", info.Name)
	assert.True(t, info.Active)

	_, ok = rt.Participant("ext.missing")
	assert.False(t, ok)
}

func TestMemRuntime_InstalledSorted(t *testing.T) {
	rt := NewMemRuntime(nil)
	rt.AddParticipant(&Participant{ID: "ext.b"})
	rt.AddParticipant(&Participant{ID: "ext.a"})
	rt.AddParticipant(&Participant{ID: "ext.c"})

	infos := rt.Installed()
	require.Len(t, infos, 3)
	assert.Equal(t, "ext.a", infos[0].ID)
	assert.Equal(t, "ext.b", infos[1].ID)
	assert.Equal(t, "ext.c", infos[2].ID)
}

func TestMemRuntime_ExportedOnlyWhenActive(t *testing.T) {
	rt := NewMemRuntime(nil)
	rt.AddParticipant(&Participant{ID: "ext.a", Exported: "api"})

	assert.Nil(t, rt.Exported("ext.a"))

	_, err := rt.Activate(context.Background(), "ext.a")
	require.NoError(t, err)
	assert.Equal(t, "api", rt.Exported("ext.a"))
}

func TestMemRuntime_ActivateUnknown(t *testing.T) {
	rt := NewMemRuntime(nil)

	_, err := rt.Activate(context.Background(), "ext.missing")
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestMemRuntime_ActivateFnFailure(t *testing.T) {
	rt := NewMemRuntime(nil)
	boom := errors.New("activation failed")
	rt.AddParticipant(&Participant{
		ID:         "ext.broken",
		ActivateFn: func(context.Context) (any, error) { return nil, boom },
	})

	_, err := rt.Activate(context.Background(), "ext.broken")
	assert.ErrorIs(t, err, boom)

	info, _ := rt.Participant("ext.broken")
	assert.False(t, info.Active, "failed activation must not mark the participant active")
}

func TestMemRuntime_ActivateFnResultBecomesExported(t *testing.T) {
	rt := NewMemRuntime(nil)
	rt.AddParticipant(&Participant{
		ID:         "ext.lazy",
		ActivateFn: func(context.Context) (any, error) { return 42, nil },
	})

	exported, err := rt.Activate(context.Background(), "ext.lazy")
	require.NoError(t, err)
	assert.Equal(t, 42, exported)
	assert.Equal(t, 42, rt.Exported("ext.lazy"))
}

func TestMemRuntime_FocusEvents(t *testing.T) {
	rt := NewMemRuntime(nil)
	ch, _ := rt.FocusChanged().Subscribe(context.Background())

	_, ok := rt.ActiveResource()
	assert.False(t, ok)

	rt.SetActiveResource("file:///x.sql")
	uri, ok := rt.ActiveResource()
	require.True(t, ok)
	assert.Equal(t, "file:///x.sql", uri)
	assert.Len(t, ch, 1)

	rt.ClearActiveResource()
	_, ok = rt.ActiveResource()
	assert.False(t, ok)
	assert.Len(t, ch, 2)
}

func TestMemRuntime_ParticipantsChangedEvents(t *testing.T) {
	rt := NewMemRuntime(nil)
	ch, _ := rt.ParticipantsChanged().Subscribe(context.Background())

	rt.AddParticipant(&Participant{ID: "ext.a"})
	rt.RemoveParticipant("ext.a")

	assert.Len(t, ch, 2)
}

func TestMemRuntime_ContextStore(t *testing.T) {
	rt := NewMemRuntime(nil)

	_, ok := rt.ContextValue("x.hide")
	assert.False(t, ok)

	require.NoError(t, rt.SetContext(context.Background(), "x.hide", true))
	v, ok := rt.ContextValue("x.hide")
	require.True(t, ok)
	assert.True(t, v)
}

func TestMemRuntime_Warnings(t *testing.T) {
	rt := NewMemRuntime(nil)
	rt.ShowWarning("owned elsewhere")

	assert.Equal(t, []string{"owned elsewhere"}, rt.Warnings())
}
