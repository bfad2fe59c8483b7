package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderSchema_Identity(t *testing.T) {
	t.Parallel()

	provider := NewProviderSchema("{11111111-2222-3333-4444-555555555555}", "Test-Provider")

	assert.Equal(t, "{11111111-2222-3333-4444-555555555555}", provider.ID())
	assert.Equal(t, "Test-Provider", provider.Name())
	assert.Empty(t, provider.Events())
	assert.Equal(t, 0, provider.EventCount())
}

func TestProviderSchema_AssignEventsOnce(t *testing.T) {
	t.Parallel()

	provider := NewProviderSchema("id", "name")
	events := []*EventSchema{
		NewEventSchema(EventConfig{ID: 1, Symbol: "First"}),
		NewEventSchema(EventConfig{ID: 2, Symbol: "Second"}),
	}

	require.NoError(t, provider.AssignEvents(events))
	require.ErrorIs(t, provider.AssignEvents(nil), ErrEventsAlreadyAssigned)

	got := provider.Events()
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID())
	assert.Equal(t, 2, got[1].ID())

	// The second assignment must not have cleared the sequence.
	assert.Equal(t, 2, provider.EventCount())
}

func TestProviderSchema_AssignEventsLinksBackReference(t *testing.T) {
	t.Parallel()

	provider := NewProviderSchema("id", "name")
	event := NewEventSchema(EventConfig{ID: 7})

	require.Nil(t, event.Provider())
	require.NoError(t, provider.AssignEvents([]*EventSchema{event}))
	assert.Same(t, provider, event.Provider())
}

func TestProviderSchema_EventsReturnsCopy(t *testing.T) {
	t.Parallel()

	provider := NewProviderSchema("id", "name")
	require.NoError(t, provider.AssignEvents([]*EventSchema{
		NewEventSchema(EventConfig{ID: 1}),
	}))

	events := provider.Events()
	events[0] = nil

	require.NotNil(t, provider.Events()[0])
}

func TestEventSchema_Accessors(t *testing.T) {
	t.Parallel()

	event := NewEventSchema(EventConfig{
		ID:       42,
		Symbol:   "RequestStart",
		Level:    LevelInformational,
		TaskName: "Request",
		TaskID:   3,
		Keywords: 0x5,
		Opcode:   OpcodeStart,
		Version:  2,
		Payload:  []string{"url", "status"},
	})

	assert.Equal(t, 42, event.ID())
	assert.Equal(t, "RequestStart", event.Symbol())
	assert.Equal(t, LevelInformational, event.Level())
	assert.Equal(t, "Request", event.TaskName())
	assert.Equal(t, 3, event.TaskID())
	assert.True(t, event.HasTask())
	assert.Equal(t, uint64(0x5), event.Keywords())
	assert.Equal(t, OpcodeStart, event.Opcode())
	assert.Equal(t, 2, event.Version())
	assert.Equal(t, []string{"url", "status"}, event.Payload())
}

func TestEventSchema_Defaults(t *testing.T) {
	t.Parallel()

	event := NewEventSchema(EventConfig{ID: 1})

	assert.Equal(t, LevelLogAlways, event.Level())
	assert.Equal(t, OpcodeInfo, event.Opcode())
	assert.False(t, event.HasTask())
	assert.Zero(t, event.TaskID())
	assert.Zero(t, event.Keywords())
	assert.Zero(t, event.Version())
	assert.Empty(t, event.Payload())
}

func TestEventSchema_PayloadDetachedFromConfig(t *testing.T) {
	t.Parallel()

	fields := []string{"a", "b"}
	event := NewEventSchema(EventConfig{ID: 1, Payload: fields})

	fields[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, event.Payload())

	payload := event.Payload()
	payload[1] = "mutated"
	assert.Equal(t, []string{"a", "b"}, event.Payload())
}

func TestLevel_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level Level
		want  string
	}{
		{LevelLogAlways, "LogAlways"},
		{LevelCritical, "Critical"},
		{LevelError, "Error"},
		{LevelWarning, "Warning"},
		{LevelInformational, "Informational"},
		{LevelVerbose, "Verbose"},
		{Level(99), "level(99)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestLevel_IsDefined(t *testing.T) {
	t.Parallel()

	assert.True(t, LevelLogAlways.IsDefined())
	assert.True(t, LevelVerbose.IsDefined())
	assert.False(t, Level(-1).IsDefined())
	assert.False(t, Level(6).IsDefined())
}

func TestOpcode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Info", OpcodeInfo.String())
	assert.Equal(t, "DataCollectionStart", OpcodeDataCollectionStart.String())
	assert.Equal(t, "Receive", OpcodeReceive.String())
	assert.Equal(t, "opcode(11)", Opcode(11).String())
}

func TestOpcode_IsWellKnown(t *testing.T) {
	t.Parallel()

	assert.True(t, OpcodeStart.IsWellKnown())
	assert.True(t, OpcodeReceive.IsWellKnown())
	assert.False(t, Opcode(11).IsWellKnown())
	assert.False(t, Opcode(-1).IsWellKnown())
}
