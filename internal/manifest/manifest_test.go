package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/schema"
)

// sampleManifest exercises every sub-vocabulary: tasks, custom opcodes,
// keywords, templates, and the event identifier filter.
const sampleManifest = `<?xml version="1.0" encoding="utf-8"?>
<instrumentationManifest xmlns="http://schemas.microsoft.com/win/2004/08/events">
  <instrumentation>
    <events>
      <provider guid="{d113b79c-1e3c-4d02-9ffb-566b2e2d1a2f}" name="Company-Product-Component">
        <tasks>
          <task name="Request" value="1"/>
          <task name="Session" value="2"/>
        </tasks>
        <opcodes>
          <opcode name="Enqueue" value="11"/>
        </opcodes>
        <keywords>
          <keyword name="odd" mask="0x1"/>
          <keyword name="even" mask="0x2"/>
        </keywords>
        <templates>
          <template tid="RequestArgs">
            <data name="url" inType="win:UnicodeString"/>
            <data name="method" inType="win:UnicodeString"/>
            <data name="status" inType="win:Int32"/>
          </template>
        </templates>
        <events>
          <event value="0" symbol="Placeholder"/>
          <event value="-3" symbol="Internal"/>
          <event value="1" symbol="RequestStart" level="win:Informational" task="Request"
                 opcode="win:Start" keywords="odd even" version="2" template="RequestArgs"/>
          <event value="2" symbol="RequestStop" level="win:Informational" task="Request" opcode="win:Stop"/>
          <event value="3" symbol="Queued" level="win:Verbose" opcode="Enqueue" keywords="odd"/>
          <event value="4" symbol="Oddball" level="win:Bogus" opcode="win:Bogus" task="Missing" keywords="neither nor"/>
        </events>
      </provider>
    </events>
  </instrumentation>
</instrumentationManifest>`

func TestRead_ProviderIdentity(t *testing.T) {
	t.Parallel()

	provider, err := Read(sampleManifest)
	require.NoError(t, err)

	assert.Equal(t, "{d113b79c-1e3c-4d02-9ffb-566b2e2d1a2f}", provider.ID())
	assert.Equal(t, "Company-Product-Component", provider.Name())
}

func TestRead_FiltersNonPositiveIdentifiers(t *testing.T) {
	t.Parallel()

	provider, err := Read(sampleManifest)
	require.NoError(t, err)

	events := provider.Events()
	require.Len(t, events, 4)

	for _, event := range events {
		assert.Positive(t, event.ID())
	}

	// Document order is preserved for the surviving entries.
	assert.Equal(t, []int{1, 2, 3, 4}, []int{events[0].ID(), events[1].ID(), events[2].ID(), events[3].ID()})
}

func TestRead_EventResolution(t *testing.T) {
	t.Parallel()

	provider, err := Read(sampleManifest)
	require.NoError(t, err)

	events := provider.Events()
	require.Len(t, events, 4)

	start := events[0]
	assert.Equal(t, "RequestStart", start.Symbol())
	assert.Equal(t, schema.LevelInformational, start.Level())
	assert.Equal(t, "Request", start.TaskName())
	assert.Equal(t, 1, start.TaskID())
	assert.Equal(t, uint64(0x3), start.Keywords())
	assert.Equal(t, schema.OpcodeStart, start.Opcode())
	assert.Equal(t, 2, start.Version())
	assert.Equal(t, []string{"url", "method", "status"}, start.Payload())
	assert.Same(t, provider, start.Provider())

	stop := events[1]
	assert.Equal(t, schema.OpcodeStop, stop.Opcode())
	assert.Zero(t, stop.Keywords())
	assert.Zero(t, stop.Version())
	assert.Empty(t, stop.Payload())
}

func TestRead_CustomOpcodeLookup(t *testing.T) {
	t.Parallel()

	provider, err := Read(sampleManifest)
	require.NoError(t, err)

	queued := provider.Events()[2]
	assert.Equal(t, schema.Opcode(11), queued.Opcode())
	assert.False(t, queued.Opcode().IsWellKnown())
	assert.Equal(t, uint64(0x1), queued.Keywords())
}

func TestRead_UnresolvableFacetsDefault(t *testing.T) {
	t.Parallel()

	provider, err := Read(sampleManifest)
	require.NoError(t, err)

	oddball := provider.Events()[3]

	// Unknown level token falls back to LogAlways.
	assert.Equal(t, schema.LevelLogAlways, oddball.Level())
	// Unknown opcode token with no custom declaration falls back to Info.
	assert.Equal(t, schema.OpcodeInfo, oddball.Opcode())
	// The dangling task name survives so rules can flag it, but the id is 0.
	assert.Equal(t, "Missing", oddball.TaskName())
	assert.Zero(t, oddball.TaskID())
	// Unresolvable keyword tokens contribute nothing to the mask.
	assert.Zero(t, oddball.Keywords())
}

func TestRead_IdempotentParse(t *testing.T) {
	t.Parallel()

	first, err := Read(sampleManifest)
	require.NoError(t, err)

	second, err := Read(sampleManifest)
	require.NoError(t, err)

	require.NotSame(t, first, second)
	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, first.Name(), second.Name())
	require.Equal(t, first.EventCount(), second.EventCount())

	firstEvents, secondEvents := first.Events(), second.Events()
	for i := range firstEvents {
		assert.Equal(t, firstEvents[i].ID(), secondEvents[i].ID())
		assert.Equal(t, firstEvents[i].Symbol(), secondEvents[i].Symbol())
		assert.Equal(t, firstEvents[i].Level(), secondEvents[i].Level())
		assert.Equal(t, firstEvents[i].Keywords(), secondEvents[i].Keywords())
		assert.Equal(t, firstEvents[i].Opcode(), secondEvents[i].Opcode())
		assert.Equal(t, firstEvents[i].Payload(), secondEvents[i].Payload())
	}
}

func TestRead_MalformedDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest string
	}{
		{
			name:     "not xml",
			manifest: "this is not xml",
		},
		{
			name:     "missing instrumentation",
			manifest: `<instrumentationManifest></instrumentationManifest>`,
		},
		{
			name:     "missing events",
			manifest: `<instrumentationManifest><instrumentation/></instrumentationManifest>`,
		},
		{
			name:     "missing provider",
			manifest: `<instrumentationManifest><instrumentation><events/></instrumentation></instrumentationManifest>`,
		},
		{
			name: "provider without identity",
			manifest: `<instrumentationManifest><instrumentation><events>` +
				`<provider name="No-Guid"/>` +
				`</events></instrumentation></instrumentationManifest>`,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider, err := Read(tt.manifest)
			require.ErrorIs(t, err, ErrMalformedManifest)
			assert.Nil(t, provider)
		})
	}
}

func TestRead_EmptyEventsListIsValid(t *testing.T) {
	t.Parallel()

	const manifest = `<instrumentationManifest><instrumentation><events>` +
		`<provider guid="{g}" name="Quiet-Provider"><events/></provider>` +
		`</events></instrumentation></instrumentationManifest>`

	provider, err := Read(manifest)
	require.NoError(t, err)
	assert.Zero(t, provider.EventCount())
}
