package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalText(t *testing.T) {
	t.Parallel()

	provider := NewProviderSchema("{aaaa}", "Test-Provider")
	require.NoError(t, provider.AssignEvents([]*EventSchema{
		NewEventSchema(EventConfig{ID: 2, Symbol: "Second", Opcode: OpcodeStop, TaskName: "Request", TaskID: 1}),
		NewEventSchema(EventConfig{ID: 1, Symbol: "First", Level: LevelInformational, Keywords: 0x3, Payload: []string{"url", "status"}}),
	}))

	want := "provider {aaaa} Test-Provider\n" +
		"event 1 symbol=First version=0 level=Informational opcode=Info keywords=0x3 payload=[url status]\n" +
		"event 2 symbol=Second version=0 level=LogAlways opcode=Stop task=Request(1)\n"

	assert.Equal(t, want, CanonicalText(provider))
	assert.Empty(t, CanonicalText(nil))
}
