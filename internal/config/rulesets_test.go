package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/rules"
)

const customSetDocument = `rule_sets:
  - name: minimal
    rules:
      - structure/unique-event-ids
      - practice/unique-symbols
`

func newCatalog(t *testing.T) *Catalog {
	t.Helper()

	catalog, err := NewCatalog()
	require.NoError(t, err)

	return catalog
}

func TestNewCatalog_BuiltinSets(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	sets := catalog.Sets()
	require.Len(t, sets, 2)
	assert.Equal(t, "structure", sets[0].Name())
	assert.Equal(t, "practice", sets[1].Name())

	assert.Len(t, catalog.Registry().All(), 8)
}

func TestCatalog_Resolve(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	resolved, err := catalog.Resolve([]string{"practice", "structure"})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, "practice", resolved[0].Name())

	_, err = catalog.Resolve([]string{"ghost"})
	require.ErrorIs(t, err, ErrUnknownRuleSet)
}

func TestCatalog_LoadRuleSetsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rulesets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customSetDocument), 0o600))

	catalog := newCatalog(t)
	require.NoError(t, catalog.LoadRuleSetsFile(path))

	resolved, err := catalog.Resolve([]string{"minimal"})
	require.NoError(t, err)
	require.Len(t, resolved, 1)

	setRules := resolved[0].Rules()
	require.Len(t, setRules, 2)
	assert.Equal(t, "structure/unique-event-ids", setRules[0].ID())
	assert.Equal(t, "practice/unique-symbols", setRules[1].ID())
}

func TestCatalog_LoadRuleSets_UnknownRule(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	err := catalog.loadRuleSets([]byte(`rule_sets:
  - name: broken
    rules:
      - structure/does-not-exist
`))
	require.ErrorIs(t, err, rules.ErrUnknownRuleID)
}

func TestCatalog_LoadRuleSets_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "not a document", doc: `just a string`},
		{name: "missing rules", doc: "rule_sets:\n  - name: empty\n"},
		{name: "empty rules", doc: "rule_sets:\n  - name: empty\n    rules: []\n"},
		{name: "unknown key", doc: "rule_sets:\n  - name: x\n    rules: [a]\n    extra: true\n"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			catalog := newCatalog(t)
			require.ErrorIs(t, catalog.loadRuleSets([]byte(tt.doc)), ErrInvalidRuleSetDocument)
		})
	}
}

func TestCatalog_LoadRuleSets_DuplicateName(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	err := catalog.loadRuleSets([]byte(`rule_sets:
  - name: structure
    rules:
      - structure/unique-event-ids
`))
	require.ErrorIs(t, err, ErrDuplicateSetName)
}
