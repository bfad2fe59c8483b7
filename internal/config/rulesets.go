package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/rules"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/rules/practice"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/rules/structure"
)

// ruleSetsSchema is the JSON schema user-defined rule-set documents are
// validated against before any rule ID is resolved.
//
//go:embed rulesets_schema.json
var ruleSetsSchema string

// ErrUnknownRuleSet is returned when a configured rule set name resolves to
// nothing.
var ErrUnknownRuleSet = errors.New("unknown rule set")

// ErrDuplicateSetName is returned when a rule set document redefines an
// existing set name.
var ErrDuplicateSetName = errors.New("duplicate rule set name")

// ErrInvalidRuleSetDocument is returned when a rule set document fails schema
// validation.
var ErrInvalidRuleSetDocument = errors.New("invalid rule set document")

// Catalog holds the builtin rule registry and every named rule set known to
// the process, builtin and user-defined.
type Catalog struct {
	registry *rules.Registry
	sets     map[string]*rules.Set
	order    []string
}

// NewCatalog creates a catalog with the builtin rules and sets.
func NewCatalog() (*Catalog, error) {
	registry, err := rules.NewRegistry(append(structure.Rules(), practice.Rules()...))
	if err != nil {
		return nil, fmt.Errorf("assemble builtin registry: %w", err)
	}

	catalog := &Catalog{
		registry: registry,
		sets:     make(map[string]*rules.Set),
	}

	structureSet, structureErr := structure.NewSet()
	if structureErr != nil {
		return nil, fmt.Errorf("assemble structure set: %w", structureErr)
	}

	practiceSet, practiceErr := practice.NewSet()
	if practiceErr != nil {
		return nil, fmt.Errorf("assemble practice set: %w", practiceErr)
	}

	for _, set := range []*rules.Set{structureSet, practiceSet} {
		if addErr := catalog.add(set); addErr != nil {
			return nil, addErr
		}
	}

	return catalog, nil
}

// Registry returns the builtin rule registry.
func (c *Catalog) Registry() *rules.Registry {
	return c.registry
}

// Sets returns every known rule set in registration order.
func (c *Catalog) Sets() []*rules.Set {
	sets := make([]*rules.Set, 0, len(c.order))
	for _, name := range c.order {
		sets = append(sets, c.sets[name])
	}

	return sets
}

// Resolve maps configured rule set names to sets, preserving the requested
// order.
func (c *Catalog) Resolve(names []string) ([]*rules.Set, error) {
	resolved := make([]*rules.Set, 0, len(names))

	for _, name := range names {
		set, ok := c.sets[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRuleSet, name)
		}

		resolved = append(resolved, set)
	}

	return resolved, nil
}

// LoadRuleSetsFile parses a YAML rule-set document, validates it against the
// embedded schema, and registers every set it defines.
func (c *Catalog) LoadRuleSetsFile(path string) error {
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		return fmt.Errorf("read rule set document: %w", readErr)
	}

	return c.loadRuleSets(content)
}

// ruleSetDocument mirrors the YAML shape of a rule-set document.
type ruleSetDocument struct {
	RuleSets []ruleSetEntry `yaml:"rule_sets"`
}

type ruleSetEntry struct {
	Name  string   `yaml:"name"`
	Rules []string `yaml:"rules"`
}

func (c *Catalog) loadRuleSets(content []byte) error {
	// Schema validation runs over the generic decoding so the typed
	// unmarshal below never sees a malformed document.
	var generic any
	if err := yaml.Unmarshal(content, &generic); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRuleSetDocument, err)
	}

	result, validateErr := gojsonschema.Validate(
		gojsonschema.NewStringLoader(ruleSetsSchema),
		gojsonschema.NewGoLoader(generic),
	)
	if validateErr != nil {
		return fmt.Errorf("validate rule set document: %w", validateErr)
	}

	if !result.Valid() {
		first := result.Errors()[0]

		return fmt.Errorf("%w: %s: %s", ErrInvalidRuleSetDocument, first.Field(), first.Description())
	}

	var doc ruleSetDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRuleSetDocument, err)
	}

	for _, entry := range doc.RuleSets {
		selected, selectErr := c.registry.Select(entry.Rules)
		if selectErr != nil {
			return fmt.Errorf("resolve rules for set %s: %w", entry.Name, selectErr)
		}

		set, setErr := rules.NewSet(entry.Name, selected...)
		if setErr != nil {
			return fmt.Errorf("assemble set %s: %w", entry.Name, setErr)
		}

		if addErr := c.add(set); addErr != nil {
			return addErr
		}
	}

	return nil
}

func (c *Catalog) add(set *rules.Set) error {
	if _, exists := c.sets[set.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSetName, set.Name())
	}

	c.sets[set.Name()] = set
	c.order = append(c.order, set.Name())

	return nil
}
