// Package practice holds the best-practice rules. Violations degrade the
// tracing experience (poor filterability, confusing tooling output) without
// breaking the provider outright, so every finding is a warning.
package practice

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/rules"
	"github.com/ChilliCream/EventSourceAnalyzer/internal/schema"
)

// SetName is the name of the best-practice rule set.
const SetName = "practice"

// Rules returns the best-practice rules in their canonical order.
func Rules() []rules.Rule {
	return []rules.Rule{
		uniqueSymbols{},
		startStopPairing{},
		symbolNaming{},
		verboseKeywords{},
	}
}

// NewSet assembles the best-practice rule set.
func NewSet() (*rules.Set, error) {
	return rules.NewSet(SetName, Rules()...)
}

// uniqueSymbols flags providers whose events share a symbol. Generated
// consumer code and trace viewers key on symbols; duplicates produce
// ambiguous listings.
type uniqueSymbols struct{}

func (uniqueSymbols) ID() string { return "practice/unique-symbols" }

func (uniqueSymbols) Description() string {
	return "Event symbols should be unique within the provider."
}

func (r uniqueSymbols) CheckProvider(provider *schema.ProviderSchema, _ rules.EventSource) rules.Result {
	seen := make(map[string]int)

	for _, event := range provider.Events() {
		if event.Symbol() != "" {
			seen[event.Symbol()]++
		}
	}

	var details []rules.Detail

	for _, event := range provider.Events() {
		if seen[event.Symbol()] > 1 {
			details = append(details, rules.Detail{
				Key:         event.Symbol(),
				Description: fmt.Sprintf("symbol shared by %d events", seen[event.Symbol()]),
			})

			seen[event.Symbol()] = 0
		}
	}

	if len(details) > 0 {
		return rules.NewWarning(r, "duplicate event symbols", details...)
	}

	return rules.NewSuccess(r, "event symbols are unique")
}

// startStopPairing flags tasks that open an activity with a Start opcode but
// never close it. Unbalanced activities leak open spans in trace viewers.
type startStopPairing struct{}

func (startStopPairing) ID() string { return "practice/start-stop-pairing" }

func (startStopPairing) Description() string {
	return "A task with a Start event should also declare a Stop event."
}

func (r startStopPairing) CheckProvider(provider *schema.ProviderSchema, _ rules.EventSource) rules.Result {
	starts := make(map[string]bool)
	stops := make(map[string]bool)

	for _, event := range provider.Events() {
		if !event.HasTask() {
			continue
		}

		switch event.Opcode() {
		case schema.OpcodeStart:
			starts[event.TaskName()] = true
		case schema.OpcodeStop:
			stops[event.TaskName()] = true
		}
	}

	var unpaired []string

	for task := range starts {
		if !stops[task] {
			unpaired = append(unpaired, task)
		}
	}

	sort.Strings(unpaired)

	if len(unpaired) > 0 {
		details := make([]rules.Detail, 0, len(unpaired))
		for _, task := range unpaired {
			details = append(details, rules.Detail{
				Key:         task,
				Description: "task declares a Start event without a matching Stop",
			})
		}

		return rules.NewWarning(r, "unbalanced Start/Stop opcodes", details...)
	}

	return rules.NewSuccess(r, "Start events are paired with Stop events")
}

// symbolNaming flags events without a PascalCase symbol. Symbols feed
// generated identifiers, so they should name the event like a type.
type symbolNaming struct{}

func (symbolNaming) ID() string { return "practice/symbol-naming" }

func (symbolNaming) Description() string {
	return "Events should declare a PascalCase symbol without whitespace."
}

func (r symbolNaming) CheckEvent(event *schema.EventSchema, _ rules.EventSource) rules.Result {
	symbol := event.Symbol()

	if symbol == "" {
		return rules.NewWarning(r, "event declares no symbol")
	}

	first := []rune(symbol)[0]
	if !unicode.IsUpper(first) {
		return rules.NewWarning(r, fmt.Sprintf("symbol %q should start with an upper-case letter", symbol))
	}

	if strings.ContainsFunc(symbol, unicode.IsSpace) || strings.Contains(symbol, "_") {
		return rules.NewWarning(r, fmt.Sprintf("symbol %q should not contain whitespace or underscores", symbol))
	}

	return rules.NewSuccess(r, fmt.Sprintf("symbol %q is well-formed", symbol))
}

// verboseKeywords flags verbose events without keywords. Verbose events are
// high-volume by definition; without a keyword they cannot be filtered out of
// a session.
type verboseKeywords struct{}

func (verboseKeywords) ID() string { return "practice/verbose-keywords" }

func (verboseKeywords) Description() string {
	return "Verbose events should carry at least one keyword for filtering."
}

func (r verboseKeywords) CheckEvent(event *schema.EventSchema, _ rules.EventSource) rules.Result {
	if event.Level() != schema.LevelVerbose {
		return rules.NewSuccess(r, "event is not verbose")
	}

	if event.Keywords() == 0 {
		return rules.NewWarning(r, "verbose event declares no keywords")
	}

	return rules.NewSuccess(r, "verbose event is filterable by keyword")
}
