// Package manifest converts a provider's serialized instrumentation manifest
// (an XML document in the fixed manifest schema) into a populated
// schema.ProviderSchema.
//
// Parsing distinguishes two failure classes. A document missing the
// instrumentation/events/provider skeleton is structurally broken and fails
// with ErrMalformedManifest. Every optional facet of an individual event
// (level, version, task, keywords, opcode, template) instead degrades to a
// documented default when absent or unrecognized, because manifests are
// generated artifacts that legitimately omit optional structure.
package manifest

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/schema"
)

// ErrMalformedManifest is returned when the manifest document does not
// contain the minimal required structure.
var ErrMalformedManifest = errors.New("malformed instrumentation manifest")

// Read parses manifestXML and returns the provider schema it describes.
func Read(manifestXML string) (*schema.ProviderSchema, error) {
	var doc document

	decodeErr := xml.Unmarshal([]byte(manifestXML), &doc)
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedManifest, decodeErr)
	}

	provider, skeletonErr := locateProvider(&doc)
	if skeletonErr != nil {
		return nil, skeletonErr
	}

	events := make([]*schema.EventSchema, 0, len(provider.Events))

	for _, event := range provider.Events {
		id, ok := eventID(event.Value)
		if !ok {
			// Entries with non-positive or unparsable identifiers are
			// placeholders, not errors; the filter is part of the contract.
			continue
		}

		events = append(events, schema.NewEventSchema(buildEventConfig(id, event, provider)))
	}

	providerSchema := schema.NewProviderSchema(provider.GUID, provider.Name)

	assignErr := providerSchema.AssignEvents(events)
	if assignErr != nil {
		return nil, assignErr
	}

	return providerSchema, nil
}

// locateProvider walks the manifest skeleton and returns the single provider
// element, or ErrMalformedManifest when any level of the skeleton is missing.
func locateProvider(doc *document) (*providerElem, error) {
	if doc.Instrumentation == nil {
		return nil, fmt.Errorf("%w: missing instrumentation element", ErrMalformedManifest)
	}

	if doc.Instrumentation.Events == nil {
		return nil, fmt.Errorf("%w: missing events element", ErrMalformedManifest)
	}

	provider := doc.Instrumentation.Events.Provider
	if provider == nil {
		return nil, fmt.Errorf("%w: missing provider element", ErrMalformedManifest)
	}

	if provider.GUID == "" || provider.Name == "" {
		return nil, fmt.Errorf("%w: provider element lacks guid or name attribute", ErrMalformedManifest)
	}

	return provider, nil
}

// buildEventConfig resolves the five independent sub-lookups for one event.
func buildEventConfig(id int, event eventElem, provider *providerElem) schema.EventConfig {
	taskName, taskID := resolveTask(event.Task, provider.Tasks)

	return schema.EventConfig{
		ID:       id,
		Symbol:   event.Symbol,
		Level:    resolveLevel(event.Level),
		TaskName: taskName,
		TaskID:   taskID,
		Keywords: resolveKeywords(event.Keywords, provider.Keywords),
		Opcode:   resolveOpcode(event.Opcode, provider.Opcodes),
		Version:  resolveVersion(event.Version),
		Payload:  resolvePayload(event.Template, provider.Templates),
	}
}
