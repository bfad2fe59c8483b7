package manifest

import (
	"strconv"
	"strings"

	"github.com/ChilliCream/EventSourceAnalyzer/internal/schema"
)

// levelTokens is the fixed lexical mapping from the six well-known manifest
// level tokens to severity levels. Unrecognized or absent tokens fall back to
// LogAlways; that fallback is a documented default, not an error.
var levelTokens = map[string]schema.Level{
	"win:LogAlways":     schema.LevelLogAlways,
	"win:Critical":      schema.LevelCritical,
	"win:Error":         schema.LevelError,
	"win:Warning":       schema.LevelWarning,
	"win:Informational": schema.LevelInformational,
	"win:Verbose":       schema.LevelVerbose,
}

// opcodeTokens is the fixed lexical mapping from the eleven well-known
// manifest opcode tokens to opcodes.
var opcodeTokens = map[string]schema.Opcode{
	"win:Info":      schema.OpcodeInfo,
	"win:Start":     schema.OpcodeStart,
	"win:Stop":      schema.OpcodeStop,
	"win:DC_Start":  schema.OpcodeDataCollectionStart,
	"win:DC_Stop":   schema.OpcodeDataCollectionStop,
	"win:Extension": schema.OpcodeExtension,
	"win:Reply":     schema.OpcodeReply,
	"win:Resume":    schema.OpcodeResume,
	"win:Suspend":   schema.OpcodeSuspend,
	"win:Send":      schema.OpcodeSend,
	"win:Receive":   schema.OpcodeReceive,
}

// eventID parses the event value attribute. Only strictly positive integers
// qualify; everything else marks the entry for filtering.
func eventID(value string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// resolveLevel maps a level token to a severity, defaulting to LogAlways.
func resolveLevel(token string) schema.Level {
	level, ok := levelTokens[token]
	if !ok {
		return schema.LevelLogAlways
	}

	return level
}

// resolveVersion parses the version attribute, defaulting to 0.
func resolveVersion(attr string) int {
	version, err := strconv.Atoi(strings.TrimSpace(attr))
	if err != nil || version < 0 {
		return 0
	}

	return version
}

// resolveTask resolves a declared task name against the provider's task
// declarations. An absent task name yields the sentinel (empty name, id 0);
// a declared name keeps its spelling even when it does not resolve, so rules
// can flag the dangling reference, but the id stays 0.
func resolveTask(name string, tasks []taskElem) (string, int) {
	if name == "" {
		return "", 0
	}

	for _, task := range tasks {
		if task.Name != name {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(task.Value))
		if err != nil {
			return name, 0
		}

		return name, id
	}

	return name, 0
}

// resolveKeywords splits the whitespace-separated keywords attribute and ORs
// the hexadecimal mask of every token that resolves against the provider's
// keyword declarations. Tokens that do not resolve are silently ignored.
func resolveKeywords(attr string, keywords []keywordElem) uint64 {
	var mask uint64

	for _, token := range strings.Fields(attr) {
		mask |= keywordMask(token, keywords)
	}

	return mask
}

// keywordMask returns the declared mask for one keyword token, or 0.
func keywordMask(token string, keywords []keywordElem) uint64 {
	for _, keyword := range keywords {
		if keyword.Name != token {
			continue
		}

		mask, err := strconv.ParseUint(strings.TrimSpace(keyword.Mask), 0, 64)
		if err != nil {
			return 0
		}

		return mask
	}

	return 0
}

// resolveOpcode maps an opcode token to an opcode. Precedence is fixed:
// well-known token first, then the provider's custom opcode declarations,
// then the Info default. Custom opcodes may share names with future
// well-known tokens only by coincidence, so the order must not change.
func resolveOpcode(token string, opcodes []opcodeElem) schema.Opcode {
	if token == "" {
		return schema.OpcodeInfo
	}

	if opcode, ok := opcodeTokens[token]; ok {
		return opcode
	}

	for _, custom := range opcodes {
		if custom.Name != token {
			continue
		}

		value, err := strconv.Atoi(strings.TrimSpace(custom.Value))
		if err != nil {
			return schema.OpcodeInfo
		}

		return schema.Opcode(value)
	}

	return schema.OpcodeInfo
}

// resolvePayload collects the ordered data-field names of the referenced
// template. An event without a template reference, or with a dangling one,
// yields an empty payload sequence.
func resolvePayload(templateID string, templates []templateElem) []string {
	if templateID == "" {
		return nil
	}

	for _, template := range templates {
		if template.TID != templateID {
			continue
		}

		fields := make([]string, 0, len(template.Data))
		for _, data := range template.Data {
			fields = append(fields, data.Name)
		}

		return fields
	}

	return nil
}
