package schema

import "fmt"

// Opcode classifies the operation an event marks within an activity.
// Values 0-9 and 240 are well known; providers may declare custom opcodes
// with other values, which the type admits unchanged.
type Opcode int

// Well-known opcodes.
const (
	OpcodeInfo                Opcode = 0
	OpcodeStart               Opcode = 1
	OpcodeStop                Opcode = 2
	OpcodeDataCollectionStart Opcode = 3
	OpcodeDataCollectionStop  Opcode = 4
	OpcodeExtension           Opcode = 5
	OpcodeReply               Opcode = 6
	OpcodeResume              Opcode = 7
	OpcodeSuspend             Opcode = 8
	OpcodeSend                Opcode = 9
	OpcodeReceive             Opcode = 240
)

// opcodeNames maps well-known opcodes to their display names.
var opcodeNames = map[Opcode]string{
	OpcodeInfo:                "Info",
	OpcodeStart:               "Start",
	OpcodeStop:                "Stop",
	OpcodeDataCollectionStart: "DataCollectionStart",
	OpcodeDataCollectionStop:  "DataCollectionStop",
	OpcodeExtension:           "Extension",
	OpcodeReply:               "Reply",
	OpcodeResume:              "Resume",
	OpcodeSuspend:             "Suspend",
	OpcodeSend:                "Send",
	OpcodeReceive:             "Receive",
}

// IsWellKnown reports whether the opcode is one of the eleven well-known values.
func (o Opcode) IsWellKnown() bool {
	_, ok := opcodeNames[o]

	return ok
}

// String returns the opcode's display name, or "opcode(<n>)" for custom values.
func (o Opcode) String() string {
	name, ok := opcodeNames[o]
	if !ok {
		return fmt.Sprintf("opcode(%d)", int(o))
	}

	return name
}
