package record

import (
	"fmt"
	"strings"
)

// Kind identifies a command or record layout.
type Kind uint8

const (
	KindInitialize Kind = iota
	KindWrite
	KindSetAuthority
	KindCloseAccount
	KindInitializeDynamic
	KindWriteDynamic
	KindRecordData

	// KindUnknown tags decode errors raised before a kind could be resolved.
	KindUnknown Kind = 0xff
)

var kindNames = map[Kind]string{
	KindInitialize:        "initialize",
	KindWrite:             "write",
	KindSetAuthority:      "set_authority",
	KindCloseAccount:      "close_account",
	KindInitializeDynamic: "initialize_dynamic",
	KindWriteDynamic:      "write_dynamic",
	KindRecordData:        "record_data",
	KindUnknown:           "unknown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsCommand reports whether k is an instruction kind led by an opcode.
func (k Kind) IsCommand() bool {
	return k <= KindWriteDynamic
}

// CommandKinds lists the instruction kinds in dispatch order.
func CommandKinds() []Kind {
	return []Kind{
		KindInitialize,
		KindWrite,
		KindSetAuthority,
		KindCloseAccount,
		KindInitializeDynamic,
		KindWriteDynamic,
	}
}

// ParseKind resolves a kind name. Dashes and underscores are interchangeable.
func ParseKind(raw string) (Kind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_")
	for k, n := range kindNames {
		if n == name && k != KindUnknown {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

// Opcode is the leading instruction discriminator byte.
type Opcode uint8

// OpcodeTable maps each command kind to the opcode the execution environment
// dispatches on.
type OpcodeTable struct {
	Initialize        Opcode
	Write             Opcode
	SetAuthority      Opcode
	CloseAccount      Opcode
	InitializeDynamic Opcode
	WriteDynamic      Opcode
}

// DefaultOpcodes follows the record program's instruction enum order.
func DefaultOpcodes() OpcodeTable {
	return OpcodeTable{
		Initialize:        0,
		Write:             1,
		SetAuthority:      2,
		CloseAccount:      3,
		InitializeDynamic: 4,
		WriteDynamic:      5,
	}
}

// Opcode returns the opcode for a command kind.
func (t OpcodeTable) Opcode(k Kind) (Opcode, bool) {
	switch k {
	case KindInitialize:
		return t.Initialize, true
	case KindWrite:
		return t.Write, true
	case KindSetAuthority:
		return t.SetAuthority, true
	case KindCloseAccount:
		return t.CloseAccount, true
	case KindInitializeDynamic:
		return t.InitializeDynamic, true
	case KindWriteDynamic:
		return t.WriteDynamic, true
	default:
		return 0, false
	}
}

// Kind resolves an opcode back to its command kind.
func (t OpcodeTable) Kind(op Opcode) (Kind, bool) {
	for _, k := range CommandKinds() {
		if got, _ := t.Opcode(k); got == op {
			return k, true
		}
	}
	return KindUnknown, false
}

// Validate rejects tables where two kinds share an opcode.
func (t OpcodeTable) Validate() error {
	seen := make(map[Opcode]Kind, len(CommandKinds()))
	for _, k := range CommandKinds() {
		op, _ := t.Opcode(k)
		if prev, dup := seen[op]; dup {
			return fmt.Errorf("%w: %s and %s share opcode %d", ErrInvalidOpcodeTable, prev, k, op)
		}
		seen[op] = k
	}
	return nil
}
