package record

import "fmt"

// FieldType is the semantic type of one layout field.
type FieldType uint8

const (
	TypeU8 FieldType = iota + 1
	TypeU64
	TypeBytes
	TypeFixed32
	TypePubkey
)

func (t FieldType) String() string {
	switch t {
	case TypeU8:
		return "u8"
	case TypeU64:
		return "u64"
	case TypeBytes:
		return "bytes"
	case TypeFixed32:
		return "[32]"
	case TypePubkey:
		return "pubkey"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Size returns the encoded width, or -1 for length-prefixed fields.
func (t FieldType) Size() int {
	switch t {
	case TypeU8:
		return 1
	case TypeU64:
		return 8
	case TypeFixed32:
		return RecordPayloadSize
	case TypePubkey:
		return PubkeySize
	default:
		return -1
	}
}

// FieldSpec declares one field of a layout.
type FieldSpec struct {
	Name string
	Type FieldType
}

// Field names shared by the layouts.
const (
	FieldInstruction = "instruction"
	FieldOffset      = "offset"
	FieldData        = "data"
	FieldVersion     = "version"
	FieldAuthority   = "authority"
)

const lengthPrefixSize = 4

var layouts = map[Kind][]FieldSpec{
	KindInitialize: {
		{FieldInstruction, TypeU8},
	},
	KindWrite: {
		{FieldInstruction, TypeU8},
		{FieldOffset, TypeU64},
		{FieldData, TypeBytes},
	},
	KindSetAuthority: {
		{FieldInstruction, TypeU8},
	},
	KindCloseAccount: {
		{FieldInstruction, TypeU8},
	},
	KindRecordData: {
		{FieldVersion, TypeU8},
		{FieldAuthority, TypePubkey},
		{FieldData, TypeFixed32},
	},
	KindInitializeDynamic: {
		{FieldInstruction, TypeU8},
	},
	KindWriteDynamic: {
		{FieldInstruction, TypeU8},
		{FieldOffset, TypeU64},
		{FieldData, TypeBytes},
	},
}

// LookupLayout returns a copy of the ordered field list for kind.
func LookupLayout(kind Kind) ([]FieldSpec, error) {
	specs, ok := layouts[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	out := make([]FieldSpec, len(specs))
	copy(out, specs)
	return out, nil
}

// Layout is LookupLayout for kinds the caller knows are registered. It panics
// otherwise.
func Layout(kind Kind) []FieldSpec {
	specs, err := LookupLayout(kind)
	if err != nil {
		panic(fmt.Errorf("%w: %s", ErrUnregisteredKind, kind))
	}
	return specs
}

// MinSize is the smallest valid encoding of kind: every fixed field plus an
// empty length prefix for each variable one.
func MinSize(kind Kind) int {
	total := 0
	for _, spec := range Layout(kind) {
		if n := spec.Type.Size(); n >= 0 {
			total += n
		} else {
			total += lengthPrefixSize
		}
	}
	return total
}

func mustLayout(kind Kind) []FieldSpec {
	specs, ok := layouts[kind]
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnregisteredKind, kind))
	}
	return specs
}
