package record

import "fmt"

// Codec encodes and decodes instructions against one opcode table. A Codec
// is immutable and safe for concurrent use.
type Codec struct {
	opcodes OpcodeTable
}

var defaultCodec = &Codec{opcodes: DefaultOpcodes()}

// NewCodec validates opcodes and returns a codec bound to them.
func NewCodec(opcodes OpcodeTable) (*Codec, error) {
	if err := opcodes.Validate(); err != nil {
		return nil, err
	}
	return &Codec{opcodes: opcodes}, nil
}

// DefaultCodec uses DefaultOpcodes.
func DefaultCodec() *Codec {
	return defaultCodec
}

func (c *Codec) Opcodes() OpcodeTable {
	return c.opcodes
}

// Encode writes ins using the layout registered for its kind. The opcode is
// always the first byte.
func (c *Codec) Encode(ins Instruction) ([]byte, error) {
	if ins == nil {
		return nil, fmt.Errorf("%w: nil instruction", ErrUnknownKind)
	}
	values, err := c.instructionValues(ins)
	if err != nil {
		return nil, err
	}
	return encodeValues(ins.Kind(), values)
}

func (c *Codec) instructionValues(ins Instruction) (map[string]Value, error) {
	op, ok := c.opcodes.Opcode(ins.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, ins.Kind())
	}
	values := map[string]Value{
		FieldInstruction: {Type: TypeU8, Uint8: uint8(op)},
	}
	switch v := ins.(type) {
	case Initialize, SetAuthority, CloseAccount, InitializeDynamic:
	case Write:
		putWrite(values, v.Offset, v.Data)
	case WriteDynamic:
		putWrite(values, v.Offset, v.Data)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, ins)
	}
	return values, nil
}

func putWrite(values map[string]Value, offset uint64, data []byte) {
	values[FieldOffset] = Value{Type: TypeU64, Uint64: offset}
	values[FieldData] = Value{Type: TypeBytes, Bytes: data}
}

func encodeValues(kind Kind, values map[string]Value) ([]byte, error) {
	specs := mustLayout(kind)
	w := NewWriter(encodedSize(specs, values))
	for _, spec := range specs {
		v, ok := values[spec.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrMissingField, kind, spec.Name)
		}
		if v.Type != spec.Type {
			return nil, fmt.Errorf("%w: %s.%s got %s want %s", ErrFieldTypeMismatch, kind, spec.Name, v.Type, spec.Type)
		}
		switch spec.Type {
		case TypeU8:
			w.U8(v.Uint8)
		case TypeU64:
			w.U64(v.Uint64)
		case TypeBytes:
			w.Bytes(v.Bytes)
		case TypeFixed32, TypePubkey:
			w.Fixed32(v.Fixed)
		}
	}
	return w.Result()
}

// EncodeRecordData renders rec the way the program stores it.
func EncodeRecordData(rec RecordData) []byte {
	out, err := encodeValues(KindRecordData, map[string]Value{
		FieldVersion:   {Type: TypeU8, Uint8: rec.Version},
		FieldAuthority: {Type: TypePubkey, Fixed: rec.Authority},
		FieldData:      {Type: TypeFixed32, Fixed: rec.Data},
	})
	if err != nil {
		// every field is fixed width
		panic(err)
	}
	return out
}

func EncodeInitialize(v Initialize) ([]byte, error) {
	return defaultCodec.Encode(v)
}

func EncodeWrite(v Write) ([]byte, error) {
	return defaultCodec.Encode(v)
}

func EncodeSetAuthority(v SetAuthority) ([]byte, error) {
	return defaultCodec.Encode(v)
}

func EncodeCloseAccount(v CloseAccount) ([]byte, error) {
	return defaultCodec.Encode(v)
}

func EncodeInitializeDynamic(v InitializeDynamic) ([]byte, error) {
	return defaultCodec.Encode(v)
}

func EncodeWriteDynamic(v WriteDynamic) ([]byte, error) {
	return defaultCodec.Encode(v)
}
