package record

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// DecodeRecordData reads version, authority and the 32-byte payload in that
// order. Bytes past the record are ignored; values are not validated.
func DecodeRecordData(data []byte) (RecordData, error) {
	values, err := decodeValues(KindRecordData, NewReader(data))
	if err != nil {
		logDecodeFailure(KindRecordData, len(data), err)
		return RecordData{}, err
	}
	return RecordData{
		Version:   values[FieldVersion].Uint8,
		Authority: Pubkey(values[FieldAuthority].Fixed),
		Data:      values[FieldData].Fixed,
	}, nil
}

// DecodeInstruction resolves the leading opcode and decodes the command it
// names. The input must hold exactly one command.
func (c *Codec) DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		err := &DecodeError{Kind: KindUnknown, Field: FieldInstruction, Err: ErrTruncated}
		logDecodeFailure(KindUnknown, 0, err)
		return nil, err
	}
	kind, ok := c.opcodes.Kind(Opcode(data[0]))
	if !ok {
		err := &DecodeError{
			Kind:  KindUnknown,
			Field: FieldInstruction,
			Err:   fmt.Errorf("%w: opcode %d", ErrUnknownKind, data[0]),
		}
		logDecodeFailure(KindUnknown, len(data), err)
		return nil, err
	}
	return c.decodeInstruction(kind, data)
}

// Decode decodes data as kind. Commands come back as Instruction values and
// records as RecordData.
func (c *Codec) Decode(kind Kind, data []byte) (any, error) {
	if _, err := LookupLayout(kind); err != nil {
		return nil, err
	}
	if kind == KindRecordData {
		rec, err := DecodeRecordData(data)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
	ins, err := c.decodeInstruction(kind, data)
	if err != nil {
		return nil, err
	}
	return ins, nil
}

func (c *Codec) decodeInstruction(kind Kind, data []byte) (Instruction, error) {
	r := NewReader(data)
	values, err := decodeValues(kind, r)
	if err == nil {
		err = c.checkInstruction(kind, values, r)
	}
	if err != nil {
		logDecodeFailure(kind, len(data), err)
		return nil, err
	}
	return buildInstruction(kind, values), nil
}

func (c *Codec) checkInstruction(kind Kind, values map[string]Value, r *Reader) error {
	want, _ := c.opcodes.Opcode(kind)
	if got := values[FieldInstruction].Uint8; got != uint8(want) {
		return &DecodeError{
			Kind:  kind,
			Field: FieldInstruction,
			Err:   fmt.Errorf("%w: opcode %d, want %d", ErrKindMismatch, got, want),
		}
	}
	if r.Remaining() != 0 {
		return &DecodeError{Kind: kind, Offset: r.Offset(), Err: ErrTrailingBytes}
	}
	return nil
}

func decodeValues(kind Kind, r *Reader) (map[string]Value, error) {
	specs := mustLayout(kind)
	values := make(map[string]Value, len(specs))
	for _, spec := range specs {
		offset := r.Offset()
		v := Value{Type: spec.Type}
		var err error
		switch spec.Type {
		case TypeU8:
			v.Uint8, err = r.U8()
		case TypeU64:
			v.Uint64, err = r.U64()
		case TypeBytes:
			v.Bytes, err = r.Bytes()
		case TypeFixed32, TypePubkey:
			v.Fixed, err = r.Fixed32()
		default:
			err = ErrFieldTypeMismatch
		}
		if err != nil {
			return nil, &DecodeError{Kind: kind, Field: spec.Name, Offset: offset, Err: err}
		}
		values[spec.Name] = v
	}
	return values, nil
}

func buildInstruction(kind Kind, values map[string]Value) Instruction {
	switch kind {
	case KindInitialize:
		return Initialize{}
	case KindWrite:
		return Write{Offset: values[FieldOffset].Uint64, Data: values[FieldData].Bytes}
	case KindSetAuthority:
		return SetAuthority{}
	case KindCloseAccount:
		return CloseAccount{}
	case KindInitializeDynamic:
		return InitializeDynamic{}
	case KindWriteDynamic:
		return WriteDynamic{Offset: values[FieldOffset].Uint64, Data: values[FieldData].Bytes}
	default:
		panic(fmt.Errorf("%w: %s", ErrUnregisteredKind, kind))
	}
}

func logDecodeFailure(kind Kind, size int, err error) {
	log.Debug().
		Str("kind", kind.String()).
		Int("size", size).
		Err(err).
		Msg("record decode failed")
}

// DecodeInstruction decodes with the default opcode table.
func DecodeInstruction(data []byte) (Instruction, error) {
	return defaultCodec.DecodeInstruction(data)
}

// Decode decodes data as kind with the default opcode table.
func Decode(kind Kind, data []byte) (any, error) {
	return defaultCodec.Decode(kind, data)
}
