package record

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/danmuck/recordctl/internal/testutil/testlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthority() Pubkey {
	var p Pubkey
	for i := range p {
		p[i] = byte(i + 1)
	}
	return p
}

func TestEncodeWriteExample(t *testing.T) {
	testlog.Start(t)
	got, err := EncodeWrite(WriteString(10, "hi"))
	require.NoError(t, err)

	want := []byte{
		1,
		0x0a, 0, 0, 0, 0, 0, 0, 0,
		0x02, 0, 0, 0,
		0x68, 0x69,
	}
	assert.Equal(t, want, got)
}

func TestEncodeOpcodeOnlyKinds(t *testing.T) {
	testlog.Start(t)
	tests := []struct {
		name string
		fn   func() ([]byte, error)
		want byte
	}{
		{"initialize", func() ([]byte, error) { return EncodeInitialize(Initialize{}) }, 0},
		{"set_authority", func() ([]byte, error) { return EncodeSetAuthority(SetAuthority{}) }, 2},
		{"close_account", func() ([]byte, error) { return EncodeCloseAccount(CloseAccount{}) }, 3},
		{"initialize_dynamic", func() ([]byte, error) { return EncodeInitializeDynamic(InitializeDynamic{}) }, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn()
			require.NoError(t, err)
			assert.Equal(t, []byte{tc.want}, got)
		})
	}
}

func TestEncodeWriteDynamicUsesOwnOpcode(t *testing.T) {
	testlog.Start(t)
	got, err := EncodeWriteDynamic(WriteDynamicString(0, "x"))
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 'x'}, got)
}

func TestRoundTripInstructions(t *testing.T) {
	testlog.Start(t)
	big := bytes.Repeat([]byte{0xab}, 300)
	cases := []Instruction{
		Initialize{},
		Write{Offset: 0, Data: []byte{}},
		Write{Offset: 7, Data: []byte("hello record")},
		Write{Offset: ^uint64(0), Data: big},
		SetAuthority{},
		CloseAccount{},
		InitializeDynamic{},
		WriteDynamic{Offset: 1 << 40, Data: []byte("héllo")},
	}
	for _, in := range cases {
		t.Run(in.Kind().String(), func(t *testing.T) {
			encoded, err := DefaultCodec().Encode(in)
			require.NoError(t, err)

			first, err := DefaultCodec().Encode(in)
			require.NoError(t, err)
			assert.Equal(t, encoded, first, "encoding must be deterministic")

			op, _ := DefaultOpcodes().Opcode(in.Kind())
			assert.Equal(t, byte(op), encoded[0])

			out, err := DecodeInstruction(encoded)
			require.NoError(t, err)
			assert.Equal(t, in, out)

			generic, err := Decode(in.Kind(), encoded)
			require.NoError(t, err)
			assert.Equal(t, in, generic)
		})
	}
}

func TestWriteLengthPrefixMatchesPayload(t *testing.T) {
	testlog.Start(t)
	for _, n := range []int{0, 1, 31, 32, 33, 1024} {
		data := bytes.Repeat([]byte{'z'}, n)
		for _, in := range []Instruction{Write{Offset: 3, Data: data}, WriteDynamic{Offset: 3, Data: data}} {
			encoded, err := DefaultCodec().Encode(in)
			require.NoError(t, err)
			require.Len(t, encoded, 1+8+4+n)
			assert.Equal(t, uint32(n), binary.LittleEndian.Uint32(encoded[9:13]))
			assert.Equal(t, data, encoded[13:])
		}
	}
}

func TestCustomOpcodeTable(t *testing.T) {
	testlog.Start(t)
	table := DefaultOpcodes()
	table.Write = 9
	table.WriteDynamic = 10
	codec, err := NewCodec(table)
	require.NoError(t, err)

	encoded, err := codec.Encode(WriteString(1, "a"))
	require.NoError(t, err)
	assert.Equal(t, byte(9), encoded[0])

	out, err := codec.DecodeInstruction(encoded)
	require.NoError(t, err)
	assert.Equal(t, WriteString(1, "a"), out)

	_, err = DecodeInstruction(encoded)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestNewCodecRejectsDuplicateOpcodes(t *testing.T) {
	testlog.Start(t)
	table := DefaultOpcodes()
	table.CloseAccount = table.SetAuthority
	_, err := NewCodec(table)
	assert.ErrorIs(t, err, ErrInvalidOpcodeTable)
}

func TestEncodeRejectsUnsealedForms(t *testing.T) {
	testlog.Start(t)
	_, err := DefaultCodec().Encode(nil)
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = DefaultCodec().Encode(&Write{Offset: 1})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestDecodeInstructionErrors(t *testing.T) {
	testlog.Start(t)
	valid, err := EncodeWrite(WriteString(10, "hi"))
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := DecodeInstruction(nil)
		assert.ErrorIs(t, err, ErrTruncated)
	})
	t.Run("unknown opcode", func(t *testing.T) {
		_, err := DecodeInstruction([]byte{0x7f})
		assert.ErrorIs(t, err, ErrUnknownKind)
		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, KindUnknown, de.Kind)
	})
	t.Run("truncated offset", func(t *testing.T) {
		_, err := DecodeInstruction(valid[:5])
		assert.ErrorIs(t, err, ErrTruncated)
		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, FieldOffset, de.Field)
		assert.Equal(t, 1, de.Offset)
	})
	t.Run("malformed length", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(bad[9:13], 50)
		_, err := DecodeInstruction(bad)
		assert.ErrorIs(t, err, ErrMalformedLength)
		assert.ErrorIs(t, err, ErrTruncated)
	})
	t.Run("trailing bytes", func(t *testing.T) {
		_, err := DecodeInstruction(append(append([]byte(nil), valid...), 0))
		assert.ErrorIs(t, err, ErrTrailingBytes)
	})
	t.Run("kind mismatch", func(t *testing.T) {
		_, err := Decode(KindWriteDynamic, valid)
		assert.ErrorIs(t, err, ErrKindMismatch)
	})
	t.Run("unregistered kind", func(t *testing.T) {
		_, err := Decode(Kind(42), valid)
		assert.ErrorIs(t, err, ErrUnknownKind)
	})
}

func TestRecordDataRoundTrip(t *testing.T) {
	testlog.Start(t)
	payload := bytes.Repeat([]byte{0x5a}, RecordPayloadSize)
	in := NewRecordData(CurrentVersion, testAuthority(), payload)

	encoded := EncodeRecordData(in)
	require.Len(t, encoded, RecordDataSize)
	assert.Equal(t, CurrentVersion, encoded[0])
	assert.Equal(t, in.Authority[:], encoded[1:RecordHeaderSize])
	assert.Equal(t, payload, encoded[RecordHeaderSize:])

	out, err := DecodeRecordData(encoded)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	generic, err := Decode(KindRecordData, encoded)
	require.NoError(t, err)
	assert.Equal(t, in, generic)
}

func TestRecordDataLossyPayload(t *testing.T) {
	testlog.Start(t)
	short := NewRecordData(2, testAuthority(), []byte("abc"))
	out, err := DecodeRecordData(EncodeRecordData(short))
	require.NoError(t, err)
	want := make([]byte, RecordPayloadSize)
	copy(want, "abc")
	assert.Equal(t, want, out.Data[:])

	long := bytes.Repeat([]byte{'q'}, 40)
	long[0] = 'p'
	out, err = DecodeRecordData(EncodeRecordData(NewRecordData(2, testAuthority(), long)))
	require.NoError(t, err)
	assert.Equal(t, long[:RecordPayloadSize], out.Data[:])
}

func TestRecordDataIgnoresTrailingBytes(t *testing.T) {
	testlog.Start(t)
	in := NewRecordData(CurrentVersion, testAuthority(), []byte("dynamic"))
	account := append(EncodeRecordData(in), bytes.Repeat([]byte{0xee}, 64)...)
	out, err := DecodeRecordData(account)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRecordDataAcceptsAnyValues(t *testing.T) {
	testlog.Start(t)
	raw := bytes.Repeat([]byte{0xff}, RecordDataSize)
	out, err := DecodeRecordData(raw)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), out.Version)
}

func TestRecordDataTruncatedPrefixes(t *testing.T) {
	testlog.Start(t)
	encoded := EncodeRecordData(NewRecordData(CurrentVersion, testAuthority(), []byte("payload")))
	for n := 0; n < len(encoded); n++ {
		out, err := DecodeRecordData(encoded[:n])
		require.ErrorIs(t, err, ErrTruncated, "prefix length %d", n)
		assert.Equal(t, RecordData{}, out)
	}
}

func TestRecordDataForty(t *testing.T) {
	testlog.Start(t)
	encoded := EncodeRecordData(NewRecordData(1, testAuthority(), bytes.Repeat([]byte{1}, 32)))
	_, err := DecodeRecordData(encoded[:40])
	require.ErrorIs(t, err, ErrTruncated)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, KindRecordData, de.Kind)
	assert.Equal(t, FieldData, de.Field)
	assert.Equal(t, RecordHeaderSize, de.Offset)
}

func TestDecodedBytesDoNotAliasInput(t *testing.T) {
	testlog.Start(t)
	encoded, err := EncodeWrite(WriteString(0, "abc"))
	require.NoError(t, err)
	out, err := DecodeInstruction(encoded)
	require.NoError(t, err)

	encoded[13] = 'z'
	assert.Equal(t, []byte("abc"), out.(Write).Data)
}
