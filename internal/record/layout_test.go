package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryKindIsRegistered(t *testing.T) {
	for _, k := range append(CommandKinds(), KindRecordData) {
		specs, err := LookupLayout(k)
		require.NoError(t, err, k.String())
		require.NotEmpty(t, specs)
	}
}

func TestCommandLayoutsLeadWithOpcode(t *testing.T) {
	for _, k := range CommandKinds() {
		specs := Layout(k)
		assert.Equal(t, FieldSpec{FieldInstruction, TypeU8}, specs[0], k.String())
	}
}

func TestRecordDataLayout(t *testing.T) {
	want := []FieldSpec{
		{FieldVersion, TypeU8},
		{FieldAuthority, TypePubkey},
		{FieldData, TypeFixed32},
	}
	assert.Equal(t, want, Layout(KindRecordData))
	assert.Equal(t, RecordDataSize, MinSize(KindRecordData))
}

func TestMinSize(t *testing.T) {
	assert.Equal(t, 1, MinSize(KindInitialize))
	assert.Equal(t, 1+8+4, MinSize(KindWrite))
	assert.Equal(t, 1+8+4, MinSize(KindWriteDynamic))
}

func TestLayoutReturnsCopy(t *testing.T) {
	specs := Layout(KindWrite)
	specs[1].Name = "mutated"
	assert.Equal(t, FieldOffset, Layout(KindWrite)[1].Name)
}

func TestLayoutPanicsOnUnregisteredKind(t *testing.T) {
	assert.PanicsWithError(t, "record: unregistered kind: kind(99)", func() {
		Layout(Kind(99))
	})
	_, err := LookupLayout(Kind(99))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("write-dynamic")
	require.NoError(t, err)
	assert.Equal(t, KindWriteDynamic, k)

	k, err = ParseKind(" Set_Authority ")
	require.NoError(t, err)
	assert.Equal(t, KindSetAuthority, k)

	_, err = ParseKind("unknown")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestOpcodeTableReverseLookup(t *testing.T) {
	table := DefaultOpcodes()
	for _, k := range CommandKinds() {
		op, ok := table.Opcode(k)
		require.True(t, ok)
		back, ok := table.Kind(op)
		require.True(t, ok)
		assert.Equal(t, k, back)
	}
	_, ok := table.Opcode(KindRecordData)
	assert.False(t, ok)
	_, ok = table.Kind(200)
	assert.False(t, ok)
}
