package record

// Instruction is one command accepted by the record program. The set of
// implementations is closed.
type Instruction interface {
	Kind() Kind
	isInstruction()
}

// Initialize creates a fixed-capacity record account.
type Initialize struct{}

// Write overwrites account data starting at Offset.
type Write struct {
	Offset uint64
	Data   []byte
}

// SetAuthority hands the record to the authority supplied by the environment.
type SetAuthority struct{}

// CloseAccount closes the record and reclaims its lamports.
type CloseAccount struct{}

// InitializeDynamic creates a record account whose capacity may grow.
type InitializeDynamic struct{}

// WriteDynamic is Write against a dynamic-capacity account.
type WriteDynamic struct {
	Offset uint64
	Data   []byte
}

func (Initialize) Kind() Kind        { return KindInitialize }
func (Write) Kind() Kind             { return KindWrite }
func (SetAuthority) Kind() Kind      { return KindSetAuthority }
func (CloseAccount) Kind() Kind      { return KindCloseAccount }
func (InitializeDynamic) Kind() Kind { return KindInitializeDynamic }
func (WriteDynamic) Kind() Kind      { return KindWriteDynamic }

func (Initialize) isInstruction()        {}
func (Write) isInstruction()             {}
func (SetAuthority) isInstruction()      {}
func (CloseAccount) isInstruction()      {}
func (InitializeDynamic) isInstruction() {}
func (WriteDynamic) isInstruction()      {}

// WriteString builds a Write carrying the UTF-8 bytes of text.
func WriteString(offset uint64, text string) Write {
	return Write{Offset: offset, Data: []byte(text)}
}

// WriteDynamicString builds a WriteDynamic carrying the UTF-8 bytes of text.
func WriteDynamicString(offset uint64, text string) WriteDynamic {
	return WriteDynamic{Offset: offset, Data: []byte(text)}
}

const (
	// CurrentVersion is the record version the program writes today.
	CurrentVersion uint8 = 1

	RecordHeaderSize  = 1 + PubkeySize
	RecordPayloadSize = 32
	RecordDataSize    = RecordHeaderSize + RecordPayloadSize
)

// RecordData is the decoded account state. Data is capped at 32 bytes even
// for dynamic accounts.
type RecordData struct {
	Version   uint8
	Authority Pubkey
	Data      [RecordPayloadSize]byte
}

// NewRecordData builds a record, truncating or zero-padding data to 32 bytes.
func NewRecordData(version uint8, authority Pubkey, data []byte) RecordData {
	return RecordData{Version: version, Authority: authority, Data: FixedData(data)}
}

// FixedData returns the first 32 bytes of b, zero-padded when shorter.
func FixedData(b []byte) [RecordPayloadSize]byte {
	var out [RecordPayloadSize]byte
	copy(out[:], b)
	return out
}
