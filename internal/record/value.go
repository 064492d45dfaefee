package record

// Value is one field value tagged with its layout type. Pubkey and fixed
// payload fields both travel in Fixed.
type Value struct {
	Type   FieldType
	Uint8  uint8
	Uint64 uint64
	Bytes  []byte
	Fixed  [32]byte
}

func encodedSize(specs []FieldSpec, values map[string]Value) int {
	total := 0
	for _, spec := range specs {
		if n := spec.Type.Size(); n >= 0 {
			total += n
			continue
		}
		total += lengthPrefixSize + len(values[spec.Name].Bytes)
	}
	return total
}
