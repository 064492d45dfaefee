// Package record owns the record program wire contract.
//
// Ownership boundary:
// - layout registry (ordered field lists per kind)
// - instruction encoding
// - account record decoding
//
// The format is frozen. Field order, widths and the leading opcode byte are
// part of the contract; authority checks, allocation and submission are owned
// by the execution environment.
package record
