// Package endian provides a single byte-order abstraction used by every
// ltcore codec.
//
// It combines encoding/binary's ByteOrder and AppendByteOrder interfaces
// into one EndianEngine interface so callers can both decode in place and
// append to a growing buffer without juggling two types.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from the standard
// library into a single interface. binary.LittleEndian and binary.BigEndian
// both satisfy it already.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. This is the
// engine every ltcore on-disk format uses; it is exposed as a pluggable
// value rather than hardcoded so in-memory encoders can be reused for
// other byte orders in tests.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
