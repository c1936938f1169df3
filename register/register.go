// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package register

import (
	"github.com/ezrec/asmls/translate"
)

var f = translate.From

// Bits is the width of a register.
type Bits int

const (
	BITS_8  = Bits(8)
	BITS_16 = Bits(16)
	BITS_32 = Bits(32)
	BITS_64 = Bits(64)
)

// Valid reports if the width is one of 8, 16, 32 or 64.
func (b Bits) Valid() bool {
	switch b {
	case BITS_8, BITS_16, BITS_32, BITS_64:
		return true
	}
	return false
}

// Class groups registers by architectural role.
type Class int

//go:generate go tool stringer -type=Class -linecomment
const (
	CLASS_GENERAL             = Class(0) // general
	CLASS_SEGMENT             = Class(1) // segment
	CLASS_FLAGS               = Class(2) // flags
	CLASS_INSTRUCTION_POINTER = Class(3) // instruction-pointer
)

// MarshalText encodes the class by its name.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Register is a single named register.
type Register struct {
	Name        string `json:"name" yaml:"name"`               // Upper-case register name, e.g. EAX.
	Bits        Bits   `json:"bits" yaml:"bits"`               // Width of the register.
	Class       Class  `json:"class" yaml:"class"`             // Architectural role.
	Description string `json:"description" yaml:"description"` // Human readable description.
}

// Detail returns a short width label, e.g. "32-bit register".
func (reg Register) Detail() string {
	return f("%d-bit register", int(reg.Bits))
}
