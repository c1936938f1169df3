// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package register

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/asmls/internal"
)

// generalBase is a base general-purpose register, from which the
// sized aliases are derived.
type generalBase struct {
	Name  string // 16-bit name, e.g. AX.
	Role  string // Role of the register.
	Usage string // Typical usage.
	Split bool   // If set, has both low (xL) and high (xH) byte aliases.
}

// The general-purpose registers, in encoding order.
var generalBases = []generalBase{
	{"AX", "Accumulator Register", "Used in arithmetic operations.", true},
	{"CX", "Counter Register", "Used in shift/rotate instructions and loops.", true},
	{"DX", "Data Register", "Used in arithmetic operations and I/O operations.", true},
	{"BX", "Base Register", "Used as a pointer to data.", true},
	{"SP", "Stack Pointer Register", "Pointer to the top of the stack.", false},
	{"BP", "Stack Base Pointer Register", "Used to point to the base of the stack.", false},
	{"SI", "Source Index Register", "Used as a pointer to a source in stream operations.", false},
	{"DI", "Destination Index Register", "Used as a pointer to a destination in stream operations.", false},
}

// Catalog is an immutable set of registers, keyed by name.
type Catalog struct {
	general []Register          // Derived general-purpose registers.
	fixed   []Register          // Segment, flags and instruction pointer.
	byName  map[string]Register // Index of all registers.
}

// Build constructs the register catalog.
//
// Build is deterministic and cannot fail; every call returns an equal catalog.
func Build() (cat *Catalog) {
	cat = &Catalog{
		byName: make(map[string]Register, 48),
	}

	for _, base := range generalBases {
		cat.general = append(cat.general, base.derive()...)
	}
	cat.fixed = fixedRegisters()

	for reg := range cat.All() {
		cat.byName[reg.Name] = reg
	}

	return
}

// derive generates the sized aliases of a general-purpose register.
func (base generalBase) derive() (regs []Register) {
	regs = []Register{
		base.register("R"+base.Name, BITS_64),
		base.register("E"+base.Name, BITS_32),
		base.register(base.Name, BITS_16),
	}

	if base.Split {
		// AX => AL, AH
		regs = append(regs,
			base.register(strings.Replace(base.Name, "X", "L", 1), BITS_8),
			base.register(strings.Replace(base.Name, "X", "H", 1), BITS_8),
		)
	} else {
		// SP => SPL. There is no high byte alias.
		regs = append(regs, base.register(base.Name+"L", BITS_8))
	}

	return
}

func (base generalBase) register(name string, bits Bits) Register {
	return Register{
		Name:        name,
		Bits:        bits,
		Class:       CLASS_GENERAL,
		Description: fmt.Sprintf("(%d-bit) %v.\n%v", int(bits), base.Role, base.Usage),
	}
}

// Len returns the number of registers in the catalog.
func (cat *Catalog) Len() int {
	return len(cat.byName)
}

// Lookup finds a register by name, ignoring case.
func (cat *Catalog) Lookup(name string) (reg Register, ok bool) {
	reg, ok = cat.byName[strings.ToUpper(name)]
	return
}

// All iterates over every register: general-purpose registers in
// derivation order, then the fixed registers.
func (cat *Catalog) All() iter.Seq[Register] {
	return internal.IterSeqConcat(slices.Values(cat.general), slices.Values(cat.fixed))
}

// WithPrefix iterates over the registers whose name starts with prefix,
// ignoring case. An empty prefix matches every register.
func (cat *Catalog) WithPrefix(prefix string) iter.Seq[Register] {
	prefix = strings.ToUpper(prefix)
	return internal.IterSeqFilter(cat.All(), func(reg Register) bool {
		return strings.HasPrefix(reg.Name, prefix)
	})
}

// Map returns a copy of the catalog as a name to register map.
func (cat *Catalog) Map() map[string]Register {
	return maps.Clone(cat.byName)
}
