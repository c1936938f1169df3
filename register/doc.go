// Package register implements the x86 register catalog used by the assembly
// language server.
//
// The catalog covers the eight general-purpose registers with their 64, 32,
// 16 and 8-bit aliases (RAX/EAX/AX/AL/AH, ..., RSP/ESP/SP/SPL), the six segment
// registers, EFLAGS and EIP. It is built once with Build and is immutable, so a
// single *Catalog may be shared by any number of goroutines without locking.
package register
