package register

import (
	"strings"
)

// eflagsBits lists the defined EFLAGS bit positions.
var eflagsBits = []string{
	"0.  CF : Carry Flag. Set if the last arithmetic operation carried (addition) or borrowed (subtraction) a bit beyond the size of the register. This is then checked when the operation is followed with an add-with-carry or subtract-with-borrow to deal with values too large for just one register to contain.",
	"2.  PF : Parity Flag. Set if the number of set bits in the least significant byte is a multiple of 2.",
	"4.  AF : Adjust Flag. Carry of Binary Code Decimal (BCD) numbers arithmetic operations.",
	"6.  ZF : Zero Flag. Set if the result of an operation is Zero (0).",
	"7.  SF : Sign Flag. Set if the result of an operation is negative.",
	"8.  TF : Trap Flag. Set if step by step debugging.",
	"9.  IF : Interruption Flag. Set if interrupts are enabled.",
	"10.  DF : Direction Flag. Stream direction. If set, string operations will decrement their pointer rather than incrementing it, reading memory backwards.",
	"11.  OF : Overflow Flag. Set if signed arithmetic operations result in a value too large for the register to contain.",
	"12-13.  IOPL : I/O Privilege Level field (2 bits). I/O Privilege Level of the current process.",
	"14.  NT : Nested Task flag. Controls chaining of interrupts. Set if the current process is linked to the next process.",
	"16.  RF : Resume Flag. Response to debug exceptions.",
	"17.  VM : Virtual-8086 Mode. Set if in 8086 compatibility mode.",
	"18.  AC : Alignment Check. Set if alignment checking of memory references is done.",
	"19.  VIF : Virtual Interrupt Flag. Virtual image of IF.",
	"20.  VIP : Virtual Interrupt Pending flag. Set if an interrupt is pending.",
	"21.  ID : Identification Flag. Support for CPUID instruction if can be set.",
}

func eflagsDescription() string {
	var sb strings.Builder

	sb.WriteString("The EFLAGS is a 32-bit register used as a collection of bits representing Boolean values to store the results of operations and the state of the processor.\n")
	sb.WriteString("\nThe different use of these flags are:\n")
	for _, bit := range eflagsBits {
		sb.WriteString("\n")
		sb.WriteString(bit)
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// fixedRegisters returns the registers that have no sized aliases.
func fixedRegisters() []Register {
	return []Register{
		{"SS", BITS_16, CLASS_SEGMENT, "Stack Segment. Pointer to the stack."},
		{"CS", BITS_16, CLASS_SEGMENT, "Code Segment. Pointer to the code."},
		{"DS", BITS_16, CLASS_SEGMENT, "Data Segment. Pointer to the data."},
		{"ES", BITS_16, CLASS_SEGMENT, "Extra Segment. Pointer to extra data."},
		{"FS", BITS_16, CLASS_SEGMENT, "F Segment. Pointer to extra data."},
		{"GS", BITS_16, CLASS_SEGMENT, "G Segment. Pointer to extra data."},
		{"EFLAGS", BITS_32, CLASS_FLAGS, eflagsDescription()},
		// TODO: EIP width is unconfirmed; RIP (64-bit) is not catalogued yet.
		{"EIP", BITS_32, CLASS_INSTRUCTION_POINTER, "The EIP register contains the address of the next instruction to be executed if no branching is done.\nEIP can only be read through the stack after a call instruction."},
	}
}
