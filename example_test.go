package charcode_test

import (
	"fmt"

	"github.com/coregx/charcode"
)

func ExampleValidateASCII() {
	fault, found := charcode.ValidateASCII([]byte("caf\xC3\xA9"))
	fmt.Println(found, fault.Index, fault.Unit)
	// Output: true 3 195
}

func ExampleWidenASCII() {
	src := []byte("hi!")
	dst := make([]uint16, len(src))
	_, found := charcode.WidenASCII(dst, src)
	fmt.Println(found, dst)
	// Output: false [104 105 33]
}

func ExampleNarrowBasicLatin() {
	src := []uint16{0x41, 0x42, 0x100, 0x43}
	dst := make([]byte, len(src))
	fault, found := charcode.NarrowBasicLatin(dst, src)
	fmt.Printf("%v %#x@%d prefix=%q\n", found, fault.Unit, fault.Index, dst[:fault.Index])
	// Output: true 0x100@2 prefix="AB"
}

func ExampleNarrowLatin1() {
	// Total operation: units above 0xFF keep only their low byte.
	src := []uint16{0x48, 0xE9, 0x0141}
	dst := make([]byte, len(src))
	charcode.NarrowLatin1(dst, src)
	fmt.Printf("% 02x\n", dst)
	// Output: 48 e9 41
}
