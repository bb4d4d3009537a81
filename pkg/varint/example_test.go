package varint_test

import (
	"bytes"
	"fmt"

	"github.com/ssargent/brokercore/pkg/varint"
)

func ExamplePutInt32() {
	var buf bytes.Buffer
	for _, n := range []int32{0, -1, 14, 150} {
		_ = varint.PutInt32(&buf, n)
		fmt.Printf("%d -> % x\n", n, buf.Bytes())
		buf.Reset()
	}

	// Output:
	// 0 -> 00
	// -1 -> 01
	// 14 -> 1c
	// 150 -> ac 02
}

func ExampleSizeOfInt64() {
	fmt.Println(varint.SizeOfInt64(-1))
	fmt.Println(varint.SizeOfInt64(1 << 40))

	// Output:
	// 1
	// 6
}
