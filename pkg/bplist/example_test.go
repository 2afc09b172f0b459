package bplist_test

import (
	"errors"
	"fmt"

	"github.com/ssargent/calltrace/internal/testutil"
	"github.com/ssargent/calltrace/pkg/bplist"
)

func ExampleDecode() {
	b := testutil.NewBuilder()
	data := b.Root(
		b.String("uniqueId"), b.String("0F5E7C2A-1111-4A4A-9B9B-00AA00AA00AA"),
		b.String("duration"), b.Real(42),
	)

	v, err := bplist.Decode(data)
	if err != nil {
		fmt.Println("decode failed:", err)
		return
	}

	root, _ := v.(bplist.Dictionary).Dict("root")
	id, _ := root.String("uniqueId")
	secs, _ := root.Number("duration")
	fmt.Println(id)
	fmt.Println(secs)

	// Output:
	// 0F5E7C2A-1111-4A4A-9B9B-00AA00AA00AA
	// 42
}

func ExampleDecode_errorHandling() {
	_, err := bplist.Decode([]byte("not a plist at all, just text......................"))
	fmt.Println(errors.Is(err, bplist.ErrNotBplist))

	// Output:
	// true
}
