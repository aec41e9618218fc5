package safevec_test

import (
	"fmt"

	"github.com/randalmurphal/safevec/pkg/safevec"
)

func Example() {
	v := safevec.From([]int{10, 20, 30})

	it := v.IterAt(1)
	defer it.Release()

	v.InsertAt(0, 0)
	fmt.Println(v.ToSlice(), it.Get(), it.Index())

	v.PushBack(40, 50, 60, 70)
	fmt.Println(it.Get(), it.Index())
	// Output:
	// [0 10 20 30] 20 2
	// 20 2
}

func ExampleIterator_Erase() {
	v := safevec.From([]int{1, 2, 3, 4})

	it := v.IterAt(2)
	defer it.Release()

	it.Erase()
	fmt.Println(v.ToSlice(), it.Get())
	// Output: [1 2 4] 4
}

func ExampleVector_All() {
	v := safevec.From([]string{"keep", "drop", "keep", "drop"})

	for i, s := range v.All() {
		if s == "drop" {
			v.EraseAt(i)
		}
	}
	fmt.Println(v.ToSlice())
	// Output: [keep keep]
}

func ExampleVector_EraseRange() {
	v := safevec.From([]rune("abcde"))

	inside := v.IterAt(2)
	defer inside.Release()

	first, last := v.IterAt(1), v.IterAt(3)
	next := v.EraseRange(first, last)
	first.Release()
	last.Release()
	next.Release()

	fmt.Println(string(v.ToSlice()), string(inside.Get()))
	// Output: ade d
}
