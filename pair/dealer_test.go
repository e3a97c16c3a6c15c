package pair_test

import (
	"fmt"
	"reflect"

	"github.com/muzin/chameleon/pair"
)

type (
	user     struct{ Name string }
	userView struct{ Name string }
	userRow  struct{ Name string }
)

func ExampleDealer() {
	var d pair.Dealer

	d.Needs(reflect.TypeFor[user](), reflect.TypeFor[userView]())
	src, dst, ok := d.NextNeeds()
	fmt.Println("user & view:", src, dst, ok)

	_, _, ok = d.NextNeeds()
	fmt.Println("empty:", ok)

	d.Needs(reflect.TypeFor[*userView](), reflect.TypeFor[user]())
	_, _, ok = d.NextNeeds()
	fmt.Println("reverse is covered:", ok)

	d.Expand(pair.Multi(reflect.TypeFor[user](), reflect.TypeFor[userRow](), reflect.TypeFor[map[string]any]()))
	fmt.Println("queued:", d.Len())

	src, dst, _ = d.NextNeeds()
	fmt.Println("first:", src, dst)

	src, dst, _ = d.NextNeeds()
	fmt.Println("second:", src, dst)

	_, _, ok = d.NextNeeds()
	fmt.Println("no more pairs:", ok)

	// Output:
	// user & view: pair_test.user pair_test.userView true
	// empty: false
	// reverse is covered: false
	// queued: 2
	// first: pair_test.user pair_test.userRow
	// second: pair_test.user map[string]interface {}
	// no more pairs: false
}
