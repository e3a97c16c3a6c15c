package chameleon_test

import "time"

type (
	A struct {
		X int
	}

	B struct {
		X int
		Y int
	}

	Counter struct {
		N int
	}

	CounterText struct {
		N string
	}

	AInner struct {
		P string
	}

	BInner struct {
		P string
	}

	Outer struct {
		Inner AInner
		List  []AInner
	}

	OuterView struct {
		Inner *BInner
		List  []BInner
	}
)

// Person reads and writes through accessor methods.
type Person struct {
	name     *string
	age      int
	active   bool
	Tags     []string
	Address  *Address
	JoinedAt time.Time
}

func (p *Person) GetName() *string {
	return p.name
}

func (p *Person) SetName(name *string) {
	p.name = name
}

func (p *Person) GetAge() int {
	return p.age
}

func (p *Person) SetAge(age int) {
	p.age = age
}

func (p *Person) IsActive() bool {
	return p.active
}

func (p *Person) SetActive(active bool) {
	p.active = active
}


type Address struct {
	City string
	Zip  int32
}

type PersonView struct {
	Name     *string
	Age      int64
	Active   bool
	Tags     []string
	Address  *AddressView
	JoinedAt time.Time
}

type AddressView struct {
	City string
	Zip  string
}

func ptr[T any](v T) *T {
	return &v
}

// Meta is reached through embedded pointers by Tagged and TaggedView.
type Meta struct {
	note string
}

func (m *Meta) GetNote() string {
	return m.note
}

func (m *Meta) SetNote(note string) {
	m.note = note
}

type Tagged struct {
	*Meta
	Name string
}

type TaggedView struct {
	*Meta
	Name string
}
