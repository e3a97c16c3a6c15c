package pair

import "reflect"

// Ordered is one direction of a type pair. Pointers are stripped.
type Ordered struct{ Src, Dst reflect.Type }

func ordered(src, dst reflect.Type) Ordered {
	for src != nil && src.Kind() == reflect.Pointer {
		src = src.Elem()
	}

	for dst != nil && dst.Kind() == reflect.Pointer {
		dst = dst.Elem()
	}

	return Ordered{Src: src, Dst: dst}
}

// Dealer hands out the distinct pairs still to be adapted. Adapting (A, B) covers
// (B, A) as well, so handing out one direction retires the other. Dealer is not safe
// for concurrent use.
type Dealer struct {
	needs map[Ordered]struct{}
	order []Ordered
	done  map[Ordered]struct{}
}

// Expand queues every (main, related) combination of pairs.
func (d *Dealer) Expand(pairs ...Pair) {
	for _, p := range pairs {
		if p == nil {
			continue
		}

		for _, r := range p.Related() {
			d.Needs(p.Main(), r)
		}
	}
}

// NextNeeds returns the next pair to adapt, in the order it was first queued.
func (d *Dealer) NextNeeds() (src, dst reflect.Type, ok bool) {
	for len(d.order) > 0 {
		pair := d.order[0]
		d.order = d.order[1:]

		if _, queued := d.needs[pair]; !queued {
			continue
		}

		delete(d.needs, pair)

		if _, exists := d.done[pair]; !exists {
			d.Done(pair.Src, pair.Dst)

			return pair.Src, pair.Dst, true
		}
	}

	return
}

// Needs queues (src, dst) unless it, or its reverse, was already handed out.
func (d *Dealer) Needs(src, dst reflect.Type) {
	if d.needs == nil {
		d.needs = make(map[Ordered]struct{})
	}

	pair := ordered(src, dst)
	if pair.Src == nil || pair.Dst == nil {
		return
	}

	if _, exists := d.done[pair]; exists {
		return
	}

	if _, exists := d.needs[pair]; exists {
		return
	}

	if _, exists := d.needs[Ordered{Src: pair.Dst, Dst: pair.Src}]; exists {
		return
	}

	d.needs[pair] = struct{}{}
	d.order = append(d.order, pair)
}

// Done retires (src, dst) and its reverse.
func (d *Dealer) Done(src, dst reflect.Type) {
	if d.done == nil {
		d.done = make(map[Ordered]struct{})
	}

	pair := ordered(src, dst)
	back := Ordered{Src: pair.Dst, Dst: pair.Src}

	delete(d.needs, pair)
	delete(d.needs, back)
	d.done[pair] = struct{}{}
	d.done[back] = struct{}{}
}

// Len returns the number of pairs still queued.
func (d *Dealer) Len() int {
	return len(d.needs)
}
