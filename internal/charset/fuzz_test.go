package charset

import (
	"testing"
)

// decodeSets turns fuzz bytes into a handful of small sets.
func decodeSets(data []byte) []Set {
	var sets []Set
	var parts []Set
	for i := 0; i+1 < len(data); i += 2 {
		a := rune(data[i]) * 257 % (MaxCodePoint + 1)
		b := rune(data[i+1]) * 131 % (MaxCodePoint + 1)
		r, err := NewRange(a, b)
		if err != nil {
			continue
		}
		parts = append(parts, r)
		if len(parts) == 3 {
			sets = append(sets, Union(parts...))
			parts = nil
		}
	}
	if len(parts) > 0 {
		sets = append(sets, Union(parts...))
	}
	return sets
}

func checkCanonical(t *testing.T, s Set) {
	t.Helper()
	rs := s.Ranges()
	for i, r := range rs {
		if r.Min > r.Max {
			t.Fatalf("range %d backward: %v", i, r)
		}
		if i > 0 && int(rs[i-1].Max)+1 >= int(r.Min) {
			t.Fatalf("ranges %d and %d not separated: %v %v", i-1, i, rs[i-1], r)
		}
	}
}

func FuzzAlgebra(f *testing.F) {
	f.Add([]byte{0, 10, 20, 5})
	f.Add([]byte{255, 255, 0, 0, 7, 9})
	f.Add([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 64 {
			return
		}
		sets := decodeSets(data)
		if len(sets) == 0 {
			return
		}

		u := Union(sets...)
		checkCanonical(t, u)
		for _, s := range sets {
			checkCanonical(t, s)
			if got := Complement(Complement(s)); !got.Equal(s) {
				t.Fatalf("double complement of %v = %v", s, got)
			}
			if !Union(s, Complement(s)).Equal(Any()) {
				t.Fatalf("s ∪ ¬s != full for %v", s)
			}
		}

		overlaps := Overlaps(sets...)
		var cells []Set
		for _, o := range overlaps {
			checkCanonical(t, o.Set)
			if o.Set.IsEmpty() {
				t.Fatal("empty partition cell")
			}
			cells = append(cells, o.Set)
		}
		if !Union(cells...).Equal(u) {
			t.Fatalf("partition cells do not cover the union")
		}
		for i := range cells {
			for j := i + 1; j < len(cells); j++ {
				if !Intersect(cells[i], cells[j]).IsEmpty() {
					t.Fatalf("cells %d and %d intersect", i, j)
				}
			}
		}
		for i, s := range sets {
			if !unionOfCells(overlaps, i).Equal(s) {
				t.Fatalf("cells do not rebuild set %d", i)
			}
		}
	})
}
