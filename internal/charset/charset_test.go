package charset

import (
	"math/rand"
	"testing"
)

func mustChar(t *testing.T, c rune) Set {
	t.Helper()
	s, err := Char(c)
	if err != nil {
		t.Fatalf("Char(%q): %v", c, err)
	}
	return s
}

func mustRange(t *testing.T, a, b rune) Set {
	t.Helper()
	s, err := NewRange(a, b)
	if err != nil {
		t.Fatalf("NewRange(%q, %q): %v", a, b, err)
	}
	return s
}

func TestChar_OutOfAlphabet(t *testing.T) {
	for _, c := range []rune{-1, 0x10000, 0x10FFFF} {
		if _, err := Char(c); err == nil {
			t.Errorf("Char(%#x) should fail", c)
		}
	}
}

func TestChar_Bounds(t *testing.T) {
	for _, c := range []rune{0, 'a', 0xFFFF} {
		s := mustChar(t, c)
		if !s.Contains(c) || s.Len() != 1 {
			t.Errorf("Char(%#x) = %v, want singleton", c, s)
		}
	}
}

func TestNewRange_SwapsBackwardBounds(t *testing.T) {
	s := mustRange(t, 'z', 'a')
	if !s.Equal(mustRange(t, 'a', 'z')) {
		t.Errorf("NewRange(z, a) = %v, want [a-z]", s)
	}
}

func TestUnion_CoalescesAdjacentRanges(t *testing.T) {
	s := Union(mustRange(t, 'a', 'm'), mustRange(t, 'n', 'z'))
	if got := len(s.Ranges()); got != 1 {
		t.Fatalf("Union([a-m], [n-z]) has %d ranges, want 1", got)
	}
	if !s.Equal(mustRange(t, 'a', 'z')) {
		t.Errorf("Union([a-m], [n-z]) = %v, want [a-z]", s)
	}
}

func TestUnion_KeepsGaps(t *testing.T) {
	s := Union(mustRange(t, 'a', 'c'), mustRange(t, 'x', 'z'))
	if got := len(s.Ranges()); got != 2 {
		t.Fatalf("Union([a-c], [x-z]) has %d ranges, want 2", got)
	}
	if s.Contains('m') {
		t.Error("gap code point should not be a member")
	}
}

func TestUnion_Identities(t *testing.T) {
	s := mustRange(t, '0', '9')
	if !Union(s, Empty()).Equal(s) {
		t.Error("union with empty should be identity")
	}
	if !Union(s, Any()).Equal(Any()) {
		t.Error("union with the full set should be the full set")
	}
}

func TestComplement_Involution(t *testing.T) {
	sets := []Set{
		Empty(),
		Any(),
		mustChar(t, 'a'),
		mustChar(t, 0),
		mustChar(t, 0xFFFF),
		Union(mustRange(t, 'a', 'f'), mustRange(t, '0', '5'), mustChar(t, 0xFFFF)),
	}
	for _, s := range sets {
		if got := Complement(Complement(s)); !got.Equal(s) {
			t.Errorf("double complement of %v = %v", s, got)
		}
	}
}

func TestComplement_EmptyAndFull(t *testing.T) {
	if !Complement(Empty()).Equal(Any()) {
		t.Error("complement of empty should be the full set")
	}
	if !Complement(Any()).Equal(Empty()) {
		t.Error("complement of the full set should be empty")
	}
}

func TestComplement_PartitionLaws(t *testing.T) {
	s := Union(mustRange(t, 'a', 'z'), mustChar(t, '_'))
	if !Union(s, Complement(s)).Equal(Any()) {
		t.Error("s ∪ ¬s should be the full set")
	}
	if !Intersect(s, Complement(s)).IsEmpty() {
		t.Error("s ∩ ¬s should be empty")
	}
}

func TestIntersect_Identities(t *testing.T) {
	s := mustRange(t, 'a', 'z')
	if !Intersect(s, Any()).Equal(s) {
		t.Error("intersection with the full set should be identity")
	}
	if !Intersect(s, Empty()).IsEmpty() {
		t.Error("intersection with empty should be empty")
	}
}

func TestIntersect_Overlap(t *testing.T) {
	got := Intersect(mustRange(t, 'a', 'n'), mustRange(t, 'h', 'z'))
	if !got.Equal(mustRange(t, 'h', 'n')) {
		t.Errorf("[a-n] ∩ [h-z] = %v, want [h-n]", got)
	}
}

func TestLen_InclusionExclusion(t *testing.T) {
	a := Union(mustRange(t, 'a', 'p'), mustRange(t, '0', '4'))
	b := Union(mustRange(t, 'h', 'z'), mustRange(t, '2', '8'))
	lhs := Union(a, b).Len()
	rhs := a.Len() + b.Len() - Intersect(a, b).Len()
	if lhs != rhs {
		t.Errorf("|a ∪ b| = %d, |a| + |b| - |a ∩ b| = %d", lhs, rhs)
	}
}

func TestContains_BinarySearch(t *testing.T) {
	s := Union(mustRange(t, 'a', 'f'), mustRange(t, 'p', 't'), mustChar(t, '!'))
	accepts := []rune{'a', 'c', 'f', 'p', 't', '!'}
	for _, c := range accepts {
		if !s.Contains(c) {
			t.Errorf("%v should contain %q", s, c)
		}
	}
	rejects := []rune{'g', 'o', 'u', ' ', 0, 0xFFFF}
	for _, c := range rejects {
		if s.Contains(c) {
			t.Errorf("%v should not contain %q", s, c)
		}
	}
}

func TestRanges_DefensiveCopy(t *testing.T) {
	s := mustRange(t, 'a', 'z')
	rs := s.Ranges()
	rs[0] = Range{Min: 0, Max: 0}
	if !s.Equal(mustRange(t, 'a', 'z')) {
		t.Error("mutating the Ranges() result must not change the set")
	}
}

func TestRandom_MemberOfSet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := Union(mustRange(t, 'a', 'f'), mustRange(t, '0', '9'))
	for i := 0; i < 200; i++ {
		c, ok := s.Random(rng)
		if !ok {
			t.Fatal("Random on a non-empty set returned no member")
		}
		if !s.Contains(c) {
			t.Fatalf("Random returned %q, not a member of %v", c, s)
		}
	}
	if _, ok := Empty().Random(rng); ok {
		t.Error("Random on the empty set should report no member")
	}
}

func TestEqual_CanonicalForm(t *testing.T) {
	a := Union(mustRange(t, 'a', 'm'), mustRange(t, 'k', 'z'))
	b := mustRange(t, 'a', 'z')
	if !a.Equal(b) {
		t.Errorf("canonicalisation should make %v equal %v", a, b)
	}
}
