package value

import "math"

// hashMod is INT32_MAX from the original source
// (horse64/valuecontentstruct.c): every hash component is folded
// modulo this bound, and the final result never exceeds it.
const hashMod = math.MaxInt32

// Hash computes a deterministic, platform-independent hash that agrees
// with Equal (spec.md §4.8 "Hashing"). Containers delegate to their
// GCObject's own cached Hash(); everything else is computed fresh each
// call, matching the original's depth-capped recursive hash
// (_valuecontent_Hash_Do), which corelang flattens into the two
// recursion points that actually occur (a GC value's own Hash() method
// recurses into HashListElements for its elements). A float with an
// integral value hashes as the equal int, since Equal treats the two as
// equal.
func Hash(v Value) uint32 {
	switch v.Kind {
	case None, UnspecifiedKwarg:
		return 0
	case Int:
		return uint32(((v.I % hashMod) + hashMod) % hashMod)
	case Float:
		if v.F == math.Trunc(v.F) && math.Abs(v.F) < 1<<63 {
			return Hash(IntValue(int64(v.F)))
		}
		return hashFloat(v.F)
	case Bool:
		if v.B {
			return 1
		}
		return 0
	case ShortString, ConstString:
		return hashRunes(v.Str)
	case ShortBytes, ConstBytes:
		return hashBytes(v.Bytes)
	case FuncRef, ClassRef, ErrorValue:
		return uint32(((v.I % hashMod) + hashMod) % hashMod)
	case GCVal:
		if v.GC == nil {
			return 0
		}
		return v.GC.Hash()
	default:
		return 0
	}
}

// hashFloat splits a float into fraction and exponent via math.Frexp
// exactly as the original C `frexp`-based hash does (spec.md §4.8,
// SPEC_FULL.md §4 "Hash algorithm constants"): f = frac * 2^exp, frac
// in [0.5, 1), mapped to the 32-bit range and summed with the exponent.
func hashFloat(f float64) uint32 {
	frac, exp := math.Frexp(f)
	scaled := int64(frac * 2147483648.0)
	if scaled < 0 {
		scaled = -scaled
	}
	h := (int64(exp) + scaled) % hashMod
	if h < 0 {
		h += hashMod
	}
	return uint32(h)
}

// HashRunes exposes the string-content hash fold to gcheap, so a GC
// string's cached Hash() can reuse exactly the same algorithm as a
// short/const string (spec.md: "short-string, const-prealloc string,
// and GC string are interoperable").
func HashRunes(runes []rune) uint32 { return hashRunes(runes) }

// HashBytes is HashRunes's counterpart for byte content.
func HashBytes(b []byte) uint32 { return hashBytes(b) }

func hashRunes(s []rune) uint32 {
	var h uint64
	n := len(s)
	upto := n
	if upto > ShortLen {
		upto = ShortLen
	}
	for i := 0; i < upto; i++ {
		h = (h + uint64(s[i])) % hashMod
	}
	h = (h + uint64(n)%hashMod) % hashMod
	if h == 0 {
		h = 1
	}
	return uint32(h)
}

func hashBytes(b []byte) uint32 {
	var h uint64
	n := len(b)
	upto := n
	if upto > ShortLen {
		upto = ShortLen
	}
	for i := 0; i < upto; i++ {
		h = (h + uint64(b[i])) % hashMod
	}
	h = (h + uint64(n)%hashMod) % hashMod
	if h == 0 {
		h = 1
	}
	return uint32(h)
}

// HashListElements folds over the first 32 elements of a list, matching
// the original source's list hash (SPEC_FULL.md §4): mutable elements
// among them add nothing to the element sum, while the count added at
// the end covers every inspected element, mutable ones included. A
// result of 0 is bumped to 1. Exposed for gcheap's list Hash()
// implementation.
func HashListElements(elems []Value) uint32 {
	var h uint64
	upto := len(elems)
	if upto > 32 {
		upto = 32
	}
	for i := 0; i < upto; i++ {
		if elems[i].IsMutable() {
			continue
		}
		h = (h + uint64(Hash(elems[i]))) % hashMod
	}
	h = (h + uint64(upto)%hashMod) % hashMod
	if h == 0 {
		h = 1
	}
	return uint32(h)
}
