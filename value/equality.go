package value

// Equal implements value equality (spec.md §4.8 "Equality").
func Equal(a, b Value) bool {
	return equalWith(a, b, nil)
}

func equalWith(a, b Value, seen map[uintptr]uintptr) bool {
	if a.isNumber() && b.isNumber() {
		if a.Kind == Float || b.Kind == Float {
			return a.asFloat() == b.asFloat()
		}
		return a.I == b.I
	}
	if a.IsString() && b.IsString() {
		return string(stringRunes(a)) == string(stringRunes(b))
	}
	if a.IsBytes() && b.IsBytes() {
		return bytesEqual(bytesContent(a), bytesContent(b))
	}
	if a.Kind == Bool && b.Kind == Bool {
		return a.B == b.B
	}
	if a.Kind == None && b.Kind == None {
		return true
	}
	if a.Kind == UnspecifiedKwarg && b.Kind == UnspecifiedKwarg {
		return true
	}
	if a.Kind == GCVal && b.Kind == GCVal && a.GC != nil && b.GC != nil {
		if a.GC.HeapKind() == b.GC.HeapKind() {
			switch a.GC.HeapKind() {
			case "list", "set", "map", "object-instance":
				return equalContainers(a, b, seen)
			}
		}
	}
	if a.Kind == FuncRef && b.Kind == FuncRef {
		return a.I == b.I
	}
	if a.Kind == ClassRef && b.Kind == ClassRef {
		return a.I == b.I
	}
	if a.Kind == ErrorValue && b.Kind == ErrorValue {
		return a.I == b.I && a.ErrMessage == b.ErrMessage
	}
	return false
}

func stringRunes(v Value) []rune {
	if v.Kind == GCVal {
		if sl, ok := v.GC.(StringLike); ok {
			return sl.StringRunes()
		}
		return nil
	}
	return v.Str
}

func bytesContent(v Value) []byte {
	if v.Kind == GCVal {
		if bl, ok := v.GC.(BytesLike); ok {
			return bl.ByteContent()
		}
		return nil
	}
	return v.Bytes
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// equalContainers performs the cycle-safe structural comparison for
// list/set/map/object-instance GC values, resolving Open Question #1
// (SPEC_FULL.md §4): the original C source asserts unimplemented for
// list and map bodies. seen maps one object's identity to its paired
// counterpart's identity so a re-encountered pair must match the same
// counterpart to succeed (a cycle that closes consistently on both
// sides); lazily allocated since most comparisons never recurse into a
// cycle.
func equalContainers(a, b Value, seen map[uintptr]uintptr) bool {
	g1, g2 := a.GC, b.GC
	if g1.Identity() == g2.Identity() {
		return true
	}
	if seen == nil {
		seen = make(map[uintptr]uintptr)
	}
	if paired, ok := seen[g1.Identity()]; ok {
		return paired == g2.Identity()
	}
	seen[g1.Identity()] = g2.Identity()

	switch g1.HeapKind() {
	case "list":
		l1, ok1 := g1.(ListLike)
		l2, ok2 := g2.(ListLike)
		if !ok1 || !ok2 || l1.Len() != l2.Len() {
			return false
		}
		for i := 0; i < l1.Len(); i++ {
			if !equalWith(l1.ListElement(i), l2.ListElement(i), seen) {
				return false
			}
		}
		return true
	case "set":
		s1, ok1 := g1.(SetLike)
		s2, ok2 := g2.(SetLike)
		if !ok1 || !ok2 || s1.Len() != s2.Len() {
			return false
		}
		members2 := s2.SetMembers()
		for _, m1 := range s1.SetMembers() {
			found := false
			for _, m2 := range members2 {
				if equalWith(m1, m2, seen) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case "map":
		m1, ok1 := g1.(MapLike)
		m2, ok2 := g2.(MapLike)
		if !ok1 || !ok2 || m1.Len() != m2.Len() {
			return false
		}
		pairs2 := m2.MapPairs()
		for _, p1 := range m1.MapPairs() {
			found := false
			for _, p2 := range pairs2 {
				if equalWith(p1.Key, p2.Key, seen) && equalWith(p1.Val, p2.Val, seen) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case "object-instance":
		o1, ok1 := g1.(ObjectLike)
		o2, ok2 := g2.(ObjectLike)
		if !ok1 || !ok2 || o1.ClassID() != o2.ClassID() {
			return false
		}
		attrs1, attrs2 := o1.Attributes(), o2.Attributes()
		if len(attrs1) != len(attrs2) {
			return false
		}
		for i := range attrs1 {
			if !equalWith(attrs1[i], attrs2[i], seen) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
