package orio

import "unicode/utf8"

// Find returns the smallest logical byte index at which pattern occurs, or
// ok=false if it does not occur. pattern may be a byte, a []byte, a rune,
// a []rune (matches the first occurrence of any of them), or a
// func(byte) bool / func(rune) bool predicate. The search iterates the
// ring's readable slices in order, carrying partial-match state across
// segment boundaries so a match or a multi-byte rune straddling a
// boundary is still found.
func (b *Buffer) Find(pattern interface{}) (int, bool) {
	switch p := pattern.(type) {
	case byte:
		return b.findByte(p)
	case []byte:
		return b.findSlice(p)
	case rune:
		return b.findSlice([]byte(string(p)))
	case []rune:
		return b.findAnyRune(p)
	case func(byte) bool:
		return b.findByteFunc(p)
	case func(rune) bool:
		return b.findRuneFunc(p)
	default:
		return 0, false
	}
}

func (b *Buffer) findByte(target byte) (int, bool) {
	idx := 0
	it := b.ring.Slices()
	for {
		s, ok := it.Next()
		if !ok {
			return 0, false
		}
		for i, v := range s {
			if v == target {
				return idx + i, true
			}
		}
		idx += len(s)
	}
}

func (b *Buffer) findByteFunc(pred func(byte) bool) (int, bool) {
	idx := 0
	it := b.ring.Slices()
	for {
		s, ok := it.Next()
		if !ok {
			return 0, false
		}
		for i, v := range s {
			if pred(v) {
				return idx + i, true
			}
		}
		idx += len(s)
	}
}

// findSlice searches for pattern across segment boundaries by holding the
// longest suffix of already-scanned bytes that could still extend into a
// match (bounded by len(pattern)-1 bytes), avoiding a full materialization
// of the buffer.
func (b *Buffer) findSlice(pattern []byte) (int, bool) {
	if len(pattern) == 0 {
		return 0, true
	}
	carry := make([]byte, 0, len(pattern))
	base := 0 // logical index of carry[0]
	idx := 0
	it := b.ring.Slices()
	for {
		s, ok := it.Next()
		if !ok {
			return 0, false
		}
		window := append(carry, s...)
		if off := indexOf(window, pattern); off >= 0 {
			return base + off, true
		}
		// keep only the trailing len(pattern)-1 bytes as carry for the
		// next slice.
		keep := len(pattern) - 1
		if keep > len(window) {
			keep = len(window)
		}
		base = idx + len(s) - keep
		carry = append(carry[:0], window[len(window)-keep:]...)
		idx += len(s)
	}
}

func indexOf(haystack, needle []byte) int {
	if len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func (b *Buffer) findAnyRune(runes []rune) (int, bool) {
	set := make(map[rune]bool, len(runes))
	for _, r := range runes {
		set[r] = true
	}
	return b.findRuneFunc(func(r rune) bool { return set[r] })
}

// findRuneFunc decodes UTF-8 across segment boundaries using a small
// rolling window (at most utf8.UTFMax bytes) to accumulate partial
// multi-byte sequences, per the partial-decode design in §9. An invalid
// sequence terminates the search with ok=false.
func (b *Buffer) findRuneFunc(pred func(rune) bool) (int, bool) {
	var window [utf8.UTFMax]byte
	wlen := 0
	idx := 0     // logical index of the first byte in window
	pos := idx   // logical index of the next unread byte overall
	it := b.ring.Slices()
	for {
		s, ok := it.Next()
		if !ok {
			break
		}
		p := 0
		for p < len(s) {
			n := copy(window[wlen:], s[p:])
			wlen += n
			p += n
			for wlen > 0 {
				r, size := utf8.DecodeRune(window[:wlen])
				if r == utf8.RuneError && size <= 1 {
					if wlen < utf8.UTFMax && (p < len(s) || wlen < 4) {
						// may still be a valid sequence awaiting more
						// bytes; break to read more unless we're at the
						// very end of input with no more bytes coming.
						break
					}
					return 0, false
				}
				if pred(r) {
					return pos, true
				}
				pos += size
				copy(window[:], window[size:wlen])
				wlen -= size
			}
		}
		idx += len(s)
	}
	return 0, false
}
