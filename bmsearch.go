package main

// buildBoyerMoore constructs delta1 (bad-character) and delta2
// (good-suffix) tables for plain-text search, per spec.md §4.D, for the
// pattern in the orientation given. Forward search uses the tables built
// from the pattern itself; backward search builds a second set from the
// reversed pattern at scan time (see ScanBoyerMoore).
func (m *Match) buildBoyerMoore(pattern string, ignoreCase bool) {
	m.bmIgnore = ignoreCase
	n := len(pattern)
	m.delta2 = make([]int, n)

	for c := range m.delta1 {
		m.delta1[c] = n
	}
	for i := 0; i < n-1; i++ {
		c := pattern[i]
		dist := n - 1 - i
		m.delta1[c] = dist
		if ignoreCase {
			m.delta1[lowerByte(c)] = dist
			m.delta1[upperByte(c)] = dist
		}
	}

	if ignoreCase {
		for i := range m.delta2 {
			m.delta2[i] = 1
		}
		return
	}

	suf := suffixLengths(pattern)
	for i := range m.delta2 {
		m.delta2[i] = n
	}
	j := 0
	for i := n - 1; i >= 0; i-- {
		if suf[i] == i+1 {
			for ; j < n-1-i; j++ {
				if m.delta2[j] == n {
					m.delta2[j] = n - 1 - i
				}
			}
		}
	}
	for i := 0; i < n-1; i++ {
		m.delta2[n-1-suf[i]] = n - 1 - i
	}
}

// suffixLengths computes, for each i, the length of the longest suffix of
// pattern ending at i that is also a suffix of pattern (the classic good-
// suffix preprocessing helper).
func suffixLengths(pattern string) []int {
	n := len(pattern)
	suf := make([]int, n)
	suf[n-1] = n
	g, f := n-1, 0
	for i := n - 2; i >= 0; i-- {
		if i > g && suf[i+n-1-f] < i-g {
			suf[i] = suf[i+n-1-f]
		} else {
			if i < g {
				g = i
			}
			f = i
			for g >= 0 && pattern[g] == pattern[g+n-1-f] {
				g--
			}
			suf[i] = f - g
		}
	}
	return suf
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func eqByte(a, b byte, ignoreCase bool) bool {
	if ignoreCase {
		return lowerByte(a) == lowerByte(b)
	}
	return a == b
}

// ScanBoyerMoore searches text (already linearized from the buffer by the
// caller) for m.Pattern starting at fromIdx, scanning in dir (+1 forward,
// -1 backward), and returns the offset of the first match found. On a
// mismatch at pattern index i it advances by max(delta1[c], delta2[i]),
// where c is the text byte aligned with the pattern's last byte in the
// scan direction. It does not touch m.Groups (Scan records the match); a
// caller wanting the next match scans again from the end of this one.
func (m *Match) ScanBoyerMoore(text []byte, fromIdx, dir int) (idx int, ok bool) {
	pat := m.Pattern
	n := len(pat)
	if n == 0 || len(text) == 0 {
		return 0, false
	}

	if dir >= 0 {
		return bmScanForward(text, pat, fromIdx, m.delta1, m.delta2, m.bmIgnore)
	}
	rev := []byte(pat)
	for a, b := 0, n-1; a < b; a, b = a+1, b-1 {
		rev[a], rev[b] = rev[b], rev[a]
	}
	var rm Match
	rm.buildBoyerMoore(string(rev), m.bmIgnore)
	return bmScanBackward(text, pat, fromIdx, rm.delta1, rm.delta2, m.bmIgnore)
}

func bmScanForward(text []byte, pat string, from int, delta1 [256]int, delta2 []int, ignoreCase bool) (int, bool) {
	n := len(pat)
	i := from + n - 1
	for i < len(text) {
		j := n - 1
		k := i
		for j >= 0 && eqByte(text[k], pat[j], ignoreCase) {
			j--
			k--
		}
		if j < 0 {
			return k + 1, true
		}
		adv := delta1[text[i]]
		if delta2[j] > adv {
			adv = delta2[j]
		}
		i += adv
	}
	return 0, false
}

func bmScanBackward(text []byte, pat string, from int, delta1 [256]int, delta2 []int, ignoreCase bool) (int, bool) {
	n := len(pat)
	i := from - n
	for i >= 0 {
		j := 0
		k := i
		for j < n && eqByte(text[k], pat[j], ignoreCase) {
			j++
			k++
		}
		if j == n {
			return i, true
		}
		adv := delta1[text[i]]
		if delta2[n-1-j] > adv {
			adv = delta2[n-1-j]
		}
		i -= adv
	}
	return 0, false
}
