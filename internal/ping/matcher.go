package ping

// Matcher reports whether a pattern occurs in the bytes written to it. It keeps
// only the KMP automaton state between writes, so matches spanning chunk
// boundaries are found without buffering the body.
type Matcher struct {
	pattern []byte
	fail    []int
	state   int
	found   bool
}

func NewMatcher(pattern string) *Matcher {
	p := []byte(pattern)
	m := &Matcher{pattern: p, fail: make([]int, len(p)), found: len(p) == 0}

	k := 0
	for i := 1; i < len(p); i++ {
		for k > 0 && p[i] != p[k] {
			k = m.fail[k-1]
		}
		if p[i] == p[k] {
			k++
		}
		m.fail[i] = k
	}
	return m
}

func (m *Matcher) Write(b []byte) (int, error) {
	if m.found {
		return len(b), nil
	}
	for _, c := range b {
		for m.state > 0 && m.pattern[m.state] != c {
			m.state = m.fail[m.state-1]
		}
		if m.pattern[m.state] == c {
			m.state++
		}
		if m.state == len(m.pattern) {
			m.found = true
			break
		}
	}
	return len(b), nil
}

func (m *Matcher) Found() bool { return m.found }
