package opusmeta

// Lowercase is a comment key whose payload is guaranteed to be ASCII
// lowercase. Normalization happens once, at construction, so the map
// operations on Tag never re-normalize.
type Lowercase struct {
	s string
}

// ToLowercase builds a Lowercase key, lowering ASCII uppercase letters if
// necessary. Already-lowercase input is passed through without copying.
// Only ASCII letters are folded; multi-byte runes pass through untouched.
func ToLowercase(s string) Lowercase {
	if isASCIILower(s) {
		return Lowercase{s: s}
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return Lowercase{s: string(b)}
}

// AsLowercase wraps s without modification. Returns false if s contains
// ASCII uppercase letters.
func AsLowercase(s string) (Lowercase, bool) {
	if !isASCIILower(s) {
		return Lowercase{}, false
	}
	return Lowercase{s: s}, true
}

// String returns the wrapped key.
func (l Lowercase) String() string {
	return l.s
}

func isASCIILower(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return false
		}
	}
	return true
}
