package keyboard

// Stroke returns the codes for one press and release of a key
func Stroke(code byte, extended bool) []byte {
	if extended {
		return []byte{CodeExtended, code, CodeExtended, Break(code)}
	}
	return []byte{code, Break(code)}
}

// Type returns the codes a keyboard sends when c is typed, wrapping in
// left shift when the character lives on the shifted plane
// Characters the layout cannot produce return nil
func (l *Layout) Type(c byte) []byte {
	code, shift, ok := l.CodeFor(c)
	if !ok {
		return nil
	}
	if !shift {
		return Stroke(code, false)
	}
	return []byte{CodeLeftShift, code, Break(code), Break(CodeLeftShift)}
}

// TypeString concatenates Type for every character of s, skipping unmappable ones
func (l *Layout) TypeString(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for i := 0; i < len(s); i++ {
		out = append(out, l.Type(s[i])...)
	}
	return out
}
