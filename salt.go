package lesspass

// BuildSalt assembles the PBKDF2 salt from a site identifier, a login
// identifier, and a counter. The result is the concatenation of the UTF-8
// bytes of site, the UTF-8 bytes of login, and the lowercase hexadecimal
// ASCII encoding of counter with no leading zeros and no "0x" prefix. There
// are no field delimiters; this exact, undelimited layout is required for
// interoperability with other LessPass implementations.
//
// For counter == 0 the hex contribution is empty, not "0" -- the digit loop
// below simply never runs. This matches the reference implementation, which
// emits digits by repeatedly shifting off the low nibble until the value is
// zero; a zero value starts out having nothing left to shift.
func BuildSalt(site, login string, counter uint32) []byte {
	out := make([]byte, 0, len(site)+len(login)+8)
	out = append(out, site...)
	out = append(out, login...)
	return appendHex(out, counter)
}

const hexDigits = "0123456789abcdef"

// appendHex appends the minimal-width lowercase hex encoding of v to out,
// with no leading zeros, and returns the extended slice. It emits nothing
// for v == 0.
func appendHex(out []byte, v uint32) []byte {
	if v == 0 {
		return out
	}
	var buf [8]byte
	i := len(buf)
	for v != 0 {
		i--
		buf[i] = hexDigits[v&0xf]
		v >>= 4
	}
	return append(out, buf[i:]...)
}
