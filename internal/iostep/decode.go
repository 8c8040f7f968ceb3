package iostep

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/gnames/gnlib"
)

// decodeString resolves the control directives of STEP strings:
// \\ (backslash), \S\c (upper half of ISO 8859), \P?\ (code page switch),
// \X\hh (ISO 8859-1 byte), \X2\...\X0\ (UTF-16) and \X4\...\X0\ (UTF-32).
// Bytes that do not form valid UTF-8 are repaired.
func decodeString(raw []byte) string {
	if !hasBackslash(raw) {
		return fixUTF8(raw)
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		rest := raw[i:]
		switch {
		case hasPrefix(rest, `\\`):
			sb.WriteByte('\\')
			i += 2
		case hasPrefix(rest, `\S\`) && len(rest) > 3:
			sb.WriteRune(rune(rest[3]) + 128)
			i += 4
		case hasPrefix(rest, `\P`) && len(rest) > 3 && rest[3] == '\\':
			i += 4
		case hasPrefix(rest, `\X2\`):
			n, s := decodeWide(rest[4:], 4)
			sb.WriteString(s)
			i += 4 + n
		case hasPrefix(rest, `\X4\`):
			n, s := decodeWide(rest[4:], 8)
			sb.WriteString(s)
			i += 4 + n
		case hasPrefix(rest, `\X\`) && len(rest) > 4:
			if b, err := strconv.ParseUint(string(rest[3:5]), 16, 8); err == nil {
				sb.WriteRune(rune(b))
				i += 5
				continue
			}
			sb.WriteByte(c)
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return fixUTF8([]byte(sb.String()))
}

// decodeWide decodes hex groups of the given width until the \X0\
// terminator. It returns the number of consumed bytes, terminator
// included.
func decodeWide(src []byte, width int) (int, string) {
	var units []uint16
	var runes []rune
	i := 0
	for i < len(src) {
		if hasPrefix(src[i:], `\X0\`) {
			i += 4
			break
		}
		if i+width > len(src) {
			break
		}
		v, err := strconv.ParseUint(string(src[i:i+width]), 16, 32)
		if err != nil {
			break
		}
		if width == 4 {
			units = append(units, uint16(v))
		} else {
			runes = append(runes, rune(v))
		}
		i += width
	}
	if width == 4 {
		return i, string(utf16.Decode(units))
	}
	return i, string(runes)
}

func fixUTF8(b []byte) string {
	s := string(b)
	if utf8.ValidString(s) {
		return s
	}
	return gnlib.FixUtf8(s)
}

func hasBackslash(b []byte) bool {
	for _, c := range b {
		if c == '\\' {
			return true
		}
	}
	return false
}

func hasPrefix(b []byte, p string) bool {
	return len(b) >= len(p) && string(b[:len(p)]) == p
}
