package codec

import (
	orio "github.com/NightEule5/orio-sub000"
)

// ReadUTF8Line reads and consumes one line, stripping a trailing "\r\n" or
// "\n". If no newline is found, it consumes and returns everything
// remaining.
func ReadUTF8Line(b *orio.Buffer) (string, bool, error) {
	return readLine(b, false)
}

// ReadUTF8LineInclusive behaves like ReadUTF8Line but keeps the
// terminator in the returned string.
func ReadUTF8LineInclusive(b *orio.Buffer) (string, bool, error) {
	return readLine(b, true)
}

func readLine(b *orio.Buffer, inclusive bool) (string, bool, error) {
	idx, found := b.Find('\n')
	if !found {
		s, err := ReadUTF8ToEnd(b)
		return s, false, err
	}
	lineLen := idx + 1
	buf := make([]byte, lineLen)
	b.ReadSlice(buf)
	if inclusive {
		return string(buf), true, nil
	}
	end := len(buf) - 1
	if end > 0 && buf[end-1] == '\r' {
		end--
	}
	return string(buf[:end]), true, nil
}
