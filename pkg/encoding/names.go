// Package encoding decodes material and shader names stored by the game in
// legacy text encodings.
package encoding

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names a text encoding used for shader names.
type Encoding int

const (
	UTF8 Encoding = iota
	// ShiftJIS is used by MTD names of the earliest and mid generations.
	ShiftJIS
	// UTF16 is little-endian UTF-16, honoring a byte order mark if present.
	UTF16
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf8"
	case ShiftJIS:
		return "shift_jis"
	case UTF16:
		return "utf16"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding parses an encoding name as accepted on the command line.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "_")) {
	case "", "utf8", "utf_8":
		return UTF8, nil
	case "shift_jis", "shiftjis", "sjis":
		return ShiftJIS, nil
	case "utf16", "utf_16", "utf16le", "utf_16le":
		return UTF16, nil
	default:
		return UTF8, fmt.Errorf("unknown text encoding %q", s)
	}
}

func (e Encoding) decoder() *encoding.Decoder {
	switch e {
	case ShiftJIS:
		return japanese.ShiftJIS.NewDecoder()
	case UTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	default:
		return encoding.Nop.NewDecoder()
	}
}

// ReadNames reads one name per line from r. Blank lines and lines starting
// with '#' are skipped.
func ReadNames(r io.Reader, e Encoding) ([]string, error) {
	scanner := bufio.NewScanner(transform.NewReader(r, e.decoder()))
	var names []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s names: %w", e, err)
	}
	return names, nil
}
