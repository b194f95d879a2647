// Package textenc detects the text encoding of stored documents and converts
// legacy single-byte content to UTF-8 before it is fed to the language model.
package textenc

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is reported when detection yields nothing, e.g. for an
// empty file. Callers treat it the same as a positive detection.
const DefaultEncoding = "UTF-8"

// detectWindow bounds how many bytes are fed to the detector. Tenant
// documents are small; 64 KiB is more than enough for a confident guess.
const detectWindow = 64 * 1024

// DetectEncoding reads a bounded prefix of r and returns the best-guess
// charset name. An empty or undecidable input returns DefaultEncoding rather
// than an error.
func DetectEncoding(r io.Reader) (string, error) {
	buf, err := io.ReadAll(bufio.NewReader(io.LimitReader(r, detectWindow)))
	if err != nil {
		return "", err
	}
	return DetectBytes(buf), nil
}

// DetectBytes returns the best-guess charset name for data.
func DetectBytes(data []byte) string {
	if len(data) == 0 {
		return DefaultEncoding
	}
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result.Charset == "" {
		return DefaultEncoding
	}
	return result.Charset
}

// DecodeText converts raw document bytes to a UTF-8 string using the detected
// encoding. Unknown charsets fall back to a lossless Latin-1 reading so a
// decoding mismatch degrades output instead of aborting the evaluation.
func DecodeText(data []byte) string {
	charset := DetectBytes(data)
	switch {
	case strings.EqualFold(charset, "UTF-8"):
		if utf8.Valid(data) {
			return string(data)
		}
	case strings.EqualFold(charset, "UTF-16LE"):
		if out, err := decode(data, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()); err == nil {
			return out
		}
	case strings.EqualFold(charset, "UTF-16BE"):
		if out, err := decode(data, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()); err == nil {
			return out
		}
	case strings.EqualFold(charset, "windows-1252"):
		if out, err := decode(data, charmap.Windows1252.NewDecoder()); err == nil {
			return out
		}
	}
	if out, err := decode(data, charmap.ISO8859_1.NewDecoder()); err == nil {
		return out
	}
	return string(data)
}

func decode(data []byte, t transform.Transformer) (string, error) {
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
