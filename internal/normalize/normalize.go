// Package normalize produces stable byte streams from downloaded statute
// XML so that fingerprints only change when content changes. The feeds are
// inconsistent about byte-order marks, line endings and indentation between
// publishes.
package normalize

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Normalize strips the BOM, converts CRLF to LF and re-serializes the XML
// with two-space indentation and a fixed declaration. When the document
// cannot be re-serialized the cleaned (BOM-free, LF-only) bytes are returned
// together with the error; callers may proceed with them best-effort.
func Normalize(data []byte) ([]byte, error) {
	cleaned := Clean(data)

	pretty, err := reindent(cleaned)
	if err != nil {
		return cleaned, fmt.Errorf("reindent XML: %w", err)
	}
	return pretty, nil
}

// Clean strips a UTF-8 byte-order mark and unifies line endings to LF.
func Clean(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	return bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
}

// reindent round-trips the document through the XML tokenizer, dropping
// inter-element whitespace so the encoder's indentation is authoritative.
func reindent(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			// Replaced by the fixed header.
			continue
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
		}

		if err := enc.EncodeToken(tok); err != nil {
			return nil, err
		}
	}

	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
