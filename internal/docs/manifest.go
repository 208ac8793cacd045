// Package docs builds the documents manifest the PDF viewer loads.
package docs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const ManifestName = "manifest.json"

var ErrNotPDF = errors.New("not a pdf file")

type Document struct {
	Title string `json:"title"`
	File  string `json:"file"`
}

type Manifest struct {
	Documents []Document `json:"documents"`
}

// jsSpace is the whitespace set of an ECMAScript \s, which is wider than
// Go's ASCII-only \s.
const jsSpace = `[\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}]`

var (
	pdfExt      = regexp.MustCompile(`(?i)\.pdf$`)
	separators  = regexp.MustCompile(`[_-]+`)
	spaces      = regexp.MustCompile(jsSpace + `+`)
	copyCounter = regexp.MustCompile(jsSpace + `*\(` + jsSpace + `*\d+` + jsSpace + `*\)` + jsSpace + `*$`)
	edgeSpace   = regexp.MustCompile(`^` + jsSpace + `+|` + jsSpace + `+$`)
)

// IsPDF reports whether name carries a .pdf extension, any case.
func IsPDF(name string) bool { return pdfExt.MatchString(name) }

// TitleFromFilename turns "Gender_Roles-2019 (1).pdf" into "Gender Roles 2019".
func TitleFromFilename(name string) string {
	base := pdfExt.ReplaceAllString(name, "")
	base = separators.ReplaceAllString(base, " ")
	base = spaces.ReplaceAllString(base, " ")
	base = copyCounter.ReplaceAllString(base, "")
	return edgeSpace.ReplaceAllString(base, "")
}

// SortNatural orders names case-insensitively with digit runs compared as
// numbers, so "doc 2" sorts before "doc 10".
func SortNatural(names []string) {
	c := collate.New(language.English, collate.Loose, collate.Numeric)
	c.SortStrings(names)
}

// Build returns the manifest for a list of file names; non-PDF names are skipped.
func Build(names []string) Manifest {
	files := make([]string, 0, len(names))
	for _, n := range names {
		if IsPDF(n) {
			files = append(files, n)
		}
	}
	SortNatural(files)
	m := Manifest{Documents: make([]Document, 0, len(files))}
	for _, f := range files {
		m.Documents = append(m.Documents, Document{Title: TitleFromFilename(f), File: f})
	}
	return m
}

// Scan lists regular PDF files directly inside dir.
func Scan(dir string) (Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Manifest{}, fmt.Errorf("read documents dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return Build(names), nil
}

// Encode renders the manifest with two-space indentation and a trailing newline.
func (m Manifest) Encode() ([]byte, error) {
	if m.Documents == nil {
		m.Documents = []Document{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(buf.Bytes()), nil
}

// unescapeLineSeparators writes U+2028 and U+2029 raw, as JSON.stringify
// does. encoding/json always escapes them.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if esc := b[i+1:]; len(esc) >= 5 && esc[0] == 'u' && string(esc[1:4]) == "202" && (esc[4] == '8' || esc[4] == '9') {
			out = utf8.AppendRune(out, rune(0x2020+int(esc[4]-'0')))
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}

// Write scans dir and writes dir/manifest.json atomically.
func Write(dir string) (Manifest, error) {
	m, err := Scan(dir)
	if err != nil {
		return Manifest{}, err
	}
	b, err := m.Encode()
	if err != nil {
		return Manifest{}, err
	}
	tmp, err := os.CreateTemp(dir, ".manifest-*.json")
	if err != nil {
		return Manifest{}, fmt.Errorf("write manifest: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return Manifest{}, fmt.Errorf("write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return Manifest{}, err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, ManifestName)); err != nil {
		os.Remove(tmp.Name())
		return Manifest{}, fmt.Errorf("write manifest: %w", err)
	}
	return m, nil
}

// Read loads an existing manifest.json from dir.
func Read(dir string) (Manifest, error) {
	b, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Documents == nil {
		m.Documents = []Document{}
	}
	return m, nil
}
