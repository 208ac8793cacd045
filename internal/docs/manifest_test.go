package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleFromFilename(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{"Gender_Roles-2019.pdf", "Gender Roles 2019"},
		{"report (1).PDF", "report"},
		{"a__b--c   d.pdf", "a b c d"},
		{"  spaced  .pdf", "spaced"},
		{"Volume (2) notes.pdf", "Volume (2) notes"},
		{"no-extension", "no extension"},
		{"Trauma\u00a0Guide\u3000(3).pdf", "Trauma Guide"},
		{"\ufeffIntro\u2003Notes.pdf", "Intro Notes"},
	} {
		assert.Equal(t, tc.want, TitleFromFilename(tc.in), tc.in)
	}
}

func TestBuild_NaturalOrderAndFilter(t *testing.T) {
	m := Build([]string{"doc10.pdf", "Doc2.pdf", "doc1.pdf", "notes.txt", "alpha.PDF"})
	want := Manifest{Documents: []Document{
		{Title: "alpha", File: "alpha.PDF"},
		{Title: "doc1", File: "doc1.pdf"},
		{Title: "Doc2", File: "Doc2.pdf"},
		{Title: "doc10", File: "doc10.pdf"},
	}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_Format(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b_file.pdf", "a-file.pdf", "skip.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("%PDF-1.4"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	m, err := Write(dir)
	require.NoError(t, err)
	assert.Len(t, m.Documents, 2)

	b, err := os.ReadFile(filepath.Join(dir, ManifestName))
	require.NoError(t, err)
	assert.Equal(t, `{
  "documents": [
    {
      "title": "a file",
      "file": "a-file.pdf"
    },
    {
      "title": "b file",
      "file": "b_file.pdf"
    }
  ]
}
`, string(b))

	back, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestEncode_LineSeparatorsStayRaw(t *testing.T) {
	m := Manifest{Documents: []Document{
		{Title: "a\u2028b", File: `back\u2028slash.pdf`},
		{Title: "c\u2029d", File: "c\u2029d.pdf"},
	}}
	b, err := m.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(b), "\"title\": \"a\u2028b\"")
	assert.Contains(t, string(b), `"file": "back\\u2028slash.pdf"`)
	assert.Contains(t, string(b), "\"c\u2029d.pdf\"")
	assert.NotContains(t, string(b), `\u2029`)
}

func TestWrite_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	m, err := Write(dir)
	require.NoError(t, err)
	assert.Empty(t, m.Documents)
	b, err := os.ReadFile(filepath.Join(dir, ManifestName))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"documents\": []\n}\n", string(b))
}

func TestScan_MissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
