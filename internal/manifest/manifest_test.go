package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidManifest(t *testing.T) {
	input := `
# web stack
fastapi==0.104.1
uvicorn==0.24.0

httpx==0.25.1
`
	packages, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	expected := []Package{
		{Name: "fastapi", Version: "0.104.1"},
		{Name: "uvicorn", Version: "0.24.0"},
		{Name: "httpx", Version: "0.25.1"},
	}
	if diff := cmp.Diff(expected, packages); diff != "" {
		t.Fatalf("unexpected packages (-want +got):\n%s", diff)
	}
}

func TestParseRejectsMalformedLines(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"missing separator", "fastapi 0.104.1", "not a name==version pair"},
		{"empty name", "==1.0.0", "empty package name"},
		{"empty version", "fastapi==", "empty version"},
		{"duplicate package", "httpx==0.25.1\nhttpx==0.24.0", "already declared on line 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseReportsLineNumbers(t *testing.T) {
	input := "# comment\nfastapi==0.104.1\nbroken line\n"
	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestSpecRoundTrip(t *testing.T) {
	p := Package{Name: "pydantic", Version: "2.5.0"}
	assert.Equal(t, "pydantic==2.5.0", p.Spec())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("python-dotenv==1.0.0\n"), 0o644))

	packages, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "python-dotenv", packages[0].Name)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
