package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanStripsDecoration(t *testing.T) {
	cases := map[string]string{
		"  Python  ":    "python",
		"• React.js":    "react.js",
		"(TypeScript)":  "typescript",
		"C++":           "c++",
		"C#":            "c#",
		"Node.js":       "node.js",
		"  ":            "",
		"REST   APIs":   "rest apis",
		"'PostgreSQL',": "postgresql",
	}
	for raw, want := range cases {
		assert.Equal(t, want, Clean(raw), "Clean(%q)", raw)
	}
}

func TestNormalizeFoldsSynonyms(t *testing.T) {
	cases := map[string]string{
		"JS":                  "javascript",
		"ECMAScript":          "javascript",
		"K8s":                 "kubernetes",
		"Postgres":            "postgresql",
		"Amazon Web Services": "aws",
		"golang":              "go",
		"ReactJS":             "react",
		"sklearn":             "scikit-learn",
		"Rust":                "rust",
	}
	for raw, want := range cases {
		assert.Equal(t, want, Normalize(raw), "Normalize(%q)", raw)
	}
}

func TestNormalizeBlankInput(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   "))
}

func TestRelatedIsSymmetric(t *testing.T) {
	assert.True(t, Related("python", "django"))
	assert.True(t, Related("django", "python"))
	assert.True(t, Related("Docker", "K8s"))
	assert.True(t, Related("SQL", "Postgres"))
	assert.False(t, Related("python", "react"))
	assert.False(t, Related("", "python"))
	assert.False(t, Related("python", ""))
}
