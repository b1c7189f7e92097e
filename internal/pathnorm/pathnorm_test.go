package pathnorm_test

import (
	"strings"
	"testing"

	"github.com/efifs/corefs/internal/pathnorm"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_Basic(t *testing.T) {
	cases := map[string]string{
		"/":                  "/",
		"":                   "/",
		"/a/b/c":             "/a/b/c",
		"/a//b///c":          "/a/b/c",
		"/a/./b":             "/a/b",
		"/a/../b":            "/b",
		"/a/b/..":            "/a",
		"/../a":              "/a",
		"a/b":                "/a/b",
		"/dir1/sub/hello.bin": "/dir1/sub/hello.bin",
	}

	for in, expected := range cases {
		assert.Equal(t, expected, pathnorm.Normalize(in), "normalizing %q", in)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	// Invariant #1.
	inputs := []string{"/", "/a/b/../c", "a/./b/../../c", "/../../../x", "////"}
	for _, in := range inputs {
		once := pathnorm.Normalize(in)
		twice := pathnorm.Normalize(once)
		assert.Equal(t, once, twice, "normalize(normalize(%q))", in)
	}
}

func TestNormalize_AlwaysStartsWithSlash(t *testing.T) {
	// Invariant #2.
	inputs := []string{"/x", "/a/b/c", "/../../x", "/"}
	for _, in := range inputs {
		assert.True(t, strings.HasPrefix(pathnorm.Normalize(in), "/"))
	}
}

func TestNormalize_TruncatesOverflow(t *testing.T) {
	longSegment := strings.Repeat("a", pathnorm.MaxLen+50)
	result := pathnorm.Normalize("/" + longSegment)

	assert.LessOrEqual(t, len(result), pathnorm.MaxLen)
	assert.Equal(t, "/", result, "single oversized segment has no boundary to cut at")
}

func TestNormalize_TruncatesAtSegmentBoundary(t *testing.T) {
	segment := strings.Repeat("b", 50)
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteByte('/')
		sb.WriteString(segment)
	}

	result := pathnorm.Normalize(sb.String())
	assert.LessOrEqual(t, len(result), pathnorm.MaxLen)
	assert.False(t, strings.HasSuffix(result, "b/"))
	if result != "/" {
		assert.True(t, strings.HasPrefix(sb.String(), result))
	}
}
