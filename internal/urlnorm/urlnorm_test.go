package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEquivalence(t *testing.T) {
	a, err := Normalize("https://Www.Example.com/path/")
	require.NoError(t, err)
	b, err := Normalize("http://example.com/path")
	require.NoError(t, err)
	assert.Equal(t, a, b, "www/scheme/trailing-slash variants must collide")

	c, err := Normalize("https://example.com/path2")
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different paths must not collide")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "https://example.com", "example.com"},
		{"bare domain", "example.com", "example.com"},
		{"port ignored by Hostname", "https://example.com:443/", "example.com"},
		{"query and fragment dropped", "https://example.com/p?a=1#top", "example.com/p"},
		{"deep path trailing slash", "https://www.foo.dev/a/b/", "foo.dev/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "https://"} {
		_, err := Normalize(in)
		assert.Error(t, err, "input %q", in)
	}
}
