package slugify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Cool App", "cool-app"},
		{"punctuation stripped", "Acme.io — Ship Faster!", "acmeio-ship-faster"},
		{"whitespace collapsed", "  My   Cool\tApp  ", "my-cool-app"},
		{"hyphen runs collapsed", "foo--bar---baz", "foo-bar-baz"},
		{"leading and trailing hyphens trimmed", "-hello world-", "hello-world"},
		{"already a slug", "cool-app", "cool-app"},
		{"digits kept", "App 2 Go", "app-2-go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "cool-app", WithSuffix("cool-app", 0))
	assert.Equal(t, "cool-app-1", WithSuffix("cool-app", 1))
	assert.Equal(t, "cool-app-2", WithSuffix("cool-app", 2))
}
