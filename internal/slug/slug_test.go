package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"Already-a-slug", "already-a-slug"},
		{"Café au Lait", "cafe-au-lait"},
		{"über alles", "uber-alles"},
		{"2024 Year In Review", "2024-year-in-review"},
		{"___", "untitled"},
		{"", "untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	s := Make("Some Fancy Title: Part 2")
	assert.Equal(t, s, Make(s))
}
