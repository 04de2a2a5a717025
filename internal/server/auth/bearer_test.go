package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc.def.ghi":   "abc.def.ghi",
		"bearer abc":           "abc",
		"BEARER   abc  ":       "abc",
		"Basic dXNlcjpwYXNz":   "",
		"Bearer":               "",
		"":                     "",
		"abc.def.ghi":          "",
		"Bearerabc":            "",
		"  Bearer tok ":        "tok",
	}
	for in, want := range tests {
		assert.Equal(t, want, BearerToken(in), "header %q", in)
	}
}
