package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormattersKeepPrefixAndMessage(t *testing.T) {
	cases := []struct {
		fn     func(string) string
		prefix string
	}{
		{Success, "✓"},
		{Warn, "⚠"},
		{Err, "✗"},
		{Info, "ℹ"},
		{Hint, "›"},
	}
	for _, c := range cases {
		out := c.fn("some message")
		assert.Contains(t, out, c.prefix)
		assert.Contains(t, out, "some message")
		assert.Contains(t, c.fn(""), c.prefix)
	}
}

func TestInfoDifferentFromHint(t *testing.T) {
	assert.NotEqual(t, Info("x"), Hint("x"))
}

func TestPlainFormattersContainInput(t *testing.T) {
	for _, fn := range []func(string) string{Addr, Val, Meta, ChainName} {
		assert.Contains(t, fn("0xf39F...2266"), "0xf39F...2266")
	}
}
