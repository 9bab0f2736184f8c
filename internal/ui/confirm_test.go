package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmFrom(t *testing.T) {
	cases := map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		" yes \n": true,
		"n\n":     false,
		"\n":      false,
		"":        false,
		"yep\n":   false,
	}
	for in, want := range cases {
		var out bytes.Buffer
		got := ConfirmFrom(strings.NewReader(in), &out, "Allow?")
		assert.Equal(t, want, got, "input %q", in)
		assert.Contains(t, out.String(), "Allow?")
		assert.Contains(t, out.String(), "[y/N]")
	}
}

func TestDangerBoxContainsContent(t *testing.T) {
	assert.Contains(t, DangerBox("private key: 0xabc"), "private key: 0xabc")
	assert.NotEmpty(t, DangerBox(""))
}

func TestSpinnerWritesAndStops(t *testing.T) {
	var out syncBuffer
	s := NewSpinnerTo(&out, "loading supply")
	s.Start()
	s.StopWithMsg("done")
	assert.Contains(t, out.String(), "loading supply")
	assert.True(t, strings.HasSuffix(out.String(), "done\n"))
}
