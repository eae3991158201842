package labsummary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}\n", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```JSON {\"a\":1}```", `{"a":1}`},
		{"```\n{\"a\":1}\n```\n", `{"a":1}`},
		{"```json\n{\"a\":1}", `{"a":1}`},
		{"Here you go ```{}```", "Here you go ```{}```"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, stripCodeFences(c.in), c.in)
	}
}
