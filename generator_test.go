package forgeads_test

import (
	"testing"

	"github.com/forgeads/forgeads"
	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"a":"b"}`, `{"a":"b"}`},
		{"json fence", "```json\n{\"a\":\"b\"}\n```", `{"a":"b"}`},
		{"bare fence", "```\n{\"a\":\"b\"}\n```", `{"a":"b"}`},
		{"surrounding whitespace", "  {\"a\":\"b\"}\n", `{"a":"b"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, forgeads.StripCodeFence(tt.input))
		})
	}
}
