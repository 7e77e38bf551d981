package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrimaryCategory(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{
			name: "single category",
			raw:  `[{"category":"Engineering"}]`,
			want: "Engineering",
			ok:   true,
		},
		{
			name: "first of several wins",
			raw:  `[{"category":"Banking and Finance"},{"category":"Admin"}]`,
			want: "Banking and Finance",
			ok:   true,
		},
		{
			name: "extra fields tolerated",
			raw:  `[{"id":12,"category":"Information Technology","jobsCount":44}]`,
			want: "Information Technology",
			ok:   true,
		},
		{
			name: "empty string",
			raw:  "",
			want: UnknownCategory,
		},
		{
			name: "whitespace only",
			raw:  "   ",
			want: UnknownCategory,
		},
		{
			name: "empty list",
			raw:  "[]",
			want: UnknownCategory,
		},
		{
			name: "not json",
			raw:  "Engineering",
			want: UnknownCategory,
		},
		{
			name: "wrong shape",
			raw:  `{"category":"Engineering"}`,
			want: UnknownCategory,
		},
		{
			name: "missing category key",
			raw:  `[{"name":"Engineering"}]`,
			want: UnknownCategory,
		},
		{
			name: "null category",
			raw:  `[{"category":null}]`,
			want: UnknownCategory,
		},
		{
			name: "non-string category",
			raw:  `[{"category":42}]`,
			want: UnknownCategory,
		},
		{
			name: "blank category",
			raw:  `[{"category":"  "}]`,
			want: UnknownCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractPrimaryCategory(tt.raw)
			assert.Equal(t, tt.want, result.Category)
			assert.Equal(t, tt.ok, result.Ok)
		})
	}
}
