// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddLineJoinsContinuation(t *testing.T) {
	var b Buffer

	cmd, ok := b.AddLine(`select 1\`)
	assert.False(t, ok)
	assert.Empty(t, cmd)
	assert.Equal(t, 1, b.Pending())

	cmd, ok = b.AddLine("from dual")
	assert.True(t, ok)
	assert.Equal(t, "select 1\r\nfrom dual", cmd)
	assert.Equal(t, 0, b.Pending())
}

func TestAddLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "single line",
			lines: []string{".collections"},
			want:  []string{".collections"},
		},
		{
			name:  "two independent lines",
			lines: []string{"select 1", "select 2"},
			want:  []string{"select 1", "select 2"},
		},
		{
			name:  "three fragments",
			lines: []string{`a\`, `b\`, "c"},
			want:  []string{"a\r\nb\r\nc"},
		},
		{
			name:  "blank line",
			lines: []string{""},
			want:  nil,
		},
		{
			name:  "whitespace line",
			lines: []string{"   \t"},
			want:  nil,
		},
		{
			name:  "blank continued run",
			lines: []string{`\`, "  "},
			want:  nil,
		},
		{
			name:  "blank line keeps a pending command open",
			lines: []string{`select *\`, "", "\r", "from t"},
			want:  []string{"select *\r\nfrom t"},
		},
		{
			name:  "backslash followed by space is not a marker",
			lines: []string{`select 1\ `},
			want:  []string{`select 1\ `},
		},
		{
			name:  "crlf input",
			lines: []string{"select 1\\\r", "from dual\r"},
			want:  []string{"select 1\r\nfrom dual"},
		},
		{
			name:  "inner whitespace is kept",
			lines: []string{`  select *  \`, "  from c  "},
			want:  []string{"  select *  \r\n  from c  "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Buffer
			var got []string
			for _, l := range tt.lines {
				if cmd, ok := b.AddLine(l); ok {
					got = append(got, cmd)
				}
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 0, b.Pending())
		})
	}
}

func TestBlankLineLeavesFragmentsPending(t *testing.T) {
	var b Buffer
	b.AddLine(`partial\`)

	cmd, ok := b.AddLine("")
	assert.False(t, ok)
	assert.Empty(t, cmd)
	assert.Equal(t, 1, b.Pending())
}
