package note

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTopLine(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		top      string
		want     string
	}{
		{
			name:     "prepends to existing note",
			existing: "older status",
			top:      "12/01/2026",
			want:     "12/01/2026\nolder status",
		},
		{
			name:     "empty top line returns normalized existing",
			existing: "  a  line \n\n  another ",
			top:      "   ",
			want:     "a line\nanother",
		},
		{
			name:     "empty everything",
			existing: "",
			top:      "",
			want:     "",
		},
		{
			name:     "case insensitive de-dup",
			existing: "a\nb\nc",
			top:      "A",
			want:     "A\nb\nc",
		},
		{
			name:     "duplicate in middle removed",
			existing: "x\n12/01/2026\ny",
			top:      "12/01/2026",
			want:     "12/01/2026\nx\ny",
		},
		{
			name:     "whitespace collapsed before comparison",
			existing: "chased   supplier",
			top:      "chased supplier",
			want:     "chased supplier",
		},
		{
			name:     "crlf and cr endings normalized",
			existing: "one\r\ntwo\rthree",
			top:      "zero",
			want:     "zero\none\ntwo\nthree",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeTopLine(tt.existing, tt.top, SoftLimit, HardLimit)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeTopLineSoftEviction(t *testing.T) {
	// Three 100-char lines exceed the soft limit once a top line is added, so
	// the oldest (bottom) lines go first.
	long := strings.Repeat("x", 100)
	existing := strings.Join([]string{long + "1", long + "2", long + "3"}, "\n")

	got := MergeTopLine(existing, "new status", SoftLimit, HardLimit)

	lines := strings.Split(got, "\n")
	require.Equal(t, "new status", lines[0])
	assert.LessOrEqual(t, utf8.RuneCountInString(got), SoftLimit)
	assert.Contains(t, got, long+"1")
	assert.NotContains(t, got, long+"3")
}

func TestMergeTopLineOversizedTopLine(t *testing.T) {
	top := strings.Repeat("a", HardLimit+50)

	got := MergeTopLine("previous", top, SoftLimit, HardLimit)

	assert.Equal(t, HardLimit, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
	// The oversized top line leaves no room for anything else.
	assert.NotContains(t, got, "previous")
}

func TestMergeTopLineInvariants(t *testing.T) {
	cases := []struct {
		existing string
		top      string
	}{
		{"", "status"},
		{strings.Repeat("line\n", 100), "status"},
		{"a\nb", strings.Repeat("z", 500)},
		{strings.Repeat("wide line with words ", 30), "12/01/2026"},
	}

	for _, c := range cases {
		got := MergeTopLine(c.existing, c.top, SoftLimit, HardLimit)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), HardLimit)

		// Re-merging the same top line never duplicates it.
		again := MergeTopLine(got, c.top, SoftLimit, HardLimit)
		first := strings.Split(again, "\n")
		count := 0
		for _, ln := range first {
			if strings.EqualFold(ln, strings.Join(strings.Fields(c.top), " ")) {
				count++
			}
		}
		assert.LessOrEqual(t, count, 1)
	}
}

func TestMergeUsesDefaultLimits(t *testing.T) {
	long := strings.Repeat("y", 300)
	got := Merge("", long)
	assert.Equal(t, HardLimit, utf8.RuneCountInString(got))
}
