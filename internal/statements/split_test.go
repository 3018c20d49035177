package statements

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "two tables around a comment and blank line",
			in:   "CREATE TABLE a (id int);\n-- comment\n\nCREATE TABLE b (id int);",
			want: []string{"CREATE TABLE a (id int);", "CREATE TABLE b (id int);"},
		},
		{
			name: "empty input",
			in:   "",
			want: []string{},
		},
		{
			name: "whitespace and bare terminators",
			in:   " ;\n\t;;  \n",
			want: []string{},
		},
		{
			name: "comment-only fragment",
			in:   "-- just a note;",
			want: []string{},
		},
		{
			name: "leading comment lines dropped",
			in:   "-- users\n-- owned by auth\nCREATE TABLE users (id int);\nCREATE TABLE posts (id int);",
			want: []string{"CREATE TABLE users (id int);", "CREATE TABLE posts (id int);"},
		},
		{
			name: "indented comment line",
			in:   "   -- note\n  CREATE TABLE a (id int);",
			want: []string{"CREATE TABLE a (id int);"},
		},
		{
			name: "inner comment kept",
			in:   "CREATE TABLE a (\n-- key\nid int);",
			want: []string{"CREATE TABLE a (\n-- key\nid int);"},
		},
		{
			name: "trailing comment is kept",
			in:   "CREATE TABLE a (id int) -- primary\n;",
			want: []string{"CREATE TABLE a (id int) -- primary;"},
		},
		{
			name: "no trailing terminator",
			in:   "CREATE INDEX idx ON a (id)",
			want: []string{"CREATE INDEX idx ON a (id);"},
		},
		{
			name: "semicolon inside literal is split",
			in:   "INSERT INTO t VALUES ('a;b');",
			want: []string{"INSERT INTO t VALUES ('a;", "b');"},
		},
		{
			name: "order preserved",
			in:   "SELECT 3;SELECT 1;SELECT 2;",
			want: []string{"SELECT 3;", "SELECT 1;", "SELECT 2;"},
		},
		{
			name: "crlf line endings",
			in:   "CREATE TABLE a (id int);\r\n\r\nCREATE TABLE b (id int);\r\n",
			want: []string{"CREATE TABLE a (id int);", "CREATE TABLE b (id int);"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.in))
		})
	}
}

func TestSplit_CountMatchesNonEmptyNonCommentFragments(t *testing.T) {
	var b strings.Builder
	want := 0
	for i := 0; i < 200; i++ {
		switch i % 4 {
		case 0:
			b.WriteString("CREATE TABLE IF NOT EXISTS t (id int);\n")
			want++
		case 1:
			b.WriteString("-- section\n;")
		case 2:
			b.WriteString("   \n;")
		case 3:
			b.WriteString("ALTER TABLE t ADD COLUMN c int;")
			want++
		}
	}

	assert.Len(t, Split(b.String()), want)
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("x", 80)

	assert.Equal(t, "short", Preview("short", 50))
	assert.Equal(t, long[:50], Preview(long, 50))
	assert.Equal(t, "", Preview(long, 0))
	assert.Equal(t, "ñññ", Preview("ñññññ", 3))
}

func BenchmarkSplit(b *testing.B) {
	schema := strings.Repeat("CREATE TABLE IF NOT EXISTS t (id int);\n-- note\n", 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Split(schema)
	}
}
