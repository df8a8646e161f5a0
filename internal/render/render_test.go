package render

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"json", FormatJSON, false},
		{"yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Run("short input untouched", func(t *testing.T) {
		got, cut := Truncate("hello", DataTruncatedMarker)
		assert.False(t, cut)
		assert.Equal(t, "hello", got)
	})

	t.Run("exactly at limit untouched", func(t *testing.T) {
		in := strings.Repeat("a", CharacterLimit)
		got, cut := Truncate(in, DataTruncatedMarker)
		assert.False(t, cut)
		assert.Equal(t, in, got)
	})

	for _, marker := range []string{DataTruncatedMarker, ContentTruncatedMarker} {
		for _, size := range []int{CharacterLimit + 1, CharacterLimit + 10, 3 * CharacterLimit} {
			in := strings.Repeat("x", size)
			got, cut := Truncate(in, marker)
			assert.True(t, cut)
			assert.Equal(t, CharacterLimit+len(marker), len(got))
			assert.Equal(t, in[:CharacterLimit], got[:CharacterLimit])
			assert.True(t, strings.HasSuffix(got, marker))
		}
	}

	t.Run("multi-byte input cut on rune boundary", func(t *testing.T) {
		in := strings.Repeat("é", CharacterLimit+5)
		got, cut := Truncate(in, ContentTruncatedMarker)
		require.True(t, cut)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, CharacterLimit+utf8.RuneCountInString(ContentTruncatedMarker), utf8.RuneCountInString(got))
		assert.Equal(t, strings.Repeat("é", CharacterLimit)+ContentTruncatedMarker, got)
	})
}

func TestText(t *testing.T) {
	type result struct {
		Title string `json:"title"`
	}
	structured := result{Title: strings.Repeat("t", CharacterLimit*2)}
	markdown := func() string { return "# " + structured.Title }

	t.Run("json is never truncated", func(t *testing.T) {
		text, err := Text(FormatJSON, structured, markdown, DataTruncatedMarker)
		require.NoError(t, err)
		var back result
		require.NoError(t, json.Unmarshal([]byte(text), &back))
		assert.Equal(t, structured, back)
	})

	t.Run("markdown is truncated", func(t *testing.T) {
		text, err := Text(FormatMarkdown, structured, markdown, DataTruncatedMarker)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(text, DataTruncatedMarker))
	})

	t.Run("markdown not built for json", func(t *testing.T) {
		_, err := Text(FormatJSON, structured, func() string {
			t.Fatal("markdown should not be rendered")
			return ""
		}, DataTruncatedMarker)
		require.NoError(t, err)
	})
}

func TestResult(t *testing.T) {
	structured := map[string]any{"id": "abc"}
	res, err := Result(FormatMarkdown, structured, func() string { return "**ID**: abc" }, DataTruncatedMarker)
	require.NoError(t, err)

	assert.False(t, res.IsError)
	assert.Equal(t, structured, res.StructuredContent)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "**ID**: abc", text.Text)
}

func TestTable(t *testing.T) {
	t.Run("two by two grid", func(t *testing.T) {
		got := Table([][]any{{"a", "b"}, {"c", "d"}})
		lines := strings.Split(strings.TrimSpace(got), "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "| Col 1 | Col 2 |", lines[0])
		assert.Equal(t, "| --- | --- |", lines[1])
		assert.Equal(t, "| a | b |", lines[2])
		assert.Equal(t, "| c | d |", lines[3])
	})

	t.Run("nil cells and short rows are empty", func(t *testing.T) {
		got := Table([][]any{{"a", nil, "c"}, {"d"}})
		assert.Contains(t, got, "| a |  | c |")
		assert.Contains(t, got, "| d |  |  |")
	})

	t.Run("extra cells are dropped", func(t *testing.T) {
		got := Table([][]any{{"a"}, {"b", "overflow"}})
		assert.NotContains(t, got, "overflow")
	})

	t.Run("non string values", func(t *testing.T) {
		got := Table([][]any{{float64(1), 2.5, true}})
		assert.Contains(t, got, "| 1 | 2.5 | true |")
	})

	t.Run("pipes and line breaks stay inside the cell", func(t *testing.T) {
		got := Table([][]any{{"a|b", "line1\nline2"}, {"x\r\ny", "z"}})
		assert.Equal(t, "| Col 1 | Col 2 |\n| --- | --- |\n| a\\|b | line1<br>line2 |\n| x<br>y | z |\n", got)
		lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
		assert.Len(t, lines, 4)
	})

	t.Run("empty grid", func(t *testing.T) {
		assert.Equal(t, "", Table(nil))
		assert.Equal(t, "", Table([][]any{{}}))
	})
}

func TestNewPage(t *testing.T) {
	p := NewPage[string](nil, "")
	assert.Equal(t, []string{}, p.Items)
	assert.Nil(t, p.NextPageToken)
	assert.False(t, p.HasMore())

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"count":0,"next_page_token":null}`, string(b))

	p = NewPage([]string{"a", "b"}, "tok-1")
	require.NotNil(t, p.NextPageToken)
	assert.Equal(t, "tok-1", *p.NextPageToken)
	assert.Equal(t, 2, p.Count)
	assert.True(t, p.HasMore())
}

func TestSortSystemFirst(t *testing.T) {
	type label struct {
		name   string
		system bool
	}
	labels := []label{
		{"Work", false},
		{"TRASH", true},
		{"archive", false},
		{"INBOX", true},
		{"Receipts", false},
		{"SENT", true},
	}

	SortSystemFirst(labels,
		func(l label) bool { return l.system },
		func(l label) string { return l.name },
	)

	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.name
	}
	assert.Equal(t, []string{"INBOX", "SENT", "TRASH", "archive", "Receipts", "Work"}, names)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, Untitled, OrDefault("", Untitled))
	assert.Equal(t, "Doc", OrDefault("Doc", Untitled))
}
