package docsnip_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/docsnip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageExtraction_JSON(t *testing.T) {
	t.Parallel()

	page := &docsnip.PageExtraction{
		URL:       "https://docs.example.com/a",
		PageTitle: "Título",
		Links:     []string{"https://docs.example.com/b"},
		Examples: []docsnip.CodeExample{{
			Title:       "Hello",
			Description: "Say <hello>.",
			Language:    "python",
			Code:        "print('hi')\n",
		}},
	}

	data, err := json.Marshal(page)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.ElementsMatch(t, []string{"url", "page_title", "links", "examples"}, keys(raw))

	var got docsnip.PageExtraction
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *page, got)
}

func TestPageExtraction_Summary(t *testing.T) {
	t.Parallel()

	page := &docsnip.PageExtraction{
		URL:       "https://docs.example.com/a",
		PageTitle: "A",
		Links:     []string{"https://docs.example.com/b"},
		Examples:  []docsnip.CodeExample{{Title: "A", Language: "text", Code: "x"}},
	}

	data, err := json.Marshal(docsnip.BatchResult{Pages: []docsnip.PageSummary{page.Summary()}})
	require.NoError(t, err)

	assert.JSONEq(t, `{"pages":[{"url":"https://docs.example.com/a","page_title":"A",
		"examples":[{"title":"A","description":"","language":"text","code":"x"}]}]}`, string(data))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
