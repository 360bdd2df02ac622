package main_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsnip"
	main "github.com/fwojciec/docsnip/cmd/docsnip"
	"github.com/fwojciec/docsnip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamplesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes filters to the store and prints JSON", func(t *testing.T) {
		t.Parallel()

		var got docsnip.ExampleFilter
		deps, stdout, _ := newDeps()
		deps.Store = &mock.PageService{
			FindExamplesFn: func(_ context.Context, filter docsnip.ExampleFilter) ([]*docsnip.StoredExample, error) {
				got = filter
				return []*docsnip.StoredExample{{
					CodeExample: docsnip.CodeExample{Title: "Hello", Language: "go", Code: "fmt.Println(\"<hi>\")"},
					PageURL:     "https://x.com/docs",
				}}, nil
			},
		}

		cmd := &main.ExamplesCmd{Language: "go", Limit: 5}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Language)
		assert.Equal(t, "go", *got.Language)
		assert.Nil(t, got.PageURL)
		assert.Equal(t, 5, got.Limit)
		assert.Contains(t, stdout.String(), `"page_url": "https://x.com/docs"`)
		assert.Contains(t, stdout.String(), `<hi>`)
	})

	t.Run("requires a database", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()

		err := (&main.ExamplesCmd{}).Run(deps)

		assert.Equal(t, docsnip.EINVALID, docsnip.ErrorCode(err))
		assert.Contains(t, stderr.String(), "needs --db")
	})
}
