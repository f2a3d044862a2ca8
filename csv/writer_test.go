package csv_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/treecrumb"
	"github.com/fwojciec/treecrumb/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and rows", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)

		require.NoError(t, w.WriteLink(treecrumb.LinkRecord{
			Title:      "Reference",
			Href:       "/ref#x",
			Breadcrumb: []string{"Guides", "API"},
		}))
		require.NoError(t, w.WriteLink(treecrumb.LinkRecord{Title: "Home", Href: "/index"}))
		require.NoError(t, w.Flush())

		assert.Equal(t, "Title,Href,Breadcrumb\nReference,/ref#x,Guides > API\nHome,/index,\n", buf.String())
		assert.Equal(t, 2, w.Count())
	})

	t.Run("writes header when there are no records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)

		require.NoError(t, w.Flush())

		assert.Equal(t, "Title,Href,Breadcrumb\n", buf.String())
	})

	t.Run("writes header once across flushes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)

		require.NoError(t, w.WriteLink(treecrumb.LinkRecord{Title: "A", Href: "/a"}))
		require.NoError(t, w.Flush())
		require.NoError(t, w.Flush())

		assert.Equal(t, "Title,Href,Breadcrumb\nA,/a,\n", buf.String())
	})

	t.Run("quotes fields with commas and quotes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)

		require.NoError(t, w.WriteLink(treecrumb.LinkRecord{
			Title:      `Say "hi", world`,
			Href:       "/a?x=1,2",
			Breadcrumb: []string{"One, Two"},
		}))
		require.NoError(t, w.Flush())

		assert.Equal(t, "Title,Href,Breadcrumb\n\"Say \"\"hi\"\", world\",\"/a?x=1,2\",\"One, Two\"\n", buf.String())
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		records := []treecrumb.LinkRecord{
			{Title: "A", Href: "/a", Breadcrumb: []string{"X"}},
			{Title: "B", Href: "/b", Breadcrumb: []string{"X", "Y"}},
		}
		render := func() string {
			var buf bytes.Buffer
			w := csv.NewWriter(&buf)
			for _, r := range records {
				require.NoError(t, w.WriteLink(r))
			}
			require.NoError(t, w.Flush())
			return buf.String()
		}

		assert.Equal(t, render(), render())
	})
}
