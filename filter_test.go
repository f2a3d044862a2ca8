package treecrumb_test

import (
	"testing"

	"github.com/fwojciec/treecrumb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilterSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                             string
		id, class, tag, attribute, value string
		want                             treecrumb.FilterSpec
	}{
		{
			name: "id",
			id:   "nav",
			want: treecrumb.FilterSpec{Mode: treecrumb.FilterByID, ID: "nav"},
		},
		{
			name:  "class and tag",
			class: "tree",
			tag:   "ul",
			want:  treecrumb.FilterSpec{Mode: treecrumb.FilterByClass, Class: "tree", Tag: "ul"},
		},
		{
			name:      "attribute, value and tag",
			attribute: "data-role",
			value:     "sitemap",
			tag:       "nav",
			want:      treecrumb.FilterSpec{Mode: treecrumb.FilterByAttribute, Attribute: "data-role", Value: "sitemap", Tag: "nav"},
		},
		{
			name:  "id wins over class",
			id:    "nav",
			class: "tree",
			tag:   "ul",
			want:  treecrumb.FilterSpec{Mode: treecrumb.FilterByID, ID: "nav"},
		},
		{
			name:      "class wins over attribute",
			class:     "tree",
			tag:       "ul",
			attribute: "data-role",
			value:     "sitemap",
			want:      treecrumb.FilterSpec{Mode: treecrumb.FilterByClass, Class: "tree", Tag: "ul"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := treecrumb.NewFilterSpec(tt.id, tt.class, tt.tag, tt.attribute, tt.value)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFilterSpec_Incomplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                             string
		id, class, tag, attribute, value string
	}{
		{name: "nothing"},
		{name: "class without tag", class: "tree"},
		{name: "tag alone", tag: "ul"},
		{name: "attribute without value", attribute: "data-role", tag: "nav"},
		{name: "attribute without tag", attribute: "data-role", value: "sitemap"},
		{name: "invalid tag", class: "tree", tag: "ul li"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := treecrumb.NewFilterSpec(tt.id, tt.class, tt.tag, tt.attribute, tt.value)

			require.Error(t, err)
			assert.Equal(t, treecrumb.EINVALID, treecrumb.ErrorCode(err))
		})
	}
}

func TestFilterSpec_Validate(t *testing.T) {
	t.Parallel()

	t.Run("rejects missing mode", func(t *testing.T) {
		t.Parallel()

		err := treecrumb.FilterSpec{}.Validate()

		assert.Equal(t, treecrumb.EINVALID, treecrumb.ErrorCode(err))
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		err := treecrumb.FilterSpec{Mode: "xpath"}.Validate()

		assert.Equal(t, treecrumb.EINVALID, treecrumb.ErrorCode(err))
		assert.Contains(t, treecrumb.ErrorMessage(err), "xpath")
	})

	t.Run("rejects empty attribute value", func(t *testing.T) {
		t.Parallel()

		err := treecrumb.FilterSpec{Mode: treecrumb.FilterByAttribute, Attribute: "hidden", Tag: "ul"}.Validate()

		assert.Equal(t, treecrumb.EINVALID, treecrumb.ErrorCode(err))
		assert.Contains(t, treecrumb.ErrorMessage(err), "value")
	})

	t.Run("accepts a complete attribute filter", func(t *testing.T) {
		t.Parallel()

		err := treecrumb.FilterSpec{Mode: treecrumb.FilterByAttribute, Attribute: "data-role", Value: "sitemap", Tag: "nav"}.Validate()

		assert.NoError(t, err)
	})
}

func TestFilterSpec_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nav", treecrumb.FilterSpec{Mode: treecrumb.FilterByID, ID: "nav"}.Label())
	assert.Equal(t, "toc-tree", treecrumb.FilterSpec{Mode: treecrumb.FilterByClass, Class: " toc  tree ", Tag: "ul"}.Label())
	assert.Equal(t, "data-role-sitemap", treecrumb.FilterSpec{Mode: treecrumb.FilterByAttribute, Attribute: "data-role", Value: "sitemap", Tag: "nav"}.Label())
	assert.Equal(t, "a_b", treecrumb.FilterSpec{Mode: treecrumb.FilterByID, ID: "a/b"}.Label())
	assert.Equal(t, "id", treecrumb.FilterSpec{Mode: treecrumb.FilterByID, ID: "///"}.Label())
}

func TestFilterSpec_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "id=nav", treecrumb.FilterSpec{Mode: treecrumb.FilterByID, ID: "nav"}.String())
	assert.Equal(t, "ul.toc.tree", treecrumb.FilterSpec{Mode: treecrumb.FilterByClass, Class: "toc tree", Tag: "ul"}.String())
	assert.Equal(t, "nav[data-role=sitemap]", treecrumb.FilterSpec{Mode: treecrumb.FilterByAttribute, Attribute: "data-role", Value: "sitemap", Tag: "nav"}.String())
}
