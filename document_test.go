package docharvest_test

import (
	"testing"

	"github.com/fwojciec/docharvest"
	"github.com/stretchr/testify/assert"
)

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	doc := &docharvest.Document{Filename: "01-01-intro", SourceURL: "https://example.com/docs/intro"}
	assert.NoError(t, doc.Validate())

	doc = &docharvest.Document{SourceURL: "https://example.com/docs/intro"}
	assert.Equal(t, docharvest.EINVALID, docharvest.ErrorCode(doc.Validate()))

	doc = &docharvest.Document{Filename: "01-01-intro"}
	assert.Equal(t, docharvest.EINVALID, docharvest.ErrorCode(doc.Validate()))
}

func TestDocument_WordCount(t *testing.T) {
	t.Parallel()

	doc := &docharvest.Document{Body: "one two\tthree\n\nfour"}
	assert.Equal(t, 4, doc.WordCount())

	doc = &docharvest.Document{}
	assert.Equal(t, 0, doc.WordCount())
}

func TestMakeExcerpt(t *testing.T) {
	t.Parallel()

	t.Run("short_text_unchanged", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "short text", docharvest.MakeExcerpt("short text", 200))
	})

	t.Run("flattens_whitespace", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "a b c", docharvest.MakeExcerpt("a\n\nb\t c", 200))
	})

	t.Run("cuts_at_word_boundary", func(t *testing.T) {
		t.Parallel()
		got := docharvest.MakeExcerpt("alpha bravo charlie delta", 14)
		assert.Equal(t, "alpha bravo...", got)
	})
}

func TestPageReference_Validate(t *testing.T) {
	t.Parallel()

	ref := docharvest.PageReference{Href: "/docs/intro", Text: "Intro"}
	assert.NoError(t, ref.Validate())

	ref = docharvest.PageReference{Text: "Intro"}
	assert.Equal(t, docharvest.EINVALID, docharvest.ErrorCode(ref.Validate()))

	ref = docharvest.PageReference{Href: "/docs/intro"}
	assert.Equal(t, docharvest.EINVALID, docharvest.ErrorCode(ref.Validate()))
}

func TestResolveFullURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		origin string
		href   string
		want   string
	}{
		{"relative", "https://example.com/docs/", "/docs/intro", "https://example.com/docs/intro"},
		{"absolute_unchanged", "https://example.com", "https://other.com/page", "https://other.com/page"},
		{"relative_path", "https://example.com/docs/guide/", "../api", "https://example.com/docs/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, docharvest.ResolveFullURL(tt.origin, tt.href))
		})
	}
}
