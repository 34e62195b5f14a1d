package docharvest_test

import (
	"testing"

	"github.com/fwojciec/docharvest"
	"github.com/stretchr/testify/assert"
)

func TestExtractHeaders(t *testing.T) {
	t.Parallel()

	markdown := "# Title\n\nBody text.\n\n## Usage\n\nMore text.\n\n### Details\n"

	headers := docharvest.ExtractHeaders(markdown, docharvest.DefaultHeaderFilter())

	assert.Equal(t, []docharvest.HeaderEntry{
		{Level: 1, Text: "Title"},
		{Level: 2, Text: "Usage"},
		{Level: 3, Text: "Details"},
	}, headers)
}

func TestExtractHeaders_FiltersMetaLabelsAndShortText(t *testing.T) {
	t.Parallel()

	markdown := "## Note\n\n## ok\n\n## Pitfall\n\n## Usage\n"

	headers := docharvest.ExtractHeaders(markdown, docharvest.DefaultHeaderFilter())

	assert.Equal(t, []docharvest.HeaderEntry{{Level: 2, Text: "Usage"}}, headers)
}

func TestExtractHeaders_MetaLabelsCaseInsensitive(t *testing.T) {
	t.Parallel()

	markdown := "## WARNING\n\n## Warning\n\n## Warnings\n"

	headers := docharvest.ExtractHeaders(markdown, docharvest.DefaultHeaderFilter())

	assert.Equal(t, []docharvest.HeaderEntry{{Level: 2, Text: "Warnings"}}, headers)
}

func TestExtractHeaders_IgnoresCodeBlocks(t *testing.T) {
	t.Parallel()

	markdown := "# Real\n\n```sh\n# not a heading\necho hi\n```\n\n## Also Real\n"

	headers := docharvest.ExtractHeaders(markdown, docharvest.DefaultHeaderFilter())

	assert.Equal(t, []docharvest.HeaderEntry{
		{Level: 1, Text: "Real"},
		{Level: 2, Text: "Also Real"},
	}, headers)
}

func TestExtractHeaders_Empty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, docharvest.ExtractHeaders("", docharvest.DefaultHeaderFilter()))
	assert.Nil(t, docharvest.ExtractHeaders("plain text only", docharvest.DefaultHeaderFilter()))
}
