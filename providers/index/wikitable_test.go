package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eisbock/stockaid"
)

// editPage wraps wikitext the way a Wikipedia edit page serves it.
func editPage(wikitext string) []byte {
	return []byte(`<html><body><form>
<textarea id="wpTextbox1" name="wpTextbox1">` + wikitext + `</textarea>
</form></body></html>`)
}

const sampleTable = `
{| class="wikitable sortable"
|-
! Symbol !! Security !! [[SEC filing|Filings]]
|-
| MMM
| [[3M]]
| [https://example.test/mmm reports]
|-
| AOS
| [[A. O. Smith]]
| {{cite|AOS}}
|}
`

func TestDecodeWikiTable(t *testing.T) {
	tbl, err := DecodeWikiTable(editPage(sampleTable))
	require.NoError(t, err)
	require.NotNil(t, tbl)

	assert.Equal(t, []string{"Symbol", "Security", "Filings"}, tbl.Columns)
	require.Equal(t, 2, tbl.NumRows())

	sym, _ := tbl.Get(0, "Symbol")
	assert.Equal(t, "MMM", sym)

	// [[3M]] unwraps to the page name.
	sec, _ := tbl.Get(0, "Security")
	assert.Equal(t, "3M", sec)

	// External links keep the url.
	filing, _ := tbl.Get(0, "Filings")
	assert.Equal(t, "https://example.test/mmm", filing)

	// Templates keep the key.
	filing, _ = tbl.Get(1, "Filings")
	assert.Equal(t, "AOS", filing)
}

func TestDecodeWikiTableEscapedEntities(t *testing.T) {
	// The edit box HTML-escapes the wikitext; S&P must survive.
	page := editPage(`
{| class="wikitable"
|-
! Symbol !! Index
|-
| ABC || S&amp;P 500
|}
`)

	tbl, err := DecodeWikiTable(page)
	require.NoError(t, err)

	idx, _ := tbl.Get(0, "Index")
	assert.Equal(t, "S&P 500", idx)
}

func TestDecodeWikiTableShortRowsPadded(t *testing.T) {
	tbl, err := DecodeWikiTable(editPage(`
{| class="wikitable"
|-
! A !! B !! C
|-
| 1 || 2
|}
`))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.NumRows())

	c, _ := tbl.Get(0, "C")
	assert.Equal(t, "", c)
}

func TestDecodeWikiTableNoEditBox(t *testing.T) {
	_, err := DecodeWikiTable([]byte("<html><body><p>rate limited</p></body></html>"))
	assert.Error(t, err)
}

func TestDecodeWikiTableNoTable(t *testing.T) {
	_, err := DecodeWikiTable(editPage("just some prose, no table markup"))
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	c := stockaid.New(stockaid.Options{})
	require.NoError(t, Register(c))

	apis, err := c.APIs(Name)
	require.NoError(t, err)
	assert.Equal(t, []string{"DJIA", "OEX", "midcap", "nasdaq100", "smallcap", "sp500"}, apis)
}
