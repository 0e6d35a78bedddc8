package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eisbock/stockaid"
)

func TestDecodeQuote(t *testing.T) {
	body := `{
		"ABC": {"symbol": "ABC", "lastPrice": 12.34, "totalVolume": 1000, "marginable": true},
		"XYZ": {"symbol": "XYZ", "lastPrice": 56.7, "totalVolume": 200, "marginable": false}
	}`

	tbl, err := DecodeQuote([]byte(body))
	require.NoError(t, err)
	require.NotNil(t, tbl)

	assert.Equal(t, []string{"lastPrice", "marginable", "symbol", "totalVolume"}, tbl.Columns)
	require.Equal(t, 2, tbl.NumRows())

	// Rows come out in symbol order.
	sym, _ := tbl.Get(0, "symbol")
	assert.Equal(t, "ABC", sym)
	price, _ := tbl.Get(0, "lastPrice")
	assert.Equal(t, "12.34", price)
	marginable, _ := tbl.Get(1, "marginable")
	assert.Equal(t, "false", marginable)
}

func TestDecodeQuoteMalformed(t *testing.T) {
	for _, body := range []string{"", "not json", `{"ABC": "not an object"}`, `{}`} {
		_, err := DecodeQuote([]byte(body))
		assert.Error(t, err, "body %q", body)
	}
}

func TestDecodeHistory(t *testing.T) {
	body := `{
		"symbol": "ABC",
		"empty": false,
		"candles": [
			{"datetime": 200, "open": 2, "high": 3, "low": 1, "close": 2.5, "volume": 50},
			{"datetime": 100, "open": 1, "high": 2, "low": 0.5, "close": 1.5, "volume": 40}
		]
	}`

	tbl, err := DecodeHistory([]byte(body))
	require.NoError(t, err)
	require.NotNil(t, tbl)

	assert.Equal(t, []string{"datetime", "open", "high", "low", "close", "volume"}, tbl.Columns)
	require.Equal(t, 2, tbl.NumRows())

	// Candles are sorted by datetime.
	dt, _ := tbl.Get(0, "datetime")
	assert.Equal(t, "100", dt)
	c, _ := tbl.Get(1, "close")
	assert.Equal(t, "2.5", c)
}

func TestDecodeHistoryEmpty(t *testing.T) {
	tbl, err := DecodeHistory([]byte(`{"empty": true, "candles": []}`))
	require.NoError(t, err)
	assert.Nil(t, tbl, "an empty response is a no-data result")
}

func TestDecodeHistoryMalformed(t *testing.T) {
	_, err := DecodeHistory([]byte("<html>rate limited</html>"))
	assert.Error(t, err)
}

func TestDecodeChains(t *testing.T) {
	body := `{
		"underlying": {"symbol": "ABC", "last": 100.5},
		"callExpDateMap": {
			"2026-09-18:23": {
				"95.0": [{"putCall": "CALL", "bid": 6.1, "ask": 6.3}],
				"105.0": [{"putCall": "CALL", "bid": 0.8, "ask": 0.9}]
			}
		},
		"putExpDateMap": {
			"2026-09-18:23": {
				"95.0": [{"putCall": "PUT", "bid": 0.5, "ask": 0.6}]
			}
		}
	}`

	tbl, err := DecodeChains([]byte(body))
	require.NoError(t, err)
	require.NotNil(t, tbl)
	require.Equal(t, 3, tbl.NumRows())

	assert.Contains(t, tbl.Columns, "expDate")
	assert.Contains(t, tbl.Columns, "strike")
	assert.Contains(t, tbl.Columns, "underlying")
	assert.Contains(t, tbl.Columns, "underlyingLast")

	// Calls precede puts, strikes in sorted order.
	pc, _ := tbl.Get(0, "putCall")
	assert.Equal(t, "CALL", pc)
	strike, _ := tbl.Get(0, "strike")
	assert.Equal(t, "105.0", strike)
	ul, _ := tbl.Get(2, "underlyingLast")
	assert.Equal(t, "100.5", ul)
}

func TestDecodeChainsMalformed(t *testing.T) {
	_, err := DecodeChains([]byte(`{"underlying": {}}`))
	assert.Error(t, err, "no options means no data")

	_, err = DecodeChains([]byte("not json"))
	assert.Error(t, err)
}

func TestRegister(t *testing.T) {
	c := stockaid.New(stockaid.Options{})
	require.NoError(t, Register(c))

	apis, err := c.APIs(Name)
	require.NoError(t, err)
	assert.Equal(t, []string{"chains", "history", "quote"}, apis)
}
