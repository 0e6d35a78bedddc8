// Package marketdata registers the TD Ameritrade market-data provider:
// quotes, price history, and option chains. The common use cases are
// covered; the upstream API is capable of much more, and completeness is
// not a goal here.
//
// You will need to register (for free) at developer.tdameritrade.com to
// get an API key, which goes into the key chain under the "TDA" name. When
// registering your app, set the order limit to 120 per minute to match the
// throttle installed here.
package marketdata

import (
	"time"

	"github.com/eisbock/stockaid"
	"github.com/eisbock/stockaid/throttle"
)

// Name is the provider name the APIs are registered under.
const Name = "TDA"

// KeyName is the key-chain entry holding the API key.
const KeyName = "TDA"

// BaseURL is the common prefix of all market-data endpoints.
const BaseURL = "https://api.tdameritrade.com/v1/marketdata"

// Register installs the provider and its APIs:
//
//	quote    stock quote for {symbol}. Cached 60 seconds.
//	history  price candles for {symbol}; takes periodType, period, and
//	         frequencyType data params. Cached one day.
//	chains   option chain quotes; takes symbol, includeQuotes, range,
//	         fromDate, toDate, and optionType data params. Cached three
//	         minutes.
func Register(c *stockaid.Cache) error {
	c.RegisterProvider(Name, BaseURL, throttle.NewTokenBucket(120))

	if err := c.RegisterAPI(Name, stockaid.API{
		Name:       "quote",
		URL:        "{symbol}/quotes",
		CacheField: "symbol",
		Decode:     DecodeQuote,
		URLParams:  []string{"symbol"},
		KeyMap:     map[string]string{"apikey": KeyName},
		CacheFor:   60 * time.Second,
	}); err != nil {
		return err
	}

	if err := c.RegisterAPI(Name, stockaid.API{
		Name:       "history",
		URL:        "{symbol}/pricehistory",
		CacheField: "symbol",
		Decode:     DecodeHistory,
		URLParams:  []string{"symbol"},
		DataParams: []string{"periodType", "period", "frequencyType"},
		KeyMap:     map[string]string{"apikey": KeyName},
		CacheFor:   24 * time.Hour,
	}); err != nil {
		return err
	}

	return c.RegisterAPI(Name, stockaid.API{
		Name:       "chains",
		URL:        "chains",
		CacheField: "symbol",
		Decode:     DecodeChains,
		DataParams: []string{"symbol", "includeQuotes", "range", "fromDate", "toDate", "optionType"},
		KeyMap:     map[string]string{"apikey": KeyName},
		CacheFor:   3 * time.Minute,
	})
}
