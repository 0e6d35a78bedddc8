// Package index registers the stock-index membership provider, backed by
// the edit view of Wikipedia's index pages. Each API returns the wikitable
// of index constituents as a table.
//
//	sp500      S&P 500 Index
//	OEX        S&P 100 Index
//	midcap     S&P MidCap 400 Index
//	smallcap   S&P SmallCap 600 Index
//	nasdaq100  Nasdaq 100
//	DJIA       Dow Jones Industrial Average
//
// Membership changes rarely, so everything is cached for a week and
// throttled to 10 requests per minute.
package index

import (
	"time"

	"github.com/eisbock/stockaid"
	"github.com/eisbock/stockaid/throttle"
)

// Name is the provider name the APIs are registered under.
const Name = "index"

// BaseURL is the Wikipedia origin the pages are fetched from.
const BaseURL = "https://en.wikipedia.org"

const week = 7 * 24 * time.Hour

var pages = []struct {
	name string
	url  string
}{
	{"sp500", "w/index.php?title=List_of_S%26P_500_companies&action=edit&section=1"},
	{"OEX", "w/index.php?title=S%26P_100&action=edit&section=3"},
	{"midcap", "w/index.php?title=List_of_S%26P_400_companies&action=edit&section=1"},
	{"smallcap", "w/index.php?title=List_of_S%26P_600_companies&action=edit&section=1"},
	{"nasdaq100", "w/index.php?title=Nasdaq-100&action=edit&section=13"},
	{"DJIA", "w/index.php?title=Dow_Jones_Industrial_Average&action=edit&section=1"},
}

// Register installs the provider and one API per index. None of them take
// arguments, so each shares a single cache slot keyed by its API name.
func Register(c *stockaid.Cache) error {
	c.RegisterProvider(Name, BaseURL, throttle.NewCrude(10))

	for _, p := range pages {
		if err := c.RegisterAPI(Name, stockaid.API{
			Name:     p.name,
			URL:      p.url,
			Decode:   DecodeWikiTable,
			CacheFor: week,
		}); err != nil {
			return err
		}
	}
	return nil
}
