package marketdata

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/eisbock/stockaid/table"
)

// DecodeQuote converts a quote response into one row per symbol. The body
// is a JSON object keyed by symbol, each value a flat object of quote
// fields (lastPrice, bidPrice, totalVolume, ...).
func DecodeQuote(body []byte) (*table.Table, error) {
	var quotes map[string]map[string]any
	if err := json.Unmarshal(body, &quotes); err != nil {
		return nil, fmt.Errorf("marketdata: parsing quote response: %w", err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("marketdata: quote response has no symbols")
	}

	symbols := make([]string, 0, len(quotes))
	rows := make([]map[string]any, 0, len(quotes))
	for sym := range quotes {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	for _, sym := range symbols {
		rows = append(rows, quotes[sym])
	}

	return flatten(rows)
}

// historyResponse is the shape of a pricehistory body.
type historyResponse struct {
	Empty   bool     `json:"empty"`
	Candles []candle `json:"candles"`
}

type candle struct {
	Datetime int64   `json:"datetime"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume"`
}

// DecodeHistory converts a pricehistory response into candle rows sorted
// by datetime. An "empty" response is a no-data result. Beware, some of
// the upstream historical data has gaps.
func DecodeHistory(body []byte) (*table.Table, error) {
	var resp historyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("marketdata: parsing history response: %w", err)
	}
	if resp.Empty || len(resp.Candles) == 0 {
		return nil, nil
	}

	sort.Slice(resp.Candles, func(i, j int) bool {
		return resp.Candles[i].Datetime < resp.Candles[j].Datetime
	})

	tbl := table.New("datetime", "open", "high", "low", "close", "volume")
	for _, c := range resp.Candles {
		if err := tbl.Append(
			strconv.FormatInt(c.Datetime, 10),
			formatFloat(c.Open),
			formatFloat(c.High),
			formatFloat(c.Low),
			formatFloat(c.Close),
			formatFloat(c.Volume),
		); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// chainsResponse is the shape of an option-chains body. The exp-date maps
// are keyed by expiration date, then by strike, each holding a list of
// option objects.
type chainsResponse struct {
	Underlying struct {
		Symbol string  `json:"symbol"`
		Last   float64 `json:"last"`
	} `json:"underlying"`
	CallExpDateMap map[string]map[string][]map[string]any `json:"callExpDateMap"`
	PutExpDateMap  map[string]map[string][]map[string]any `json:"putExpDateMap"`
}

// DecodeChains flattens an option-chains response into one row per option,
// adding expDate, strike, underlying, and underlyingLast columns to the
// fields of each option object. Note the upstream docs are wrong about the
// *Price fields: what they call askPrice arrives as just "ask".
func DecodeChains(body []byte) (*table.Table, error) {
	var resp chainsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("marketdata: parsing chains response: %w", err)
	}

	var rows []map[string]any
	for _, m := range []map[string]map[string][]map[string]any{resp.CallExpDateMap, resp.PutExpDateMap} {
		for _, date := range sortedKeys(m) {
			strikes := m[date]
			for _, strike := range sortedKeys(strikes) {
				for _, opt := range strikes[strike] {
					row := make(map[string]any, len(opt)+4)
					for k, v := range opt {
						row[k] = v
					}
					row["expDate"] = date
					row["strike"] = strike
					row["underlying"] = resp.Underlying.Symbol
					row["underlyingLast"] = resp.Underlying.Last
					rows = append(rows, row)
				}
			}
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("marketdata: chains response has no options")
	}

	return flatten(rows)
}

// flatten turns a list of flat JSON objects into a table whose columns are
// the sorted union of the objects' field names.
func flatten(rows []map[string]any) (*table.Table, error) {
	colSet := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			colSet[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(colSet))
	for k := range colSet {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	tbl := table.New(columns...)
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = cellString(row[col])
		}
		if err := tbl.Append(cells...); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
