package stockaid

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/eisbock/stockaid/table"
)

// Call invokes a registered API and returns the decoded table.
//
// A still-fresh cached result is returned without touching the network
// unless refresh is true. On a miss the call waits for the provider's
// throttle, builds the request from args plus the key chain, makes exactly
// one attempt, decodes the body, and writes the result through to the
// cache (best-effort).
//
// Errors: NotFoundError for unknown provider/API names,
// MissingArgumentError / MissingKeyError for absent parameters or secrets,
// TransportError for network failures, and ErrNoData when the decoder
// rejected the payload (that outcome is never cached).
func (c *Cache) Call(ctx context.Context, providerName, apiName string, args Params, refresh bool) (*table.Table, error) {
	p, ep, err := c.lookup(providerName, apiName)
	if err != nil {
		return nil, err
	}

	// Cache identity: the declared cache-field value, or the API name
	// itself when no field is declared (all calls share one slot then).
	id := ep.api.Name
	if ep.api.CacheField != "" {
		v, ok := args[ep.api.CacheField]
		if !ok {
			return nil, &MissingArgumentError{Param: ep.api.CacheField}
		}
		id = v
	}

	if !refresh {
		if data, ok := ep.dir.ReadFresh(id, ep.api.CacheFor); ok {
			tbl, err := table.ReadCSV(data)
			if err == nil {
				c.log.Debugf("cache hit for %s/%s (%s)", providerName, apiName, id)
				return tbl, nil
			}
			// A corrupt entry is a miss, not a failure; the refetch
			// below overwrites it.
			c.log.Warnf("unreadable cache entry %s: %v", ep.dir.FilePath(id), err)
		}
	}

	p.throttle()

	reqURL, err := ep.buildURL(args)
	if err != nil {
		return nil, err
	}

	data, err := c.buildData(ep, args)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if ep.api.Data != "" {
		body = strings.NewReader(expand(ep.api.Data, data))
	} else if len(data) > 0 {
		reqURL, err = appendQuery(reqURL, data)
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("API %s has a malformed URL: %v", apiName, err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, ep.api.Method, reqURL, body)
	if err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("API %s has a malformed URL: %v", apiName, err)}
	}
	if ep.api.Data != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	c.log.Debugf("fetched %s/%s (%s) -> %d", providerName, apiName, id, resp.StatusCode)

	tbl, err := ep.api.Decode(raw)
	if err != nil || tbl == nil {
		// A failed fetch is not cached; the next call tries again.
		c.log.Debugf("decoder rejected %s/%s response: %v", providerName, apiName, err)
		return nil, ErrNoData
	}

	if serialized, err := tbl.MarshalCSV(); err == nil {
		ep.dir.Write(id, serialized)
	} else {
		c.log.Warnf("failed to serialize %s/%s result: %v", providerName, apiName, err)
	}

	return tbl, nil
}

// buildURL substitutes each declared URL parameter into the template.
func (ep *endpoint) buildURL(args Params) (string, error) {
	params := make(map[string]string, len(ep.api.URLParams))
	for _, k := range ep.api.URLParams {
		v, ok := args[k]
		if !ok {
			return "", &MissingArgumentError{Param: k}
		}
		params[k] = v
	}
	return expand(ep.url, params), nil
}

// buildData assembles the outgoing data set: args restricted to the
// declared data parameters, plus the key-map secrets resolved from the key
// chain. Secrets are never taken from args.
func (c *Cache) buildData(ep *endpoint, args Params) (map[string]string, error) {
	data := make(map[string]string, len(ep.api.DataParams)+len(ep.api.KeyMap))
	for _, k := range ep.api.DataParams {
		v, ok := args[k]
		if !ok {
			return nil, &MissingArgumentError{Param: k}
		}
		data[k] = v
	}
	for field, keyName := range ep.api.KeyMap {
		v, ok := c.keyChain[keyName]
		if !ok || v == "" {
			return nil, &MissingKeyError{Key: keyName}
		}
		data[field] = v
	}
	return data, nil
}

// expand replaces {name} placeholders with the given values. Placeholders
// without a value are left as-is.
func expand(tmpl string, params map[string]string) string {
	if len(params) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// appendQuery merges the outgoing data into the URL's query string,
// preserving any parameters already present in the template.
func appendQuery(rawURL string, data map[string]string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range data {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
