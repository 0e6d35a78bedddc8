package stockaid

import (
	"time"

	"github.com/eisbock/stockaid/internal/diskcache"
	"github.com/eisbock/stockaid/table"
	"github.com/eisbock/stockaid/throttle"
)

// Params are the per-call arguments, validated against the API's declared
// url and data parameter lists.
type Params map[string]string

// KeyChain maps logical key names to secret values (typically API keys).
// It is supplied once when the cache is created and read-only afterwards,
// so provider modules never handle raw secrets themselves. Key-chain
// values are merged into outgoing requests only; they never reach the
// cache key or the cached payload.
type KeyChain map[string]string

// API describes one call of a provider: how to shape the request, how to
// decode the response, and how long the result stays fresh. Immutable once
// registered.
type API struct {
	// Name is the unique name of this API within its provider.
	Name string

	// URL is the part of the URL after the provider's base URL. Named
	// placeholders like {symbol} are substituted from URLParams.
	URL string

	// Method is the HTTP method; defaults to GET.
	Method string

	// CacheField names the argument whose value identifies this request
	// in the cache. When empty, all calls to this API share one slot
	// keyed by the API name.
	CacheField string

	// Decode converts the response body into a Table.
	Decode table.Decoder

	// URLParams are argument names substituted into the URL template.
	URLParams []string

	// DataParams are argument names sent as query parameters, or
	// substituted into Data when a body template is set.
	DataParams []string

	// Data is an optional body template with named placeholders. When
	// set, the outgoing data is formatted into it and sent as a JSON
	// request body instead of query parameters.
	Data string

	// KeyMap maps outgoing field names to key-chain names. The values
	// come from the key chain, never from call arguments.
	KeyMap map[string]string

	// CacheFor is how long a cached result stays fresh. Zero means no
	// caching: every call refetches.
	CacheFor time.Duration
}

// provider groups the registered APIs of one remote service with its base
// URL, throttling policy, and cache subdirectory.
type provider struct {
	baseURL   string
	throttler throttle.Throttler
	dir       diskcache.Dir
	apis      map[string]*endpoint
}

// endpoint is a registered API plus its derived state: the joined URL
// template and the endpoint's own cache subdirectory.
type endpoint struct {
	api API
	url string
	dir diskcache.Dir
}

// throttle blocks until the provider's policy admits a request. Providers
// without a throttler admit immediately.
func (p *provider) throttle() {
	if p.throttler != nil {
		p.throttler.Acquire()
	}
}
