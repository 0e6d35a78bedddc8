// Package stockaid implements a rate-limited, disk-persisted response cache
// for remote data providers. Callers register providers (base URL plus
// throttling policy) and named APIs under them, then fetch through Call,
// which serves fresh cached results and throttles, fetches, decodes, and
// persists on a miss. Responses are tabular (see the table package) and are
// cached as plain CSV files keyed by endpoint and cache field, so an
// operator can inspect or delete entries freely.
package stockaid

import (
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eisbock/stockaid/internal/diskcache"
	"github.com/eisbock/stockaid/throttle"
)

// Options configures a Cache. The zero value gives a cache with caching
// disabled, no keys, and the default HTTP client.
type Options struct {
	// CachePath is the root directory for cached responses. Empty
	// disables caching. An unusable directory also disables caching
	// (logged, never an error): correctness does not depend on it.
	CachePath string

	// KeyChain supplies the secrets referenced by API key maps.
	KeyChain KeyChain

	// Client is the HTTP client used for all requests. Defaults to a
	// client with a 30-second timeout.
	Client *http.Client

	// Logger receives operational messages. Defaults to the standard
	// logrus logger.
	Logger logrus.FieldLogger

	// DirMode is the permission mode for created cache directories.
	// Defaults to 0755.
	DirMode os.FileMode
}

// Cache is the provider registry and request dispatcher. Construct it with
// New, register providers and APIs at startup, then issue calls. There is
// no package-level singleton: pass the Cache to whatever needs it.
type Cache struct {
	dir      diskcache.Dir
	keyChain KeyChain
	client   *http.Client
	log      logrus.FieldLogger
	mode     os.FileMode

	mu        sync.RWMutex
	providers map[string]*provider
}

// New creates a Cache. If opts.CachePath is set but unusable, the cache
// degrades to a pass-through and every call goes to the network.
func New(opts Options) *Cache {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.DirMode == 0 {
		opts.DirMode = 0755
	}

	dir := diskcache.Ensure(opts.CachePath, opts.DirMode)
	if opts.CachePath != "" && !dir.Enabled() {
		opts.Logger.Warnf("cache path %s is unusable, caching disabled", opts.CachePath)
	}

	return &Cache{
		dir:       dir,
		keyChain:  opts.KeyChain,
		client:    opts.Client,
		log:       opts.Logger,
		mode:      opts.DirMode,
		providers: make(map[string]*provider),
	}
}

// CanCache reports whether the cache directory is usable.
func (c *Cache) CanCache() bool {
	return c.dir.Enabled()
}

// RegisterProvider registers a remote service under a unique name. Calls
// to this provider respect the policy of throttler; a nil throttler means
// no throttling. baseURL may be empty, in which case API URLs are used
// verbatim. Re-registering a name replaces the previous provider.
func (c *Cache) RegisterProvider(name, baseURL string, throttler throttle.Throttler) {
	dir := c.dir.Child(name)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[name] = &provider{
		baseURL:   baseURL,
		throttler: throttler,
		dir:       dir,
		apis:      make(map[string]*endpoint),
	}
}

// RegisterAPI registers an API under a previously registered provider.
// Re-registering a name overwrites the previous entry.
func (c *Cache) RegisterAPI(providerName string, api API) error {
	if api.Name == "" {
		return &ConfigError{Reason: "API name is required"}
	}
	if api.Decode == nil {
		return &ConfigError{Reason: "API " + api.Name + " has no decoder"}
	}
	if api.Method == "" {
		api.Method = http.MethodGet
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.providers[providerName]
	if !ok {
		return &ConfigError{Reason: "provider " + providerName + " not registered"}
	}

	url := api.URL
	if p.baseURL != "" {
		url = p.baseURL + "/" + api.URL
	}

	p.apis[api.Name] = &endpoint{
		api: api,
		url: url,
		dir: p.dir.Child(api.Name),
	}
	return nil
}

// Providers returns the registered provider names, sorted.
func (c *Cache) Providers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.providers))
	for name := range c.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// APIs returns the API names registered under a provider, sorted.
func (c *Cache) APIs(providerName string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.providers[providerName]
	if !ok {
		return nil, &NotFoundError{Kind: "provider", Name: providerName}
	}
	names := make([]string, 0, len(p.apis))
	for name := range p.apis {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// lookup resolves a provider and one of its endpoints.
func (c *Cache) lookup(providerName, apiName string) (*provider, *endpoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.providers[providerName]
	if !ok {
		return nil, nil, &NotFoundError{Kind: "provider", Name: providerName}
	}
	ep, ok := p.apis[apiName]
	if !ok {
		return nil, nil, &NotFoundError{Kind: "api", Name: apiName}
	}
	return p, ep, nil
}
