package catalog

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// responseCache keeps decoded pages and details for a short time so repeated
// searches do not hit the network. A nil cache is valid and never hits.
type responseCache struct {
	store *gocache.Cache
}

func newResponseCache(ttl time.Duration) *responseCache {
	if ttl <= 0 {
		return nil
	}
	return &responseCache{store: gocache.New(ttl, 2*ttl)}
}

func (rc *responseCache) page(key string) (Page, bool) {
	if rc == nil {
		return Page{}, false
	}
	v, ok := rc.store.Get("page:" + key)
	if !ok {
		return Page{}, false
	}
	return clonePage(v.(Page)), true
}

func (rc *responseCache) storePage(key string, p Page) {
	if rc == nil {
		return
	}
	rc.store.SetDefault("page:"+key, clonePage(p))
}

func (rc *responseCache) detail(key string) (Detail, bool) {
	if rc == nil {
		return Detail{}, false
	}
	v, ok := rc.store.Get("detail:" + key)
	if !ok {
		return Detail{}, false
	}
	return cloneDetail(v.(Detail)), true
}

func (rc *responseCache) storeDetail(key string, d Detail) {
	if rc == nil {
		return
	}
	rc.store.SetDefault("detail:"+key, cloneDetail(d))
}

func clonePage(p Page) Page {
	p.Items = append([]EntityRef(nil), p.Items...)
	if p.Next != nil {
		next := *p.Next
		p.Next = &next
	}
	return p
}
