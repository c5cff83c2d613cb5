package catalog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// EntityRef is the minimal identity of a catalog entry used for list rendering.
// Name is unique within a search result set.
type EntityRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Cursor selects a page window. A nil *Cursor means there are no more pages.
type Cursor struct {
	Offset int
	Limit  int
}

// String renders the cursor the way it appears in list requests.
func (c Cursor) String() string {
	return fmt.Sprintf("offset=%d&limit=%d", c.Offset, c.Limit)
}

// Page is one window of matching entity references.
type Page struct {
	Items []EntityRef
	Next  *Cursor
	// Count is the upstream's total number of matches, zero when unknown.
	Count int
}

// Detail carries the extended attributes fetched lazily per card.
// Height is in decimetres and weight in hectograms, as the API reports them.
type Detail struct {
	HeightDecimetres int
	WeightHectograms int
	Abilities        []string
	Types            []string
}

// listResponse mirrors the list endpoint payload.
type listResponse struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  []EntityRef `json:"results"`
}

// detailResponse mirrors the subset of the detail payload Pokedexter uses.
type detailResponse struct {
	Height    int `json:"height"`
	Weight    int `json:"weight"`
	Abilities []struct {
		Ability namedResource `json:"ability"`
	} `json:"abilities"`
	Types []struct {
		Type namedResource `json:"type"`
	} `json:"types"`
}

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

func (r detailResponse) toDetail() Detail {
	d := Detail{
		HeightDecimetres: r.Height,
		WeightHectograms: r.Weight,
	}
	for _, a := range r.Abilities {
		if name := strings.TrimSpace(a.Ability.Name); name != "" {
			d.Abilities = append(d.Abilities, name)
		}
	}
	for _, t := range r.Types {
		if name := strings.TrimSpace(t.Type.Name); name != "" {
			d.Types = append(d.Types, name)
		}
	}
	return d
}

// parseNext turns the list payload's next link into a cursor. The link may be
// a full URL or a bare query string ("offset=20&limit=20"). When it carries no
// offset the cursor advances by one requested page. A link that points back at
// or before current is returned as is; the list controller ends the list on it.
func parseNext(next *string, current Cursor) (*Cursor, error) {
	if next == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(*next)
	if raw == "" || raw == "null" {
		return nil, nil
	}

	values, err := nextQuery(raw)
	if err != nil {
		return nil, err
	}

	following := Cursor{Offset: current.Offset + current.Limit, Limit: current.Limit}
	if v := values.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("invalid next offset %q", v)
		}
		following.Offset = offset
	}
	if v := values.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("invalid next limit %q", v)
		}
		following.Limit = limit
	}
	return &following, nil
}

func nextQuery(raw string) (url.Values, error) {
	if strings.Contains(raw, "?") || strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse next link: %w", err)
		}
		return u.Query(), nil
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parse next query: %w", err)
	}
	return values, nil
}

// matchesFilter reports whether name contains filter, ignoring case.
func matchesFilter(name, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}

// decodeJSON is shared by the list and detail paths so both report the same
// ParseError shape.
func decodeJSON(data []byte, dest any, source string) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return &ParseError{URL: source, Err: err}
	}
	return nil
}
