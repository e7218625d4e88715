package aodb

import (
	"context"
	"net/url"
	"strconv"
)

// Nano is a nano program crystal as listed by the browse endpoint.
type Nano struct {
	AOID       int    `json:"aoid"`
	Name       string `json:"name"`
	QL         int    `json:"ql"`
	School     string `json:"school"`
	Strain     string `json:"strain"`
	Profession string `json:"profession"`
	Level      int    `json:"level"`
}

// NanoPage is one page of nano browse results.
type NanoPage struct {
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Items    []Nano `json:"items"`
}

// NanoQuery selects nanos from the /v1/nanos endpoint.
type NanoQuery struct {
	Name       string
	Profession string
	Page       int
	PageSize   int
}

// SearchNanos fetches one page of nano programs matching q.
func (c *Client) SearchNanos(ctx context.Context, q NanoQuery) (*NanoPage, error) {
	v := url.Values{}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	if q.Profession != "" {
		v.Set("profession", q.Profession)
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = c.pageSize
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("page_size", strconv.Itoa(size))

	return doRequest[NanoPage](ctx, c, c.baseURL+"/v1/nanos?"+v.Encode())
}

// Symbiant is a body symbiant as listed by the browse endpoint.
type Symbiant struct {
	AOID   int    `json:"aoid"`
	Name   string `json:"name"`
	QL     int    `json:"ql"`
	Family string `json:"family"`
	Slot   string `json:"slot"`
}

// Symbiants fetches every symbiant of the given family and slot. Empty
// arguments match everything.
func (c *Client) Symbiants(ctx context.Context, family, slot string) ([]Symbiant, error) {
	v := url.Values{}
	if family != "" {
		v.Set("family", family)
	}
	if slot != "" {
		v.Set("slot", slot)
	}
	out, err := doRequest[[]Symbiant](ctx, c, c.baseURL+"/v1/symbiants?"+v.Encode())
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// PocketBoss is a pocket boss with the symbiants it drops.
type PocketBoss struct {
	Name      string   `json:"name"`
	Level     int      `json:"level"`
	Playfield string   `json:"playfield"`
	Location  string   `json:"location"`
	Drops     []string `json:"drops"`
}

// PocketBosses fetches pocket bosses filtered by name and playfield. Empty
// arguments match everything.
func (c *Client) PocketBosses(ctx context.Context, name, playfield string) ([]PocketBoss, error) {
	v := url.Values{}
	if name != "" {
		v.Set("name", name)
	}
	if playfield != "" {
		v.Set("playfield", playfield)
	}
	out, err := doRequest[[]PocketBoss](ctx, c, c.baseURL+"/v1/pocket-bosses?"+v.Encode())
	if err != nil {
		return nil, err
	}
	return *out, nil
}
