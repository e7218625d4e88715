package aodb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/rubika-tools/aocomp/internal/game/item"
	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// ItemQuery selects items from the /v1/items search endpoint. Zero-valued
// fields are omitted from the request; a zero Page or PageSize uses the
// first page and the configured default size.
type ItemQuery struct {
	Name      string
	MinQL     int
	MaxQL     int
	ItemClass int
	Page      int
	PageSize  int
}

// ItemPage is one page of search results.
type ItemPage struct {
	Total    int
	Page     int
	PageSize int
	Items    []*item.Item
}

type statDTO struct {
	ID    int `json:"id"`
	Value int `json:"value"`
}

type criterionDTO struct {
	ID       int `json:"id"`
	Value    int `json:"value"`
	Operator int `json:"operator"`
}

type itemDTO struct {
	AOID         int            `json:"aoid"`
	Name         string         `json:"name"`
	QL           int            `json:"ql"`
	Description  string         `json:"description"`
	ItemClass    int            `json:"item_class"`
	IsNano       bool           `json:"is_nano"`
	Stats        []statDTO      `json:"stats"`
	AttackStats  []statDTO      `json:"attack_stats"`
	DefenseStats []statDTO      `json:"defense_stats"`
	Criteria     []criterionDTO `json:"criteria"`
}

type itemPageDTO struct {
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Items    []itemDTO `json:"items"`
}

func toStatList(dtos []statDTO) stats.List {
	if len(dtos) == 0 {
		return nil
	}
	out := make(stats.List, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, stats.Entry{Stat: stats.ID(d.ID), Value: d.Value})
	}
	return out
}

func (d *itemDTO) toItem() *item.Item {
	it := &item.Item{
		AOID:         d.AOID,
		Name:         d.Name,
		QL:           d.QL,
		Description:  d.Description,
		ItemClass:    d.ItemClass,
		IsNano:       d.IsNano,
		Stats:        toStatList(d.Stats),
		AttackStats:  toStatList(d.AttackStats),
		DefenseStats: toStatList(d.DefenseStats),
	}
	for _, c := range d.Criteria {
		it.Requirements = append(it.Requirements, item.Criterion{
			Stat:  stats.ID(c.ID),
			Value: c.Value,
			Op:    item.Op(c.Operator),
		})
	}
	return it
}

func (c *Client) searchURL(q ItemQuery) string {
	v := url.Values{}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	if q.MinQL > 0 {
		v.Set("min_ql", strconv.Itoa(q.MinQL))
	}
	if q.MaxQL > 0 {
		v.Set("max_ql", strconv.Itoa(q.MaxQL))
	}
	if q.ItemClass > 0 {
		v.Set("item_class", strconv.Itoa(q.ItemClass))
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
	return c.baseURL + "/v1/items?" + v.Encode()
}

// SearchItems fetches one page of items matching q.
//
// Postcondition: Returns a non-nil page whose Items are converted into the
// internal model, or a non-nil error.
func (c *Client) SearchItems(ctx context.Context, q ItemQuery) (*ItemPage, error) {
	dto, err := doRequest[itemPageDTO](ctx, c, c.searchURL(q))
	if err != nil {
		return nil, err
	}
	page := &ItemPage{
		Total:    dto.Total,
		Page:     dto.Page,
		PageSize: dto.PageSize,
		Items:    make([]*item.Item, 0, len(dto.Items)),
	}
	for i := range dto.Items {
		page.Items = append(page.Items, dto.Items[i].toItem())
	}
	return page, nil
}

// GetItem fetches a single item by its game identifier.
//
// Postcondition: Returns the item, or ErrNotFound when the API does not
// know the identifier.
func (c *Client) GetItem(ctx context.Context, aoid int) (*item.Item, error) {
	dto, err := doRequest[itemDTO](ctx, c, fmt.Sprintf("%s/v1/items/%d", c.baseURL, aoid))
	if err != nil {
		return nil, err
	}
	return dto.toItem(), nil
}

// SearchItemsAll fetches every page matching q, fanning page fetches out
// through an errgroup bounded by the configured concurrency and
// reassembling results in page order.
//
// Postcondition: Returns all matching items ordered as the API orders them,
// or the first fetch error.
func (c *Client) SearchItemsAll(ctx context.Context, q ItemQuery) ([]*item.Item, error) {
	q.Page = 1
	if q.PageSize < 1 {
		q.PageSize = c.pageSize
	}
	first, err := c.SearchItems(ctx, q)
	if err != nil {
		return nil, err
	}
	pages := (first.Total + q.PageSize - 1) / q.PageSize
	if pages <= 1 {
		return first.Items, nil
	}

	rest := make([][]*item.Item, pages-1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxParallel)
	for p := 2; p <= pages; p++ {
		p := p
		g.Go(func() error {
			pq := q
			pq.Page = p
			page, err := c.SearchItems(ctx, pq)
			if err != nil {
				return err
			}
			rest[p-2] = page.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := first.Items
	for _, items := range rest {
		out = append(out, items...)
	}
	return out, nil
}
