// Package characters exposes the third-party character catalog behind the
// authenticated gate. Upstream failures never surface to readers: list and
// detail reads fall back to static data, searches fall back to an empty
// result set.
package characters

import "context"

// Character mirrors the public catalog's character shape.
type Character struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Ki          string `json:"ki"`
	MaxKi       string `json:"maxKi"`
	Race        string `json:"race"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Affiliation string `json:"affiliation"`
	Planet      string `json:"planet,omitempty"`
}

// PageMeta mirrors the catalog's pagination metadata.
type PageMeta struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// ResultKind tags the shape the upstream returned. The catalog answers with
// a paginated object for plain listings, a bare array for name searches and
// a single object for detail lookups; normalization happens once at the
// proxy boundary and everything downstream consumes this union.
type ResultKind int

const (
	KindEmpty ResultKind = iota
	KindPaginated
	KindList
	KindSingle
)

// Result is the normalized upstream response.
type Result struct {
	Kind  ResultKind
	Items []Character
	Meta  PageMeta // valid only for KindPaginated
}

// Payload renders the result in the wire shape of the original upstream,
// so existing consumers see familiar structures.
func (r Result) Payload() any {
	switch r.Kind {
	case KindPaginated:
		return struct {
			Items []Character `json:"items"`
			Meta  PageMeta    `json:"meta"`
		}{Items: r.Items, Meta: r.Meta}
	case KindList:
		return r.Items
	case KindSingle:
		return r.Items[0]
	default:
		return struct {
			Items []Character `json:"items"`
			Meta  PageMeta    `json:"meta"`
		}{Items: []Character{}, Meta: PageMeta{}}
	}
}

// Catalog is the port to the external character API.
type Catalog interface {
	List(ctx context.Context, page, limit int) (Result, error)
	GetByID(ctx context.Context, id int) (Result, error)
	Search(ctx context.Context, name string) (Result, error)
}
