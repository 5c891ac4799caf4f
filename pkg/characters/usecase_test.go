package characters

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type fakeCatalog struct {
	listRes   Result
	listErr   error
	getRes    Result
	getErr    error
	searchRes Result
	searchErr error
}

var _ Catalog = (*fakeCatalog)(nil)

func (f *fakeCatalog) List(context.Context, int, int) (Result, error) {
	return f.listRes, f.listErr
}
func (f *fakeCatalog) GetByID(context.Context, int) (Result, error) {
	return f.getRes, f.getErr
}
func (f *fakeCatalog) Search(context.Context, string) (Result, error) {
	return f.searchRes, f.searchErr
}

var errUpstream = errors.New("upstream unreachable")

func TestBrowse_PassesThroughUpstreamPage(t *testing.T) {
	t.Parallel()

	want := Result{Kind: KindPaginated, Items: []Character{{ID: 7, Name: "Freezer"}}, Meta: PageMeta{TotalItems: 1}}
	s := NewService(&fakeCatalog{listRes: want}, zap.NewNop())

	got := s.Browse(context.Background(), 1, 10, "")
	if got.Kind != KindPaginated || len(got.Items) != 1 || got.Items[0].Name != "Freezer" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestBrowse_ListFailureServesFallback(t *testing.T) {
	t.Parallel()

	s := NewService(&fakeCatalog{listErr: errUpstream}, zap.NewNop())

	got := s.Browse(context.Background(), 1, 10, "")
	if got.Kind != KindPaginated {
		t.Fatalf("fallback must be paginated, got kind %d", got.Kind)
	}
	if len(got.Items) != 3 || got.Items[0].Name != "Goku" {
		t.Fatalf("unexpected fallback items: %+v", got.Items)
	}
	if got.Meta.TotalItems != 3 {
		t.Fatalf("fallback meta totalItems = %d, want 3", got.Meta.TotalItems)
	}
}

func TestBrowse_SearchFailureIsEmpty(t *testing.T) {
	t.Parallel()

	s := NewService(&fakeCatalog{searchErr: errUpstream}, zap.NewNop())

	got := s.Browse(context.Background(), 1, 10, "goku")
	if got.Kind != KindEmpty {
		t.Fatalf("failed search must yield an empty result, got kind %d", got.Kind)
	}
	if len(got.Items) != 0 {
		t.Fatalf("empty result carries items: %+v", got.Items)
	}
}

func TestGet_FailureServesFallbackByID(t *testing.T) {
	t.Parallel()

	s := NewService(&fakeCatalog{getErr: errUpstream}, zap.NewNop())

	got := s.Get(context.Background(), 2)
	if got.Kind != KindSingle || got.Items[0].Name != "Vegeta" {
		t.Fatalf("want fallback Vegeta, got %+v", got)
	}

	// unknown ids degrade to the first fallback character
	got = s.Get(context.Background(), 99)
	if got.Kind != KindSingle || got.Items[0].Name != "Goku" {
		t.Fatalf("want first fallback character, got %+v", got)
	}
}

func TestResult_PayloadShapes(t *testing.T) {
	t.Parallel()

	single := Result{Kind: KindSingle, Items: []Character{{ID: 1, Name: "Goku"}}}
	if _, ok := single.Payload().(Character); !ok {
		t.Fatalf("single payload must be a bare character")
	}

	list := Result{Kind: KindList, Items: []Character{{ID: 1}}}
	if _, ok := list.Payload().([]Character); !ok {
		t.Fatalf("list payload must be a bare slice")
	}

	empty := emptyResult()
	payload, ok := empty.Payload().(struct {
		Items []Character `json:"items"`
		Meta  PageMeta    `json:"meta"`
	})
	if !ok {
		t.Fatalf("empty payload must be an items/meta object")
	}
	if len(payload.Items) != 0 || payload.Meta.TotalItems != 0 {
		t.Fatalf("empty payload not empty: %+v", payload)
	}
}
