package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string, defaultLimit int) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return FromContext(c, defaultLimit)
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		defaultLimit int
		wantPage     int
		wantLimit    int
	}{
		{name: "defaults", query: "", defaultLimit: 10, wantPage: 1, wantLimit: 10},
		{name: "explicit", query: "page=3&limit=25", defaultLimit: 10, wantPage: 3, wantLimit: 25},
		{name: "negative page clamped", query: "page=-1", defaultLimit: 20, wantPage: 1, wantLimit: 20},
		{name: "zero limit falls back", query: "limit=0", defaultLimit: 20, wantPage: 1, wantLimit: 20},
		{name: "limit clamped to max", query: "limit=1000", defaultLimit: 10, wantPage: 1, wantLimit: MaxLimit},
		{name: "garbage ignored", query: "page=abc&limit=xyz", defaultLimit: 10, wantPage: 1, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paramsFor(t, tt.query, tt.defaultLimit)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d",
					got.Page, got.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestParams_Skip(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	if got := p.Skip(); got != 20 {
		t.Errorf("Skip() = %d, want 20", got)
	}
}

func TestParams_Pages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
	}
	for _, tt := range tests {
		p := Params{Page: 1, Limit: tt.limit}
		if got := p.Pages(tt.total); got != tt.want {
			t.Errorf("Pages(%d) with limit %d = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, Limit: 10}, 35)
	if meta.Page != 2 || meta.Limit != 10 || meta.Total != 35 || meta.Pages != 4 {
		t.Errorf("unexpected meta: %+v", meta)
	}
}
