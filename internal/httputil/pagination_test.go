package httputil

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"docmanagement/internal/domain/models"
)

func TestSetPaginationHeaders_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		size  int
		total int64
	}{
		{name: "first of many", page: 0, size: 20, total: 45},
		{name: "middle", page: 1, size: 20, total: 45},
		{name: "last", page: 2, size: 20, total: 45},
		{name: "empty", page: 0, size: 20, total: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqURL, _ := url.Parse("/api/folders?page=9&size=1&sort=title,desc")
			page := &models.Page[models.Folder]{
				Page:  tt.page,
				Size:  tt.size,
				Total: tt.total,
				Links: models.ComputeLinks(tt.page, tt.size, tt.total),
			}

			rec := httptest.NewRecorder()
			SetPaginationHeaders(rec, reqURL, page)

			if got := rec.Header().Get(TotalCountHeader); got == "" {
				t.Fatal("missing X-Total-Count")
			}
			header := rec.Header().Get(LinkHeader)
			if !strings.Contains(header, "sort=title%2Cdesc") {
				t.Errorf("sort not preserved in %q", header)
			}

			links, err := ParseLinkHeader(header)
			if err != nil {
				t.Fatalf("ParseLinkHeader: %v", err)
			}
			if links != page.Links {
				t.Errorf("got %+v, want %+v", links, page.Links)
			}
		})
	}
}

func TestParseLinkHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    models.Links
		wantErr bool
	}{
		{name: "empty", header: "", want: models.Links{}},
		{
			name:   "absolute urls",
			header: `<http://localhost:8080/api/documents?page=3&size=20>; rel="next",<http://localhost:8080/api/documents?page=7&size=20>; rel="last",<http://localhost:8080/api/documents?page=0&size=20>; rel="first"`,
			want:   models.Links{Next: 3, HasNext: true, Last: 7},
		},
		{name: "garbage", header: "nonsense", wantErr: true},
		{name: "bad page", header: `</api/folders?page=x>; rel="next"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLinkHeader(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
