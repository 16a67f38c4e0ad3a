package admin

import (
	"testing"
	"time"

	"docmanagement/internal/domain"
	"docmanagement/internal/domain/models"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		location string
		entity   string
		view     View
		id       int64
		wantErr  error
	}{
		{location: "/folder", entity: "folder", view: ViewList},
		{location: "/document?page=2&sort=title,desc", entity: "document", view: ViewList},
		{location: "/folder/new", entity: "folder", view: ViewCreate},
		{location: "/document/12", entity: "document", view: ViewDetail, id: 12},
		{location: "/document/12/edit", entity: "document", view: ViewEdit, id: 12},
		{location: "/folder/3/delete", entity: "folder", view: ViewDelete, id: 3},
		{location: "/folder/abc", wantErr: domain.ErrValidation},
		{location: "/folder/3/archive", wantErr: domain.ErrNotFound},
		{location: "/invoice", wantErr: domain.ErrNotFound},
		{location: "/", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			r, err := ParseRoute(tt.location)
			if tt.wantErr != nil {
				if !errorIs(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Entity != tt.entity || r.View != tt.view || r.ID != tt.id {
				t.Errorf("got %+v", r)
			}
			again, err := ParseRoute(r.String())
			if err != nil || again.String() != r.String() {
				t.Errorf("round trip %q -> %q (%v)", r.String(), again.String(), err)
			}
		})
	}
}

func errorIs(err, target error) bool {
	return domain.KindOf(err) == domain.KindOf(target)
}

func TestPaginationState_SortBy(t *testing.T) {
	p := PaginationState{ActivePage: 4, ItemsPerPage: 20, Sort: "id", Order: models.ASC}

	p = p.SortBy("id")
	if p.Order != models.DESC || p.ActivePage != 1 {
		t.Errorf("same column: %+v", p)
	}
	p = p.SortBy("id")
	if p.Order != models.ASC {
		t.Errorf("toggle back: %+v", p)
	}
	p.Order = models.DESC
	p = p.SortBy("title")
	if p.Sort != "title" || p.Order != models.ASC {
		t.Errorf("new column: %+v", p)
	}
}

func TestPaginationFromQuery_Defaults(t *testing.T) {
	p := PaginationFromQuery(nil, 20)
	want := PaginationState{ActivePage: 1, ItemsPerPage: 20, Sort: "id", Order: models.ASC}
	if p != want {
		t.Errorf("got %+v, want %+v", p, want)
	}
}

func TestLocalInputRoundTrip(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	wire := time.Date(2024, 1, 31, 15, 4, 0, 0, time.UTC)

	local := ToLocalInput(&wire, loc)
	if local != "2024-01-31T12:04" {
		t.Fatalf("ToLocalInput = %q", local)
	}
	back, err := FromLocalInput("created", local, loc)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(wire) {
		t.Errorf("round trip = %v, want %v", back, wire)
	}

	if got, err := FromLocalInput("created", "", loc); got != nil || err != nil {
		t.Errorf("empty input = %v, %v", got, err)
	}
	if _, err := FromLocalInput("created", "31/01/2024", loc); domain.KindOf(err) != domain.KindValidation {
		t.Errorf("bad input err = %v", err)
	}
}
