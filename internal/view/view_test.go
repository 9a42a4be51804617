package view

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/aanand-mishra/student-directory/internal/types"
)

func student(id, email string) types.Student {
	return types.Student{ID: id, StudentFields: types.StudentFields{Name: "S " + id, Email: email}}
}

func numbered(n int) []types.Student {
	out := make([]types.Student, n)
	for i := range out {
		id := fmt.Sprintf("%d", i+1)
		out[i] = student(id, "student"+id+"@school.edu")
	}
	return out
}

func recordIDs(records []types.Student) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilterMatchesEmailIgnoringCase(t *testing.T) {
	records := []types.Student{student("1", "A@x.com"), student("2", "b@y.com")}

	got := Filter(records, "a@")
	if !reflect.DeepEqual(recordIDs(got), []string{"1"}) {
		t.Fatalf("expected only record 1, got %v", recordIDs(got))
	}

	got = Filter(records, "Y.COM")
	if !reflect.DeepEqual(recordIDs(got), []string{"2"}) {
		t.Fatalf("expected only record 2, got %v", recordIDs(got))
	}
}

func TestFilterIgnoresOtherFields(t *testing.T) {
	r := student("1", "someone@x.com")
	r.Name = "Alice"
	if got := Filter([]types.Student{r}, "alice"); len(got) != 0 {
		t.Fatalf("name must not be searched, got %v", recordIDs(got))
	}
}

func TestFilterEmptyTermKeepsAll(t *testing.T) {
	records := numbered(3)
	got := Filter(records, "")
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("expected all records, got %v", recordIDs(got))
	}
	got[0].Email = "changed"
	if records[0].Email == "changed" {
		t.Fatal("filter result aliases its input")
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	records := numbered(12)
	once := Filter(records, "1")
	twice := Filter(once, "1")
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected idempotent filter, got %v then %v", recordIDs(once), recordIDs(twice))
	}
}

func TestProjectPages(t *testing.T) {
	records := numbered(12)

	tests := []struct {
		page  int
		want  []string
		first int
		last  int
	}{
		{1, []string{"1", "2", "3", "4", "5"}, 0, 5},
		{2, []string{"6", "7", "8", "9", "10"}, 5, 10},
		{3, []string{"11", "12"}, 10, 12},
		{4, []string{}, 12, 12},
		{0, []string{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			res := Project(records, Query{Page: tt.page, PageSize: 5})
			if !reflect.DeepEqual(recordIDs(res.Records), tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, recordIDs(res.Records))
			}
			if res.TotalPages != 3 || res.TotalFiltered != 12 {
				t.Fatalf("expected 3 pages of 12, got %d pages of %d", res.TotalPages, res.TotalFiltered)
			}
			if res.FirstIndex != tt.first || res.LastIndex != tt.last {
				t.Fatalf("expected range [%d,%d), got [%d,%d)", tt.first, tt.last, res.FirstIndex, res.LastIndex)
			}
		})
	}
}

func TestProjectFiltersBeforePaging(t *testing.T) {
	records := numbered(12)
	res := Project(records, Query{Search: "STUDENT1", Page: 1, PageSize: 5})
	// student1, student10, student11, student12
	if !reflect.DeepEqual(recordIDs(res.Records), []string{"1", "10", "11", "12"}) {
		t.Fatalf("unexpected records %v", recordIDs(res.Records))
	}
	if res.TotalFiltered != 4 || res.TotalPages != 1 {
		t.Fatalf("expected 4 filtered on 1 page, got %d on %d", res.TotalFiltered, res.TotalPages)
	}
	if !reflect.DeepEqual(res.Window, []int{1}) {
		t.Fatalf("unexpected window %v", res.Window)
	}
}

func TestProjectEmptyCollection(t *testing.T) {
	res := Project(nil, Query{Page: 1, PageSize: 5})
	if res.Records == nil || len(res.Records) != 0 {
		t.Fatalf("expected empty non-nil records, got %#v", res.Records)
	}
	if res.TotalPages != 0 || len(res.Window) != 0 {
		t.Fatalf("expected no pages, got %d %v", res.TotalPages, res.Window)
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		n, page, size int
		want          Page
	}{
		{12, 1, 5, Page{First: 0, Last: 5, Size: 5, TotalPages: 3}},
		{12, 3, 5, Page{First: 10, Last: 12, Size: 5, TotalPages: 3}},
		{10, 2, 5, Page{First: 5, Last: 10, Size: 5, TotalPages: 2}},
		{10, 3, 5, Page{First: 10, Last: 10, Size: 5, TotalPages: 2}},
		{0, 1, 5, Page{First: 0, Last: 0, Size: 5, TotalPages: 0}},
		{3, 1, 0, Page{First: 0, Last: 1, Size: 1, TotalPages: 3}},
		{3, -1, 5, Page{First: 0, Last: 0, Size: 5, TotalPages: 1}},
	}
	for _, tt := range tests {
		if got := Paginate(tt.n, tt.page, tt.size); got != tt.want {
			t.Fatalf("Paginate(%d, %d, %d) = %+v, want %+v", tt.n, tt.page, tt.size, got, tt.want)
		}
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 0, []int{}},
		{1, 1, []int{1}},
		{3, 5, []int{1, 2, 3, 4, 5}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{2, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{8, 10, []int{6, 7, 8, 9, 10}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{3, 6, []int{1, 2, 3, 4, 5}},
		{6, 6, []int{2, 3, 4, 5, 6}},
		{math.MaxInt, 10, []int{6, 7, 8, 9, 10}},
		{math.MinInt, 10, []int{1, 2, 3, 4, 5}},
		{0, 10, []int{1, 2, 3, 4, 5}},
		{99, 10, []int{6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		if got := PageWindow(tt.current, tt.total); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("PageWindow(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestClampPageSize(t *testing.T) {
	tests := []struct{ size, def, max, want int }{
		{0, 5, 100, 5},
		{7, 5, 100, 7},
		{500, 5, 100, 100},
		{0, 0, 0, 1},
		{-3, 5, 0, 5},
	}
	for _, tt := range tests {
		if got := ClampPageSize(tt.size, tt.def, tt.max); got != tt.want {
			t.Fatalf("ClampPageSize(%d, %d, %d) = %d, want %d", tt.size, tt.def, tt.max, got, tt.want)
		}
	}
}
