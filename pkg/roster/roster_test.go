package roster

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestMemberFallbacks(t *testing.T) {
	var empty Member
	if empty.DisplayName() != UnknownName || empty.MajorName() != UnknownMajor || empty.DisplayRole() != DefaultRole {
		t.Fatalf("fallbacks: %q %q %q", empty.DisplayName(), empty.MajorName(), empty.DisplayRole())
	}
	if empty.Initial() != "?" {
		t.Fatalf("initial = %q", empty.Initial())
	}

	m := Member{Name: "王小明", Major: "2022级口腔医学", Role: "副部长"}
	if m.Initial() != "王" {
		t.Errorf("initial = %q", m.Initial())
	}
	if m.MajorName() != "口腔医学" {
		t.Errorf("major = %q", m.MajorName())
	}
	if (Member{Major: "护理学"}).MajorName() != "护理学" {
		t.Error("major without cohort should pass through")
	}
}

func TestDecode(t *testing.T) {
	r, err := Decode([]byte(`{"tech":[{"name":"赵六","role":"组长"},{}],"design":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Members("tech")) != 2 || r.Members("tech")[1].DisplayName() != UnknownName {
		t.Fatalf("unexpected decode: %+v", r)
	}
	if _, err := Decode([]byte(`[1,2,3]`)); err == nil {
		t.Fatal("a non-object document must fail")
	}
	if r, err := Decode([]byte(`null`)); err != nil || r == nil {
		t.Fatalf("null should decode to an empty roster: %v %v", r, err)
	}
}

func TestLookupDepartment(t *testing.T) {
	if d := LookupDepartment("photo"); d.Name != "摄影部" {
		t.Fatalf("photo = %+v", d)
	}
	if d := LookupDepartment("kitchen"); d.Name != UnknownDepartment.Name || d.Key != "kitchen" {
		t.Fatalf("unknown = %+v", d)
	}
	if HeadCount(5) != "5人" {
		t.Fatal(HeadCount(5))
	}
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultPath), []byte(`{"editorial":[{"name":"甲"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := FileFetcher{Dir: dir}.Fetch(context.Background())
	if err != nil || len(r.Members("editorial")) != 1 {
		t.Fatalf("fetch: %v %v", r, err)
	}

	_, err = FileFetcher{Dir: dir, Path: "missing.json"}.Fetch(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHTTPFetcherResolvesRelativePath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Path != "/report/team.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"design":[{"name":"乙","major":"2024级医学影像"}]}`))
	}))
	defer srv.Close()

	f := HTTPFetcher{BaseURL: srv.URL + "/report/index.html"}
	r, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/report/team.json" {
		t.Fatalf("requested %q", gotPath)
	}
	if r.Members("design")[0].MajorName() != "医学影像" {
		t.Fatalf("unexpected roster %+v", r)
	}

	_, err = HTTPFetcher{BaseURL: srv.URL + "/elsewhere/"}.Fetch(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHTTPFetcherRejectsBadStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken/team.json" {
			_, _ = w.Write([]byte(`{not json`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := (HTTPFetcher{BaseURL: srv.URL + "/"}).Fetch(context.Background()); err == nil {
		t.Fatal("500 must fail")
	}
	if _, err := (HTTPFetcher{BaseURL: srv.URL + "/broken/"}).Fetch(context.Background()); err == nil {
		t.Fatal("malformed json must fail")
	}
}

func TestSQLiteFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	stmts := []string{
		`CREATE TABLE members (dept TEXT NOT NULL, name TEXT, major TEXT, role TEXT, position INTEGER)`,
		`INSERT INTO members VALUES ('tech', '丁', NULL, '组长', 2)`,
		`INSERT INTO members VALUES ('tech', '丙', '2021级生物医学工程', NULL, 1)`,
		`INSERT INTO members VALUES ('leadership', NULL, NULL, NULL, NULL)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	db.Close()

	r, err := SQLiteFetcher{Path: path}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	tech := r.Members("tech")
	if len(tech) != 2 || tech[0].Name != "丙" || tech[1].DisplayRole() != "组长" {
		t.Fatalf("tech ordering/fields wrong: %+v", tech)
	}
	if lead := r.Members("leadership"); len(lead) != 1 || lead[0].DisplayName() != UnknownName {
		t.Fatalf("null row should map to fallbacks: %+v", lead)
	}
}
