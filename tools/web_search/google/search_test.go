package google

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDiscover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "test-key" || q.Get("cx") != "test-cx" {
			t.Errorf("missing credentials in query: %v", q)
		}
		if q.Get("q") != "golang release" {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("num") != "7" {
			t.Errorf("num = %q", q.Get("num"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[
			{"title":"First","link":"https://one.example","snippet":"s1"},
			{"title":"No link","snippet":"dropped"},
			{"title":"Second","link":"https://two.example","snippet":"s2"}
		]}`)
	}))
	defer srv.Close()

	s := Search{ApiKey: "test-key", EngineID: "test-cx", Endpoint: srv.URL}
	got, err := s.Discover(context.Background(), "golang release", 7)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2 (linkless item dropped)", len(got))
	}
	if got[0].URL != "https://one.example" || got[1].URL != "https://two.example" {
		t.Errorf("rank order lost: %+v", got)
	}
	if got[0].Title != "First" || got[0].Snippet != "s1" {
		t.Errorf("first result fields wrong: %+v", got[0])
	}
}

func TestDiscover_CapsAtK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[
			{"title":"a","link":"https://a.example"},
			{"title":"b","link":"https://b.example"},
			{"title":"c","link":"https://c.example"}
		]}`)
	}))
	defer srv.Close()

	got, err := Search{ApiKey: "k", EngineID: "cx", Endpoint: srv.URL}.Discover(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}
}

func TestDiscover_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := (Search{ApiKey: "k", EngineID: "cx", Endpoint: srv.URL}).Discover(context.Background(), "q", 5); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestDiscover_EmptyItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	got, err := Search{ApiKey: "k", EngineID: "cx", Endpoint: srv.URL}.Discover(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
}
