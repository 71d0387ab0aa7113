package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "sjt-catalog" {
			t.Errorf("User-Agent = %q", got)
		}
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, `{"a":{}}`)
	}))
	defer srv.Close()

	c := NewClient()

	body, err := c.Get(context.Background(), srv.URL+"/data.json")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(body) != `{"a":{}}` {
		t.Errorf("Get() body = %q", body)
	}

	if _, err := c.Get(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("Get() on 404 should fail")
	}
}

func TestClient_PostFormKeepsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("email") == "" {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, "missing\n")
			return
		}
		http.Redirect(w, r, "/index.html#contacto", http.StatusFound)
	}))
	defer srv.Close()

	c := NewClient()

	resp, err := c.PostForm(context.Background(), srv.URL, url.Values{})
	if err != nil {
		t.Fatalf("PostForm() error: %v", err)
	}
	if resp.OK() || resp.Body != "missing" {
		t.Errorf("PostForm() = %+v, want 400 missing", resp)
	}

	resp, err = c.PostForm(context.Background(), srv.URL, url.Values{"email": {"a@b.co"}})
	if err != nil {
		t.Fatalf("PostForm() error: %v", err)
	}
	if resp.StatusCode != http.StatusFound || !resp.OK() {
		t.Errorf("PostForm() status = %d, want 302 treated as OK", resp.StatusCode)
	}
}
