package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestPage_DecodesDeclaredCharset(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        []byte
		want        string
	}{
		{
			name:        "no charset defaults to utf-8",
			contentType: "text/html",
			body:        []byte("caf\xc3\xa9"),
			want:        "café",
		},
		{
			name:        "latin-1",
			contentType: "text/html; charset=ISO-8859-1",
			body:        []byte("caf\xe9"),
			want:        "café",
		},
		{
			name:        "explicit utf-8",
			contentType: "text/html; charset=utf-8",
			body:        []byte("na\xc3\xafve"),
			want:        "naïve",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				_, _ = w.Write(tc.body)
			}))
			defer srv.Close()

			c := New(srv.Client(), nil)
			got, err := c.Page(context.Background(), srv.URL)
			if err != nil {
				t.Fatalf("Page: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Page = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestPage_SendsSessionHeaders(t *testing.T) {
	var gotToken, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-CSRFToken")
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	h := http.Header{}
	h.Set("X-CSRFToken", "tok")
	c := New(srv.Client(), h)
	if _, err := c.Page(context.Background(), srv.URL); err != nil {
		t.Fatalf("Page: %v", err)
	}
	if gotToken != "tok" {
		t.Errorf("X-CSRFToken = %q; want %q", gotToken, "tok")
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q; want default %q", gotUA, DefaultUserAgent)
	}
}

func TestPage_NonSuccessStatusIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.Client(), nil).Page(context.Background(), srv.URL)
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v; want *NetworkError", err)
	}
	if nerr.Status != http.StatusNotFound {
		t.Errorf("Status = %d; want 404", nerr.Status)
	}
	if !errors.Is(err, ErrStatus) {
		t.Errorf("errors.Is(err, ErrStatus) = false")
	}
}

func TestBytes_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	c := New(srv.Client(), nil)
	c.MaxBytes = 4
	if _, err := c.Bytes(context.Background(), srv.URL); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v; want ErrTooLarge", err)
	}
}

func TestPostForm_DecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s; want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		if r.PostForm.Get("email") != "a@b.c" {
			t.Errorf("email = %q", r.PostForm.Get("email"))
		}
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	var out struct {
		Success bool `json:"success"`
	}
	err := New(srv.Client(), nil).PostForm(context.Background(), srv.URL, url.Values{"email": {"a@b.c"}}, &out)
	if err != nil {
		t.Fatalf("PostForm: %v", err)
	}
	if !out.Success {
		t.Fatalf("success = false; want true")
	}
}

func TestFetchJSON_Generic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "2024.01.01"}`))
	}))
	defer srv.Close()

	type release struct {
		TagName string `json:"tag_name"`
	}
	got, err := FetchJSON[release](context.Background(), New(srv.Client(), nil), srv.URL)
	if err != nil {
		t.Fatalf("FetchJSON: %v", err)
	}
	if got.TagName != "2024.01.01" {
		t.Fatalf("TagName = %q", got.TagName)
	}
}

func TestPage_InvalidURL(t *testing.T) {
	_, err := New(nil, nil).Page(context.Background(), "::not a url")
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v; want *NetworkError", err)
	}
}
