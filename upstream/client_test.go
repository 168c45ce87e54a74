package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourdesk/wire"
)

func TestListBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/explore/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"1"},{"id":"2"}]`))
	}))
	defer srv.Close()

	items, err := New(srv.URL, "").List(context.Background(), "explore")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0]["id"] != "1" {
		t.Errorf("items: %v", items)
	}
}

func TestListWrappedData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"9"}]}`))
	}))
	defer srv.Close()

	items, err := New(srv.URL, "").List(context.Background(), "packages")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0]["id"] != "9" {
		t.Errorf("items: %v", items)
	}
}

func TestBackendMessageSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":true,"message":"title already taken"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Get(context.Background(), "explore", "1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %T %v", err, err)
	}
	if apiErr.Message != "title already taken" {
		t.Errorf("backend message must pass through, got %q", apiErr.Message)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.Status)
	}
}

func TestBareStatusGetsGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "stack trace here", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Get(context.Background(), "explore", "1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %T %v", err, err)
	}
	if apiErr.Message != genericFailure {
		t.Errorf("raw server text must never leak, got %q", apiErr.Message)
	}
}

func TestTransportFailureIsAPIError(t *testing.T) {
	c := New("http://127.0.0.1:1", "")
	_, err := c.Get(context.Background(), "explore", "1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %T %v", err, err)
	}
	if apiErr.Status != 0 || apiErr.Message != genericFailure {
		t.Errorf("transport failure shape: %+v", apiErr)
	}
}

func TestBearerTokenInjected(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "sekret").Get(context.Background(), "explore", "1"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "Bearer sekret" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestCreateSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if v := r.FormValue("sight[title]"); v != "Goa" {
			t.Errorf("sight[title] = %q", v)
		}
		w.Write([]byte(`{"id":"new-1"}`))
	}))
	defer srv.Close()

	fs := &wire.FieldSet{}
	fs.AddValue("sight[title]", "Goa")
	obj, err := New(srv.URL, "").Create(context.Background(), "explore", fs)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if obj["id"] != "new-1" {
		t.Errorf("response: %v", obj)
	}
}

func TestGetRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":"1"}`))
	}))
	defer srv.Close()

	obj, err := New(srv.URL, "").Get(context.Background(), "explore", "1")
	if err != nil {
		t.Fatalf("Get after retries: %v", err)
	}
	if obj["id"] != "1" || attempts != 3 {
		t.Errorf("obj=%v attempts=%d", obj, attempts)
	}
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "").Get(context.Background(), "explore", "1"); err == nil {
		t.Fatal("expected failure")
	}
	if attempts != 1 {
		t.Errorf("4xx must not be retried, got %d attempts", attempts)
	}
}

func TestDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/explore/7/" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	if err := New(srv.URL, "").Delete(context.Background(), "explore", "7"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
