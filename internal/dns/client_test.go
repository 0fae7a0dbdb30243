package dns

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientQuerySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Status":0,"Answer":[{"data":"10 mx.example.com.","type":15}]}`))
	}))
	defer srv.Close()

	c := NewClient([]string{srv.URL}, 2*time.Second)

	result, err := c.Query(context.Background(), "example.com", TypeMX)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !result.Success || len(result.Records) != 1 || result.Records[0] != "10 mx.example.com." {
		t.Fatalf("result = %+v, want one mx record", result)
	}
}

func TestClientQueryFallsBackToNextProvider(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Status":0,"Answer":[{"data":"93.184.216.34","type":1}]}`))
	}))
	defer good.Close()

	c := NewClient([]string{bad.URL, good.URL}, 2*time.Second)

	result, err := c.Query(context.Background(), "example.com", TypeA)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("result.Success = false, want true (fallback to second provider)")
	}
}

func TestClientQueryAllProvidersFail(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	c := NewClient([]string{bad.URL}, 2*time.Second)

	result, err := c.Query(context.Background(), "example.com", TypeA)
	if err == nil {
		t.Fatal("expected error when all providers fail")
	}
	if result.Success {
		t.Error("result.Success = true, want false")
	}
}

func TestClientQueryEmptyAnswerIsSuccessfulResult(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Status":0,"Answer":[]}`))
	}))
	defer empty.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Status":0,"Answer":[{"data":"10 mx.example.com.","type":15}]}`))
	}))
	defer good.Close()

	c := NewClient([]string{empty.URL, good.URL}, 2*time.Second)

	result, err := c.Query(context.Background(), "example.com", TypeMX)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !result.Success {
		t.Fatal("expected a Status-0 empty answer to be a successful result")
	}
}
