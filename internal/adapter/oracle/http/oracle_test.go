package httporacle

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"soulledger/internal/app/ports"
	"soulledger/internal/domain/asset"
)

func TestOracle_ReturnsRawAccountData(t *testing.T) {
	want := asset.EncodeAccount("holder-1", []byte{9, 9})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets/asset-1/account" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(want)
	}))
	defer srv.Close()

	o, err := New(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new oracle: %v", err)
	}
	got, err := o.AccountData(context.Background(), "asset-1")
	if err != nil {
		t.Fatalf("account data: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("body got=%v want=%v", got, want)
	}
	owner, err := asset.DecodeOwner(got)
	if err != nil || owner != "holder-1" {
		t.Fatalf("decoded owner got=%q err=%v", owner, err)
	}

	if _, err := o.AccountData(context.Background(), "asset-2"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOracle_ServerErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	o, err := New(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new oracle: %v", err)
	}
	if _, err := o.AccountData(context.Background(), "asset-1"); err == nil || errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected non-notfound error, got %v", err)
	}
}
