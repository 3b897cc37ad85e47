package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/nyanko/internal/config"
	"github.com/tomz197/nyanko/internal/storage"
)

func TestHighScoreEndpoint(t *testing.T) {
	store := storage.NewMemory()
	_ = store.Set(config.HighScoreKey, "350")
	ts := httptest.NewServer(newRouter("<html></html>", store, log.New(io.Discard)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/highscore")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		HighScore int `json:"highScore"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.HighScore != 350 {
		t.Fatalf("highScore = %d, want 350", body.HighScore)
	}
}

func TestHighScoreEndpointDefaultsToZero(t *testing.T) {
	store := storage.NewMemory()
	_ = store.Set(config.HighScoreKey, "garbage")
	ts := httptest.NewServer(newRouter("", store, log.New(io.Discard)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/highscore")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), `"highScore":0`) {
		t.Fatalf("body = %s", data)
	}
}

func TestIndexPage(t *testing.T) {
	ts := httptest.NewServer(newRouter("<h1>NYANKO</h1>", storage.NewMemory(), log.New(io.Discard)))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if string(data) != "<h1>NYANKO</h1>" {
		t.Fatalf("body = %q", data)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
}
