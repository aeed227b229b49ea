package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tarot/internal/app"
	"tarot/internal/ports"
)

func testRecord() ports.GameRecord {
	return ports.GameRecord{
		PlayerIDs:  []string{"p1", "p2", "p3", "p4"},
		NumPlayers: 4,
		TakerID:    "p1",
		Contract:   "garde",
		Oudlers:    2,
		Scores:     map[string]int{"p1": 96, "p2": -32, "p3": -32, "p4": -32},
	}
}

func TestSinkInsertsRecord(t *testing.T) {
	var gotPath, gotAuth string
	var gotRecord ports.GameRecord

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotRecord); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	tokens := app.NewStorageTokenService("test-secret", "tarot", "game-logs")
	sink := NewSink(server.URL, tokens)

	if err := sink.WriteGameRecord(context.Background(), testRecord()); err != nil {
		t.Fatalf("WriteGameRecord: %v", err)
	}

	if gotPath != "/rest/v1/game_logs" {
		t.Errorf("path = %s, want /rest/v1/game_logs", gotPath)
	}
	if !strings.HasPrefix(gotAuth, "Bearer ") {
		t.Errorf("Authorization = %q, want a bearer token", gotAuth)
	}
	if gotRecord.TakerID != "p1" || gotRecord.Contract != "garde" {
		t.Errorf("record = %+v, want taker p1 with garde", gotRecord)
	}
}

func TestSinkReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tokens := app.NewStorageTokenService("test-secret", "tarot", "")
	sink := NewSink(server.URL, tokens)

	if err := sink.WriteGameRecord(context.Background(), testRecord()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestSinkRequiresTokenConfig(t *testing.T) {
	tokens := app.NewStorageTokenService("", "", "")
	sink := NewSink("http://localhost:1", tokens)

	if err := sink.WriteGameRecord(context.Background(), testRecord()); err == nil {
		t.Fatal("expected error for incomplete token config")
	}
}
