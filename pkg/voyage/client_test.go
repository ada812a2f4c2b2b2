package voyage_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aegnt-unltd/pkg/voyage"
)

func TestVoyageClient(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-voyage-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"bad key","type":"auth"}}`))
			return
		}

		var req voyage.EmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if len(req.Input) > 0 && req.Input[0] == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if req.InputType != voyage.InputTypeQuery && req.InputType != voyage.InputTypeDocument {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Answer out of order to exercise index placement.
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"data": [
				{"embedding": [0.4, 0.5], "index": 1},
				{"embedding": [0.1, 0.2], "index": 0}
			]
		}`))
	}))
	defer ts.Close()

	client, _ := voyage.New("test-voyage-key")
	client.WithBaseURL(ts.URL).WithModel("custom-model")

	t.Run("Success Flow", func(t *testing.T) {
		emb, err := client.Embed(context.Background(), []string{"first", "second"}, voyage.InputTypeDocument)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(emb) != 2 || emb[0][0] != 0.1 || emb[1][0] != 0.4 {
			t.Errorf("unexpected embeddings: %v", emb)
		}
	})

	t.Run("Count Mismatch", func(t *testing.T) {
		_, err := client.Embed(context.Background(), []string{"only one"}, voyage.InputTypeQuery)
		if err == nil {
			t.Fatalf("expected error for mismatched embedding count")
		}
	})

	t.Run("Server Error Flow", func(t *testing.T) {
		if _, err := client.Embed(context.Background(), []string{"cause_500"}, voyage.InputTypeQuery); err == nil {
			t.Fatalf("expected error from 500 response")
		}
	})

	t.Run("Unauthorized Error Flow", func(t *testing.T) {
		badClient, _ := voyage.New("bad-key")
		badClient.WithBaseURL(ts.URL)
		_, err := badClient.Embed(context.Background(), []string{"Hello world"}, voyage.InputTypeQuery)
		if err == nil || !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "bad key") {
			t.Fatalf("expected 401 error, got %v", err)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		if _, err := client.Embed(context.Background(), nil, voyage.InputTypeQuery); err == nil {
			t.Fatalf("expected error for empty input")
		}
	})

	t.Run("Missing Key", func(t *testing.T) {
		if _, err := voyage.New(""); err == nil {
			t.Fatalf("expected error for missing key")
		}
	})
}
