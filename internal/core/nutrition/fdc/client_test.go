package fdc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-recommender/internal/core/nutrition"
	"recipe-recommender/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.FDC.BaseURL = server.URL
	cfg.FDC.APIKey = "test-key"
	cfg.FDC.Timeout = 2 * time.Second
	cfg.FDC.PageSize = 5

	return NewClient(cfg), server
}

func TestSearch_NormalizesFoods(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/foods/search" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Fatalf("missing api key")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"foods": [
				{
					"fdcId": 222,
					"description": "Low Salt Chicken",
					"foodNutrients": [{"nutrientName": "Sodium, Na", "unitName": "MG", "value": 200}],
					"ingredients": "chicken"
				},
				{
					"fdcId": 333,
					"foodNutrients": [{"nutrientName": "Sodium, Na", "unitName": "MG", "value": 10}]
				},
				{
					"fdcId": 444,
					"description": "Mystery Meat",
					"foodNutrients": [{"nutrientName": "Protein", "unitName": "G", "value": 12}]
				}
			]
		}`))
	})

	facts, err := client.Search(context.Background(), "chicken")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The record without a description is skipped.
	if len(facts) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(facts))
	}

	first := facts[0]
	if first.Description != "Low Salt Chicken" {
		t.Fatalf("unexpected description: %q", first.Description)
	}
	if first.FDCID == nil || *first.FDCID != 222 {
		t.Fatalf("unexpected fdcId: %v", first.FDCID)
	}
	if first.SodiumMg == nil || *first.SodiumMg != 200 {
		t.Fatalf("unexpected sodium: %v", first.SodiumMg)
	}

	// No sodium entry means unknown, never zero.
	if facts[1].SodiumMg != nil {
		t.Fatalf("expected nil sodium for record without sodium entry")
	}
}

func TestSearch_ConvertsGramsToMilligrams(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods": [{
			"description": "Broth",
			"foodNutrients": [{"nutrientNumber": "307", "unitName": "G", "value": 1.2}]
		}]}`))
	})

	facts, err := client.Search(context.Background(), "broth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facts[0].SodiumMg == nil || *facts[0].SodiumMg != 1200 {
		t.Fatalf("expected 1200mg, got %v", facts[0].SodiumMg)
	}
}

func TestSearch_MissingFoodsListIsMalformed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalHits": 0}`))
	})

	_, err := client.Search(context.Background(), "chicken")
	re, ok := nutrition.AsResolutionError(err)
	if !ok {
		t.Fatalf("expected resolution error, got %v", err)
	}
	if re.Kind != nutrition.KindMalformedResponse {
		t.Fatalf("unexpected kind: %v", re.Kind)
	}
}

func TestSearch_InvalidJSONIsMalformed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.Search(context.Background(), "chicken")
	re, ok := nutrition.AsResolutionError(err)
	if !ok {
		t.Fatalf("expected resolution error, got %v", err)
	}
	if re.Kind != nutrition.KindMalformedResponse {
		t.Fatalf("unexpected kind: %v", re.Kind)
	}
}

func TestSearch_ServerErrorIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), "chicken")
	re, ok := nutrition.AsResolutionError(err)
	if !ok {
		t.Fatalf("expected resolution error, got %v", err)
	}
	if re.Kind != nutrition.KindUnavailable {
		t.Fatalf("unexpected kind: %v", re.Kind)
	}
}

func TestSearch_UnreachableProviderIsUnavailable(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.Search(context.Background(), "chicken")
	re, ok := nutrition.AsResolutionError(err)
	if !ok {
		t.Fatalf("expected resolution error, got %v", err)
	}
	if re.Kind != nutrition.KindUnavailable {
		t.Fatalf("unexpected kind: %v", re.Kind)
	}
}

func TestSearch_EmptyFoodsListIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods": []}`))
	})

	facts, err := client.Search(context.Background(), "unobtainium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(facts) != 0 {
		t.Fatalf("expected no facts, got %d", len(facts))
	}
}
