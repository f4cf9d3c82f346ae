package api

import (
	"encoding/json"
	"testing"
)

func unmarshalNorm(t *testing.T, body string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(normalize([]byte(body), "application/json"), &out); err != nil {
		t.Fatalf("unmarshal normalized: %v", err)
	}
	return out
}

func TestNormalize_RoundTrip(t *testing.T) {
	t.Parallel()

	// X must not itself contain a field named "data"
	bodies := []string{
		`{"id":"r-1","title":"wound care"}`,
		`{"data":{"id":"r-1","title":"wound care"}}`,
		`{"success":true,"data":{"success":true,"data":{"id":"r-1","title":"wound care"}}}`,
	}
	for _, body := range bodies {
		got := unmarshalNorm(t, body)
		if got["id"] != "r-1" || got["title"] != "wound care" {
			t.Fatalf("normalize(%s) = %v", body, got)
		}
	}
}

func TestNormalize_StopsAfterTwoLevels(t *testing.T) {
	t.Parallel()

	// triple wrap: the innermost extraction still carries a data field
	got := unmarshalNorm(t, `{"data":{"data":{"data":{"id":"x"}}}}`)
	if _, ok := got["data"]; !ok {
		t.Fatalf("want last extracted value to keep its data field, got %v", got)
	}
}

func TestNormalize_NonEnvelopeObjects(t *testing.T) {
	t.Parallel()

	got := unmarshalNorm(t, `{"message":"ok","count":2}`)
	if got["message"] != "ok" {
		t.Fatalf("object without data field must pass through, got %v", got)
	}
}

func TestNormalize_Arrays(t *testing.T) {
	t.Parallel()

	var out []int
	if err := json.Unmarshal(normalize([]byte(`[1,2,3]`), "application/json"), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("arrays must pass through, got %v", out)
	}

	if err := json.Unmarshal(normalize([]byte(`{"data":[1,2]}`), "application/json"), &out); err != nil {
		t.Fatalf("unmarshal wrapped array: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("wrapped arrays must unwrap, got %v", out)
	}
}

func TestNormalize_PlainText(t *testing.T) {
	t.Parallel()

	got := normalize([]byte("service restarting"), "text/plain; charset=utf-8")
	var out map[string]string
	if err := json.Unmarshal(got, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["message"] != "service restarting" {
		t.Fatalf("text bodies wrap as message, got %v", out)
	}
}
