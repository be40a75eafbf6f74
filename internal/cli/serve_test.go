package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func testRouter() http.Handler {
	return newRouter(newLogger(io.Discard, log.FatalLevel))
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if id := rec.Header().Get("X-Request-ID"); id == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestServeShuffle(t *testing.T) {
	body := `{"items":["a","b","c","d","e","f","g","h","i","j","k","l"],"seed":"170141183460469231731687303715884105727"}`
	rec := postJSON(t, testRouter(), "/v1/shuffle", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp rearrangeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}

	want := []string{"l", "h", "k", "e", "a", "b", "d", "c", "g", "f", "j", "i"}
	if len(resp.Result) != len(want) {
		t.Fatalf("result length = %d, want %d", len(resp.Result), len(want))
	}
	for i := range want {
		if resp.Result[i] != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, resp.Result[i], want[i])
		}
	}
	if resp.Family != "permutation" {
		t.Errorf("family = %q, want \"permutation\"", resp.Family)
	}
}

func TestServeDeterministic(t *testing.T) {
	// The API is stateless: identical requests always yield identical
	// responses.
	router := testRouter()
	body := `{"items":["w","x","y","z"],"seed":"19"}`

	first := postJSON(t, router, "/v1/cyclic", body).Body.String()
	second := postJSON(t, router, "/v1/cyclic", body).Body.String()
	if first != second {
		t.Errorf("responses differ:\n%s\n%s", first, second)
	}
}

func TestServeDerangementRejectsSingleton(t *testing.T) {
	rec := postJSON(t, testRouter(), "/v1/derangement", `{"items":["solo"],"seed":"0"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error JSON: %v", err)
	}
	if resp.Code != "DOMAIN_ERROR" {
		t.Errorf("code = %q, want DOMAIN_ERROR", resp.Code)
	}
}

func TestServeBadSeed(t *testing.T) {
	rec := postJSON(t, testRouter(), "/v1/shuffle", `{"items":["a","b"],"seed":"-5"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != "INVALID_SEED" {
		t.Errorf("code = %q, want INVALID_SEED", resp.Code)
	}
}

func TestServeBadJSON(t *testing.T) {
	rec := postJSON(t, testRouter(), "/v1/shuffle", `{"items": [`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestServeEntropy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/entropy?n=12&family=permutation", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp entropyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Bits != 29 {
		t.Errorf("bits = %d, want 29", resp.Bits)
	}
	if resp.Count != "479001600" {
		t.Errorf("count = %q, want 479001600", resp.Count)
	}
}

func TestServeEntropyWithPeriod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/entropy?n=52&period=18446744073709551616", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp entropyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Passes != 4 {
		t.Errorf("passes = %d, want 4", resp.Passes)
	}
}

func TestServeEntropyBadFamily(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/entropy?n=5&family=bogus", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
