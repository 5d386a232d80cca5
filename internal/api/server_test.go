package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"github.com/amtfdev/hedgecalculator/internal/chart"
	"github.com/amtfdev/hedgecalculator/internal/config"
	"github.com/amtfdev/hedgecalculator/internal/hedge"
	"github.com/amtfdev/hedgecalculator/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)
}

func newTestServer() *Server {
	return NewServer(config.Default(), zerolog.Nop(), hedge.BuiltinPresets(), fixedClock)
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d %s", rec.Code, rec.Body.String())
	}

	var report HealthReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !report.OK || report.Status == HealthStatusUnhealthy {
		t.Errorf("report = %+v", report)
	}
	names := make([]string, 0, len(report.Components))
	for _, c := range report.Components {
		names = append(names, c.Name)
	}
	if strings.Join(names, ",") != "engine,memory,goroutines" {
		t.Errorf("components = %v", names)
	}
}

func TestRecoverPanics(t *testing.T) {
	srv := newTestServer()
	h := srv.recoverPanics(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

// A recovered panic under compression still yields a decodable 500 body.
func TestRecoverPanics_Compressed(t *testing.T) {
	srv := newTestServer()
	h := srv.wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "zstd")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if rec.Header().Get("Content-Encoding") != "zstd" {
		t.Fatalf("Content-Encoding = %q", rec.Header().Get("Content-Encoding"))
	}
	dec, err := zstd.NewReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()

	var body errorResponse
	if err := json.NewDecoder(dec).Decode(&body); err != nil {
		t.Fatalf("decode compressed body: %v", err)
	}
	if body.Status != http.StatusInternalServerError || body.Error != "internal error" {
		t.Errorf("body = %+v", body)
	}
}

func TestWriteJSON_Unencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	err := writeJSON(rec, http.StatusOK, map[string]float64{"x": math.Inf(1)})
	if err == nil {
		t.Error("expected an encode error")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body.Status != http.StatusInternalServerError {
		t.Errorf("body = %+v (%v)", body, err)
	}
}

func TestCalc_OverflowingInputs(t *testing.T) {
	body := `{"multiplier": 1, "notional": "1e308", "spot": 9500,
		"options": [{"expiry": "2025-01-01", "strike": "0.5", "ask": "1"}]}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/v1/calc", body)
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("status = %d body %q", rec.Code, rec.Body.String())
	}

	var res hedge.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Solutions) != 1 || res.Solutions[0].CostFull != 0 || res.Solutions[0].QtyFull != 0 {
		t.Errorf("solutions = %+v", res.Solutions)
	}

	exp := do(t, newTestServer(), http.MethodPost, "/api/v1/export", `{"inputs": `+body+`}`)
	if exp.Code != http.StatusOK || !strings.Contains(exp.Body.String(), `"costFull": "0.00"`) {
		t.Errorf("export = %d %s", exp.Code, exp.Body.String())
	}
}

func TestDefaults_MatchesResetState(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/v1/defaults", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res hedge.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := hedge.NewSession(fixedClock).Init()
	if len(res.Solutions) != 3 || res.Summary != want.Summary {
		t.Errorf("defaults = %+v, want summary %+v", res.Summary, want.Summary)
	}
	for i := range want.Solutions {
		if res.Solutions[i].CostFull != want.Solutions[i].CostFull {
			t.Errorf("solution %d cost %v, want %v", i, res.Solutions[i].CostFull, want.Solutions[i].CostFull)
		}
	}
}

func TestIndexes(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/v1/indexes", "")
	var presets []models.IndexPreset
	if err := json.NewDecoder(rec.Body).Decode(&presets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(presets) != 4 || presets[0].Key != "CUSTOM" {
		t.Errorf("presets = %+v", presets)
	}
}

func TestCalc_LooseNumbers(t *testing.T) {
	body := `{
		"currency": "£", "index": "FTSE 100",
		"multiplier": 10, "notional": "100000", "spot": 9500,
		"options": [
			{"expiry": "2025-03-01", "strike": 9300, "ask": "90"},
			{"expiry": "2025-01-01", "strike": "9000", "ask": 20},
			{"expiry": "", "strike": 9100, "ask": 1},
			{"expiry": "2025-02-01", "strike": null, "ask": true}
		]
	}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/v1/calc", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var res hedge.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Solutions) != 2 || res.Dropped != 2 || !res.ShowResults {
		t.Fatalf("solutions %d dropped %d", len(res.Solutions), res.Dropped)
	}
	if res.Solutions[0].Expiry != "2025-01-01" || res.Solutions[0].PremiumPerContract != 200 {
		t.Errorf("first = %+v", res.Solutions[0])
	}
	if res.Inputs.Notional != 100000 {
		t.Errorf("notional = %v", res.Inputs.Notional)
	}
}

func TestCalc_ZeroSpotIsNull(t *testing.T) {
	body := `{"multiplier": 10, "notional": 100000, "spot": "",
		"options": [{"expiry": "2025-01-01", "strike": 9000, "ask": 20}]}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/v1/calc", body)
	if !strings.Contains(rec.Body.String(), `"percentFromSpot":null`) {
		t.Errorf("percentFromSpot should be null: %s", rec.Body.String())
	}
}

func TestCalc_Preset(t *testing.T) {
	body := `{"preset": "es", "notional": 1000000, "spot": 5000,
		"options": [{"expiry": "2025-01-17", "strike": 4800, "ask": 12.5}]}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/v1/calc", body)

	var res hedge.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Summary.Multiplier != 50 || res.Summary.CurrencySymbol != "$" {
		t.Errorf("summary = %+v", res.Summary)
	}
	if res.Solutions[0].PremiumPerContract != 625 {
		t.Errorf("premium = %v, want 625", res.Solutions[0].PremiumPerContract)
	}
}

func TestCalc_BadRequests(t *testing.T) {
	srv := newTestServer()
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"invalid json", "{"},
		{"unknown preset", `{"preset": "DAX"}`},
	}
	for _, tt := range tests {
		rec := do(t, srv, http.MethodPost, "/api/v1/calc", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
		}
		var e errorResponse
		if err := json.NewDecoder(rec.Body).Decode(&e); err != nil || e.Error == "" || e.Status != 400 {
			t.Errorf("%s: error body = %+v, %v", tt.name, e, err)
		}
	}
}

func TestChart_EmptyPayload(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/v1/chart", `{"spot": 9500, "options": []}`)
	var p chart.Payload
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !p.Empty || len(p.Markers) != 0 || p.SpotLine.X0 != "2025-01-01" {
		t.Errorf("payload = %+v", p)
	}
}

func TestExport_YAML(t *testing.T) {
	body := `{"inputs": {"multiplier": 10, "notional": 100000, "spot": 9500,
		"options": [{"expiry": "2025-01-01", "strike": 9000, "ask": 20}]},
		"notes": "hedge memo", "format": "yaml"}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/v1/export", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Content-Type = %q", ct)
	}
	out := rec.Body.String()
	for _, want := range []string{"notes: hedge memo", `costFull: "222.22"`, "generatedAt:"} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}

func TestExport_BadFormat(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/api/v1/export", `{"format": "xml"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSelfTest(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/v1/selftest", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("selftest = %d %s", rec.Code, rec.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/v1/calc", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /calc = %d, want 405", rec.Code)
	}
}

func TestZstdCompression(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/indexes", nil)
	req.Header.Set("Accept-Encoding", "gzip, zstd")
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "zstd" {
		t.Fatalf("Content-Encoding = %q", rec.Header().Get("Content-Encoding"))
	}
	dec, err := zstd.NewReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()

	var presets []models.IndexPreset
	if err := json.NewDecoder(dec).Decode(&presets); err != nil {
		t.Fatalf("decode compressed body: %v", err)
	}
	if len(presets) != 4 {
		t.Errorf("presets = %d", len(presets))
	}
}

func TestCompressionDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Compress = false
	srv := NewServer(cfg, zerolog.Nop(), hedge.BuiltinPresets(), fixedClock)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Accept-Encoding", "zstd")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "" {
		t.Error("compression applied while disabled")
	}
}

func TestAddr(t *testing.T) {
	if got := Addr(nil, ""); got != ":8080" {
		t.Errorf("Addr(nil) = %q", got)
	}
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:9000"
	if got := Addr(cfg, ""); got != "127.0.0.1:9000" {
		t.Errorf("Addr(cfg) = %q", got)
	}
	if got := Addr(cfg, ":1"); got != ":1" {
		t.Errorf("Addr override = %q", got)
	}
}
