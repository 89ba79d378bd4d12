package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"stocklens/internal"
	"stocklens/internal/config"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		TolerancePercent: 30,
		TopParts:         10,
		VendorTopParts:   3,
		MaxUploadMB:      16,
	}
	return New(cfg).Routes()
}

func multipartUpload(t *testing.T, filename, tolerance string, blob []byte) *http.Request {
	t.Helper()
	body := bytes.NewBuffer(nil)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(blob); err != nil {
		t.Fatal(err)
	}
	if tolerance != "" {
		if err := w.WriteField("tolerance", tolerance); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeAnalyze(t *testing.T, rec *httptest.ResponseRecorder) analyzeResponse {
	t.Helper()
	var resp analyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d", rec.Code)
	}
}

func TestAnalyzeUpload(t *testing.T) {
	csv := "Material,QTY,RM IN QTY,Vendor\nP1,28,20,Acme\nP2,8,12,Acme\nP3,22,20,Bolt\n"
	req := multipartUpload(t, "inventory.csv", "30", []byte(csv))

	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body.String())
	}

	resp := decodeAnalyze(t, rec)
	if resp.Fallback {
		t.Fatalf("unexpected fallback: %s", resp.Notice)
	}
	if resp.Accepted != 3 || resp.Tolerance != 30 {
		t.Fatalf("accepted=%d tolerance=%v", resp.Accepted, resp.Tolerance)
	}
	if resp.Summary.Excess.Count != 1 || resp.Summary.Short.Count != 1 || resp.Summary.WithinNorms.Count != 1 {
		t.Fatalf("summary: %+v", resp.Summary)
	}
	if len(resp.TopShort) != 1 || resp.TopShort[0].Material != "P2" {
		t.Fatalf("top short: %+v", resp.TopShort)
	}
	if len(resp.VendorOrder) != 2 {
		t.Fatalf("vendor order: %v", resp.VendorOrder)
	}
	if len(resp.TopShortByVendor) != 1 || resp.TopShortByVendor[0].Vendor != "Acme" {
		t.Fatalf("top short by vendor: %+v", resp.TopShortByVendor)
	}
}

func TestAnalyzeUploadMissingColumnsFallsBack(t *testing.T) {
	csv := "foo,bar\n1,2\n"
	req := multipartUpload(t, "inventory.csv", "", []byte(csv))

	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d", rec.Code)
	}

	resp := decodeAnalyze(t, rec)
	if !resp.Fallback || resp.Notice == "" {
		t.Fatalf("expected fallback with notice: %+v", resp)
	}
	if resp.Source != internal.SourceSample || resp.Accepted != 20 {
		t.Fatalf("source=%s accepted=%d", resp.Source, resp.Accepted)
	}
}

func TestAnalyzeUploadBadTolerance(t *testing.T) {
	for _, tolerance := range []string{"0", "-5", "abc", "NaN", "Inf", "-Inf"} {
		req := multipartUpload(t, "inventory.csv", tolerance, []byte("Material,QTY,RM\nP1,1,1\n"))
		rec := httptest.NewRecorder()
		testServer(t).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("tolerance=%s: code=%d", tolerance, rec.Code)
		}
	}
}

func TestAnalyzeUploadUnsupportedType(t *testing.T) {
	req := multipartUpload(t, "inventory.pdf", "", []byte("x"))
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", rec.Code)
	}
}

func TestSampleEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sample?tolerance=50", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("code=%d", rec.Code)
	}

	resp := decodeAnalyze(t, rec)
	if resp.Source != internal.SourceSample || resp.Tolerance != 50 || resp.Accepted != 20 {
		t.Fatalf("resp: source=%s tolerance=%v accepted=%d", resp.Source, resp.Tolerance, resp.Accepted)
	}
	if resp.Summary.TotalCount() != 20 {
		t.Fatalf("summary count=%d", resp.Summary.TotalCount())
	}
}
