package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	blobmem "bird-collector/internal/adapters/blobstore/memory"
	"bird-collector/internal/router"
)

func TestHTTP_EndToEnd_Tweety(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"

	// 1) Owner registra un ave
	birdID := createBird(t, ts.URL, ownerID, map[string]any{
		"name":        "Tweety",
		"breed":       "Canary",
		"description": "Yellow",
		"age":         2,
	})

	// 2) Crea un toy en el catálogo y lo asocia dos veces (idempotente)
	toyID := createToy(t, ts.URL, ownerID, "Bell", "Gold")
	for i := 0; i < 2; i++ {
		st, body := doReq(t, ts.URL, "POST", "/birds/"+birdID+"/toys/"+toyID, ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 add toy, got %d body=%s", st, string(body))
		}
	}

	// 3) Dos feedings: 2024-01-01 L y 2024-01-02 B
	addFeeding(t, ts.URL, ownerID, birdID, "2024-01-01", "L")
	addFeeding(t, ts.URL, ownerID, birdID, "2024-01-02", "B")

	// 4) Detalle: 1 toy, feedings por fecha desc
	{
		st, body := doReq(t, ts.URL, "GET", "/birds/"+birdID+"/detail", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 detail, got %d body=%s", st, string(body))
		}
		var resp struct {
			Bird struct {
				Name string `json:"name"`
			} `json:"bird"`
			Toys []struct {
				ID string `json:"id"`
			} `json:"toys"`
			AvailableToys []struct {
				ID string `json:"id"`
			} `json:"available_toys"`
			Feedings []struct {
				Date string `json:"date"`
				Meal string `json:"meal"`
			} `json:"feedings"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("decode detail: %v", err)
		}
		if resp.Bird.Name != "Tweety" {
			t.Fatalf("expected Tweety, got %q", resp.Bird.Name)
		}
		if len(resp.Toys) != 1 || resp.Toys[0].ID != toyID {
			t.Fatalf("expected exactly toy %s, got %+v", toyID, resp.Toys)
		}
		if len(resp.AvailableToys) != 0 {
			t.Fatalf("expected no available toys, got %+v", resp.AvailableToys)
		}
		if len(resp.Feedings) != 2 ||
			resp.Feedings[0].Date != "2024-01-02" || resp.Feedings[0].Meal != "B" ||
			resp.Feedings[1].Date != "2024-01-01" || resp.Feedings[1].Meal != "L" {
			t.Fatalf("unexpected feedings order: %+v", resp.Feedings)
		}
	}

	// 5) Meal inválida => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/birds/"+birdID+"/feedings", ownerID, map[string]any{
			"date": "2024-01-03",
			"meal": "X",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for meal X, got %d", st)
		}
	}

	// 6) El nombre no se puede cambiar
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/birds/"+birdID, ownerID, map[string]any{"name": "Sylvester"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 patching name, got %d", st)
		}
		st, body := doReq(t, ts.URL, "PATCH", "/birds/"+birdID, ownerID, map[string]any{"age": 3})
		if st != http.StatusOK || !strings.Contains(string(body), `"name":"Tweety"`) {
			t.Fatalf("expected 200 keeping name, got %d body=%s", st, string(body))
		}
	}

	// 7) Quitar el toy: dos veces, ambas 204
	for i := 0; i < 2; i++ {
		st, _ := doReq(t, ts.URL, "DELETE", "/birds/"+birdID+"/toys/"+toyID, ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 remove toy, got %d", st)
		}
	}

	// 8) Borrar el ave: feedings desaparecen, el toy sigue
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/birds/"+birdID, ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete bird, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/birds/"+birdID+"/feedings", ownerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/toys/"+toyID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected toy to survive, got %d", st)
		}
	}
}

func TestHTTP_NonOwnerIsForbidden(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	birdID := createBird(t, ts.URL, "owner-1", map[string]any{"name": "Tweety", "breed": "Canary", "age": 1})
	toyID := createToy(t, ts.URL, "owner-1", "Bell", "Gold")

	for _, tc := range []struct{ method, path string }{
		{"GET", "/birds/" + birdID},
		{"POST", "/birds/" + birdID + "/toys/" + toyID},
		{"DELETE", "/birds/" + birdID},
		{"GET", "/birds/" + birdID + "/feedings"},
	} {
		st, _ := doReq(t, ts.URL, tc.method, tc.path, "intruder", nil)
		if st != http.StatusForbidden {
			t.Fatalf("%s %s: expected 403, got %d", tc.method, tc.path, st)
		}
	}

	// sin cambios en las asociaciones
	st, body := doReq(t, ts.URL, "GET", "/birds/"+birdID+"/toys", "owner-1", nil)
	if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected no toys, got %d body=%s", st, string(body))
	}

	// sin identidad => 401
	st, _ = doReq(t, ts.URL, "GET", "/birds", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", st)
	}

	// ave inexistente => 404
	st, _ = doReq(t, ts.URL, "POST", "/birds/missing/toys/"+toyID, "owner-1", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for missing bird, got %d", st)
	}
}

func TestHTTP_PhotoUpload(t *testing.T) {
	blobs := blobmem.New("https://s3.us-east-1.amazonaws.com/")
	ts := httptest.NewServer(router.NewRouter(router.Options{BlobStore: blobs, Bucket: "catcollector-avatar-946"}))
	defer ts.Close()

	birdID := createBird(t, ts.URL, "owner-1", map[string]any{"name": "Tweety", "breed": "Canary", "age": 1})

	// sin archivo => 204, nada subido
	{
		st, _ := doMultipart(t, ts.URL, "/birds/"+birdID+"/photos", "owner-1", "", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 without file, got %d", st)
		}
		if blobs.Len() != 0 {
			t.Fatalf("expected no blobs, got %d", blobs.Len())
		}
	}

	// con archivo => 201 y URL <base><bucket>/<6hex>.png
	{
		st, body := doMultipart(t, ts.URL, "/birds/"+birdID+"/photos", "owner-1", "funny_bird.png", []byte("png"))
		if st != http.StatusCreated {
			t.Fatalf("expected 201 upload, got %d body=%s", st, string(body))
		}
		var resp struct {
			URL string `json:"url"`
		}
		_ = json.Unmarshal(body, &resp)
		prefix := "https://s3.us-east-1.amazonaws.com/catcollector-avatar-946/"
		if !strings.HasPrefix(resp.URL, prefix) || !strings.HasSuffix(resp.URL, ".png") ||
			len(strings.TrimPrefix(resp.URL, prefix)) != len("abcdef.png") {
			t.Fatalf("unexpected url %q", resp.URL)
		}
	}

	// otro usuario => 403
	{
		st, _ := doMultipart(t, ts.URL, "/birds/"+birdID+"/photos", "intruder", "x.png", []byte("png"))
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for intruder, got %d", st)
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/birds/"+birdID+"/photos", "owner-1", nil)
	var list []map[string]any
	_ = json.Unmarshal(body, &list)
	if st != http.StatusOK || len(list) != 1 {
		t.Fatalf("expected 1 photo, got %d body=%s", st, string(body))
	}
}

type failingBlobs struct{}

func (failingBlobs) URL(bucket, key string) string { return "https://blobs.test/" + bucket + "/" + key }

func (failingBlobs) Put(ctx context.Context, bucket, key string, content io.Reader) (string, error) {
	return "", errors.New("connection reset")
}

func TestHTTP_PhotoUploadFailure_NoPhoto(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{BlobStore: failingBlobs{}}))
	defer ts.Close()

	birdID := createBird(t, ts.URL, "owner-1", map[string]any{"name": "Tweety", "breed": "Canary", "age": 1})

	st, _ := doMultipart(t, ts.URL, "/birds/"+birdID+"/photos", "owner-1", "bird.jpg", []byte("jpg"))
	if st != http.StatusBadGateway {
		t.Fatalf("expected 502 on upload failure, got %d", st)
	}

	st, body := doReq(t, ts.URL, "GET", "/birds/"+birdID+"/photos", "owner-1", nil)
	if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected zero photos, got %d body=%s", st, string(body))
	}
}

func TestHTTP_PurgeMyBirds(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	createBird(t, ts.URL, "owner-1", map[string]any{"name": "A", "breed": "B", "age": 1})
	createBird(t, ts.URL, "owner-1", map[string]any{"name": "C", "breed": "D", "age": 1})
	other := createBird(t, ts.URL, "owner-2", map[string]any{"name": "E", "breed": "F", "age": 1})

	st, body := doReq(t, ts.URL, "DELETE", "/me/birds", "owner-1", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"deleted":2`) {
		t.Fatalf("expected 2 deleted, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "GET", "/birds/"+other, "owner-2", nil)
	if st != http.StatusOK {
		t.Fatalf("expected other owner's bird to survive, got %d", st)
	}
}

func createBird(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/birds", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create bird, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create bird: missing id body=%s", string(body))
	}
	return resp.ID
}

func createToy(t *testing.T, baseURL, userID, name, color string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/toys", userID, map[string]any{"name": name, "color": color})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create toy, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create toy: missing id body=%s", string(body))
	}
	return resp.ID
}

func addFeeding(t *testing.T, baseURL, userID, birdID, date, meal string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/birds/"+birdID+"/feedings", userID, map[string]any{
		"date": date,
		"meal": meal,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 add feeding, got %d body=%s", st, string(body))
	}
}

func doMultipart(t *testing.T, baseURL, path, debugUserID, filename string, content []byte) (int, []byte) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("photo-file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = fw.Write(content)
	}
	_ = mw.Close()

	req, err := http.NewRequest("POST", baseURL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
