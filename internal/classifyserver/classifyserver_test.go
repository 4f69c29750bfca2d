package classifyserver_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mechiko/bilevelmatch/internal/classifyserver"
	"github.com/stretchr/testify/require"
)

func squareRows(w, h, x0, y0, size int) (string, int, int) {
	stride := (w + 7) / 8
	data := make([]byte, stride*h)
	set := func(x, y int) {
		byteIdx := y*stride + x/8
		bit := byte(0x80 >> uint(x%8))
		data[byteIdx] |= bit
	}
	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			set(x, y)
		}
	}
	return base64.StdEncoding.EncodeToString(data), w, h
}

func newTestServer(t *testing.T) *classifyserver.Server {
	t.Helper()
	s, err := classifyserver.New("127.0.0.1", "0", nil)
	require.NoError(t, err)
	return s
}

func TestClassifyOnePageDuplicatesShareATag(t *testing.T) {
	s := newTestServer(t)
	rows, w, h := squareRows(8, 8, 1, 1, 6)

	body := map[string]any{
		"dpi": 300,
		"options": map[string]any{
			"aggression": 100,
		},
		"patterns": []map[string]any{
			{"width": w, "height": h, "rows": rows},
			{"width": w, "height": h, "rows": rows},
		},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/classify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tags   []int `json:"tags"`
		MaxTag int   `json:"maxTag"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.MaxTag)
	require.Equal(t, resp.Tags[0], resp.Tags[1])
}

func TestClassifyOnePageRejectsBadBase64(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{
		"dpi": 300,
		"patterns": []map[string]any{
			{"width": 8, "height": 8, "rows": "not-base64!!"},
		},
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/v1/classify", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMultiPageDictionaryFlagOverHTTP(t *testing.T) {
	s := newTestServer(t)
	a, w, h := squareRows(10, 10, 1, 1, 6)
	b, _, _ := squareRows(10, 10, 2, 1, 5)
	c, _, _ := squareRows(16, 6, 0, 0, 6)

	body := map[string]any{
		"options": map[string]any{"aggression": 100},
		"pages": []map[string]any{
			{"dpi": 300, "patterns": []map[string]any{
				{"width": w, "height": h, "rows": a},
				{"width": w, "height": h, "rows": b},
			}},
			{"dpi": 300, "patterns": []map[string]any{
				{"width": w, "height": h, "rows": a},
				{"width": 16, "height": 6, "rows": c},
			}},
		},
	}
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/multipage", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tags            []int `json:"tags"`
		MaxTag          int   `json:"maxTag"`
		DictionaryFlags []bool `json:"dictionaryFlags"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, resp.Tags[0], resp.Tags[2])
	sharedTag := resp.Tags[0]
	require.True(t, resp.DictionaryFlags[sharedTag])
}
