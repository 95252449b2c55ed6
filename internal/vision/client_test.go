package vision_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passdesk/internal/config"
	"passdesk/internal/domain"
	"passdesk/internal/port"
	"passdesk/internal/vision"
)

func newTestClient(serverURL string) *vision.Client {
	cfg := &config.VisionConfig{
		APIKey:      "test-api-key",
		TimeoutSecs: 30,
	}
	return vision.NewClientWithEndpoint(cfg, serverURL)
}

func annotation(text string, x, y float64) map[string]interface{} {
	return map[string]interface{}{
		"description": text,
		"boundingPoly": map[string]interface{}{
			"vertices": []map[string]float64{
				{"x": x, "y": y},
				{"x": x + 50, "y": y},
				{"x": x + 50, "y": y + 20},
				{"x": x, "y": y + 20},
			},
		},
	}
}

func TestClient_Annotate_Success(t *testing.T) {
	responseBody := map[string]interface{}{
		"responses": []map[string]interface{}{
			{
				"textAnnotations": []map[string]interface{}{
					annotation("Surname\nYAMADA", 0, 0),
					annotation("Surname", 100, 100),
					annotation("YAMADA", 100, 130),
				},
			},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)

		requests := reqBody["requests"].([]interface{})
		assert.Len(t, requests, 1)
		item := requests[0].(map[string]interface{})
		image := item["image"].(map[string]interface{})
		assert.NotEmpty(t, image["content"])
		features := item["features"].([]interface{})
		assert.Equal(t, "TEXT_DETECTION", features[0].(map[string]interface{})["type"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ann, err := client.Annotate(context.Background(), port.AnnotateInput{
		ImageBytes:  []byte{0xFF, 0xD8, 0xFF, 0xE0},
		ContentType: "image/jpeg",
	})

	require.NoError(t, err)
	require.NotNil(t, ann)
	assert.Equal(t, "Surname\nYAMADA", ann.FullText)
	require.Len(t, ann.Tokens, 2)
	assert.Equal(t, "Surname", ann.Tokens[0].Text)
	assert.Equal(t, 100.0, ann.Tokens[0].Box.MinX)
	assert.Equal(t, 120.0, ann.Tokens[0].Box.MaxY)
	assert.Equal(t, "YAMADA", ann.Tokens[1].Text)
	assert.Equal(t, 130.0, ann.Tokens[1].Box.MinY)
}

func TestClient_Annotate_NoText(t *testing.T) {
	responseBody := map[string]interface{}{
		"responses": []map[string]interface{}{
			{"textAnnotations": []map[string]interface{}{}},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ann, err := client.Annotate(context.Background(), port.AnnotateInput{
		ImageBytes:  []byte{0x89, 0x50, 0x4E, 0x47},
		ContentType: "image/png",
	})

	assert.Nil(t, ann)
	assert.ErrorIs(t, err, domain.ErrNoTextDetected)
}

func TestClient_Annotate_PerImageError(t *testing.T) {
	responseBody := map[string]interface{}{
		"responses": []map[string]interface{}{
			{"error": map[string]interface{}{"code": 3, "message": "bad image data"}},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ann, err := client.Annotate(context.Background(), port.AnnotateInput{
		ImageBytes: []byte("not an image"),
	})

	assert.Nil(t, ann)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad image data")
}

func TestClient_Annotate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key invalid"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ann, err := client.Annotate(context.Background(), port.AnnotateInput{
		ImageBytes: []byte{0xFF, 0xD8},
	})

	assert.Nil(t, ann)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "vision API error (status 403)")
}

func TestClient_Annotate_ConnectionRefused(t *testing.T) {
	client := newTestClient("http://localhost:1")

	ann, err := client.Annotate(context.Background(), port.AnnotateInput{
		ImageBytes: []byte{0xFF, 0xD8},
	})

	assert.Nil(t, ann)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "calling vision API")
}
