// Package vision implements port.Annotator against the Google Cloud Vision
// images:annotate REST endpoint.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"passdesk/internal/config"
	"passdesk/internal/domain"
	"passdesk/internal/extract"
	"passdesk/internal/port"
)

const defaultEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// Client calls the text-detection API and converts its word annotations
// into the geometry the extractor works on.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient creates an annotator from the vision config section.
func NewClient(cfg *config.VisionConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return newClient(cfg, endpoint)
}

// NewClientWithEndpoint creates an annotator pointing at a custom API
// endpoint (for testing).
func NewClientWithEndpoint(cfg *config.VisionConfig, endpoint string) *Client {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.VisionConfig, endpoint string) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// annotateRequest models the images:annotate request envelope.
type annotateRequest struct {
	Requests []annotateItem `json:"requests"`
}

type annotateItem struct {
	Image    imageContent `json:"image"`
	Features []feature    `json:"features"`
}

type imageContent struct {
	Content string `json:"content"`
}

type feature struct {
	Type string `json:"type"`
}

// annotateResponse models the subset of the response we consume.
type annotateResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description  string `json:"description"`
			BoundingPoly struct {
				Vertices []struct {
					X float64 `json:"x"`
					Y float64 `json:"y"`
				} `json:"vertices"`
			} `json:"boundingPoly"`
		} `json:"textAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

func (c *Client) Annotate(ctx context.Context, input port.AnnotateInput) (*extract.AnnotationSet, error) {
	reqBody := annotateRequest{
		Requests: []annotateItem{{
			Image:    imageContent{Content: base64.StdEncoding.EncodeToString(input.ImageBytes)},
			Features: []feature{{Type: "TEXT_DETECTION"}},
		}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.endpoint
	if c.apiKey != "" {
		url += "?key=" + c.apiKey
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling vision API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return parseResponse(respBody)
}

func parseResponse(body []byte) (*extract.AnnotationSet, error) {
	var resp annotateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}
	r := resp.Responses[0]
	if r.Error != nil {
		return nil, fmt.Errorf("vision API error (code %d): %s", r.Error.Code, r.Error.Message)
	}
	if len(r.TextAnnotations) == 0 {
		return nil, domain.ErrNoTextDetected
	}

	// The first annotation is the whole transcription; the rest are word
	// tokens with their bounding polygons.
	ann := &extract.AnnotationSet{FullText: r.TextAnnotations[0].Description}
	for _, ta := range r.TextAnnotations[1:] {
		verts := make([]extract.Vertex, 0, len(ta.BoundingPoly.Vertices))
		for _, v := range ta.BoundingPoly.Vertices {
			verts = append(verts, extract.Vertex{X: v.X, Y: v.Y})
		}
		ann.Tokens = append(ann.Tokens, extract.Token{
			Text: ta.Description,
			Box:  extract.BoxFromVertices(verts),
		})
	}
	return ann, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
