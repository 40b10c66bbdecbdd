// Package comfyui is the execution backend client. It submits a finished
// graph for execution, follows progress over the backend's websocket and
// fetches the generated images. The graph model consumes it only through the
// narrow "submit graph, collect per-output results" contract.
package comfyui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/comfygraph/comfygraph/internal/idgen"
	"github.com/gorilla/websocket"
)

// Client talks to one ComfyUI instance. A client id minted at construction
// correlates queued prompts with websocket progress events.
type Client struct {
	baseURL        string
	authentication string
	clientID       string
	httpClient     *http.Client
	dialer         *websocket.Dialer
}

// Option customises a client.
type Option func(*Client)

// WithAuthentication sets the Authorization header value sent with every
// request.
func WithAuthentication(authentication string) Option {
	return func(c *Client) { c.authentication = authentication }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New creates a backend client for the given base URL, e.g.
// "http://localhost:8188".
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		clientID:   idgen.New(),
		httpClient: http.DefaultClient,
		dialer:     websocket.DefaultDialer,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// ClientID returns the correlation id this client queues prompts under.
func (c *Client) ClientID() string {
	return c.clientID
}

type (
	// QueueResponse is the backend's acknowledgement of a queued prompt.
	QueueResponse struct {
		PromptID   string                 `json:"prompt_id"`
		Number     int                    `json:"number"`
		NodeErrors map[string]interface{} `json:"node_errors,omitempty"`
	}

	// ImageRef locates one generated image on the backend.
	ImageRef struct {
		Filename  string `json:"filename"`
		Subfolder string `json:"subfolder"`
		Type      string `json:"type"`
	}

	// Image is one collected execution result: the output node that
	// produced it, where it lives, and optionally its bytes.
	Image struct {
		NodeID string `json:"node_id"`
		ImageRef
		URL  string `json:"url,omitempty"`
		Data []byte `json:"data,omitempty"`
	}

	historyOutputs struct {
		Outputs map[string]struct {
			Images []*ImageRef `json:"images"`
		} `json:"outputs"`
	}

	wsEvent struct {
		Type string `json:"type"`
		Data struct {
			Node     *string `json:"node"`
			PromptID string  `json:"prompt_id"`
		} `json:"data"`
	}
)

// QueuePrompt submits a graph for execution and returns the backend's
// prompt id. The graph is opaque here - whatever JSON-serialisable form the
// backend accepts.
func (c *Client) QueuePrompt(ctx context.Context, graph interface{}) (*QueueResponse, error) {
	body, err := json.Marshal(map[string]interface{}{
		"prompt":    graph,
		"client_id": c.clientID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode prompt: %w", err)
	}
	response := &QueueResponse{}
	if err = c.postJSON(ctx, "/prompt", body, response); err != nil {
		return nil, err
	}
	if response.PromptID == "" {
		return nil, fmt.Errorf("backend accepted prompt but returned no prompt id")
	}
	return response, nil
}

// History fetches the execution record for a prompt id.
func (c *Client) History(ctx context.Context, promptID string) (map[string]interface{}, error) {
	var history map[string]interface{}
	if err := c.getJSON(ctx, "/history/"+url.PathEscape(promptID), &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Image downloads one generated image.
func (c *Client) Image(ctx context.Context, ref *ImageRef) ([]byte, error) {
	query := url.Values{}
	query.Set("filename", ref.Filename)
	query.Set("subfolder", ref.Subfolder)
	query.Set("type", ref.Type)
	request, err := c.newRequest(ctx, http.MethodGet, "/view?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %s: %w", ref.Filename, err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image %s: status %d", ref.Filename, response.StatusCode)
	}
	return io.ReadAll(response.Body)
}

// ImageURL returns the backend URL a generated image can be fetched from.
func (c *Client) ImageURL(ref *ImageRef) string {
	query := url.Values{}
	query.Set("filename", ref.Filename)
	query.Set("subfolder", ref.Subfolder)
	query.Set("type", ref.Type)
	return c.baseURL + "/view?" + query.Encode()
}

// Wait blocks until the backend reports the prompt finished executing, the
// websocket fails, or ctx is cancelled. Completion is signalled by an
// "executing" event whose node is null for the awaited prompt id.
func (c *Client) Wait(ctx context.Context, promptID string) error {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/ws?clientId=" + url.QueryEscape(c.clientID)
	header := http.Header{}
	if c.authentication != "" {
		header.Set("Authorization", c.authentication)
	}
	conn, _, err := c.dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return fmt.Errorf("failed to open progress stream: %w", err)
	}
	defer conn.Close()

	done := make(chan error, 1)
	go func() {
		for {
			var event wsEvent
			if err := conn.ReadJSON(&event); err != nil {
				done <- fmt.Errorf("progress stream closed: %w", err)
				return
			}
			if event.Type == "executing" && event.Data.Node == nil && event.Data.PromptID == promptID {
				done <- nil
				return
			}
		}
	}()
	select {
	case err = <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Collect gathers the images a finished prompt produced, one list entry per
// output slot of every output node. When includeData is false only backend
// URLs are returned.
func (c *Client) Collect(ctx context.Context, promptID string, includeData bool) ([]*Image, error) {
	var history map[string]json.RawMessage
	if err := c.getJSON(ctx, "/history/"+url.PathEscape(promptID), &history); err != nil {
		return nil, err
	}
	record, ok := history[promptID]
	if !ok {
		return nil, fmt.Errorf("no history for prompt %s", promptID)
	}
	var outputs historyOutputs
	if err := json.Unmarshal(record, &outputs); err != nil {
		return nil, fmt.Errorf("failed to parse history for prompt %s: %w", promptID, err)
	}
	var images []*Image
	for nodeID, output := range outputs.Outputs {
		for _, ref := range output.Images {
			image := &Image{NodeID: nodeID, ImageRef: *ref, URL: c.ImageURL(ref)}
			if includeData {
				data, err := c.Image(ctx, ref)
				if err != nil {
					return nil, err
				}
				image.Data = data
			}
			images = append(images, image)
		}
	}
	return images, nil
}

// Run submits a graph, waits for it to finish and collects its images.
func (c *Client) Run(ctx context.Context, graph interface{}, includeData bool) ([]*Image, error) {
	queued, err := c.QueuePrompt(ctx, graph)
	if err != nil {
		return nil, err
	}
	if err = c.Wait(ctx, queued.PromptID); err != nil {
		return nil, err
	}
	return c.Collect(ctx, queued.PromptID, includeData)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	if c.authentication != "" {
		request.Header.Set("Authorization", c.authentication)
	}
	return request, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body []byte, result interface{}) error {
	request, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	return c.do(request, result)
}

func (c *Client) getJSON(ctx context.Context, path string, result interface{}) error {
	request, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(request, result)
}

func (c *Client) do(request *http.Request, result interface{}) error {
	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("backend request %s failed: %w", request.URL.Path, err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(response.Body)
		return fmt.Errorf("backend request %s failed: status %d: %s", request.URL.Path, response.StatusCode, strings.TrimSpace(string(data)))
	}
	if result == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(result)
}
