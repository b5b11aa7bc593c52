package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/stackforge/genstack/tracing"
	"github.com/viant/afs"
)

const (
	executePath = "/api/execute"
	uploadPath  = "/api/upload"

	// genericFailure mirrors the message shown when the service reports no
	// failure detail of its own.
	genericFailure = "Failed to process request"
)

// StatusError is a non-success response from the execution service. Detail
// carries the service's own failure description when it provided one.
type StatusError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return genericFailure
}

// UploadResult is the success response of the upload call. DocumentID is
// stored on a knowledge base node as its documentId configuration value.
type UploadResult struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Message    string `json:"message,omitempty"`
}

// Client speaks to the external execution service over HTTP. Both calls are
// plain request/response with no streaming; a caller-supplied context
// deadline is the only cancellation mechanism.
type Client struct {
	baseURL    string
	httpClient *http.Client
	fs         afs.Service
}

// ClientOption customises a Client.
type ClientOption func(c *Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithTimeout sets the per-call timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// NewClient creates a client for the execution service at baseURL.
func NewClient(baseURL string, options ...ClientOption) *Client {
	result := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: time.Minute},
		fs:         afs.New(),
	}
	for _, option := range options {
		option(result)
	}
	return result
}

// Execute posts the request to the execution service and returns the
// response text used as the assistant turn's content.
func (c *Client) Execute(ctx context.Context, request *Request) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "executor.execute", "CLIENT")
	span.WithAttributes(map[string]string{
		"genstack.nodes": fmt.Sprintf("%d", len(request.Nodes)),
		"genstack.edges": fmt.Sprintf("%d", len(request.Edges)),
	})
	response, err := c.execute(ctx, request)
	tracing.EndSpan(span, err)
	return response, err
}

func (c *Client) execute(ctx context.Context, request *Request) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to encode execute request: %w", err)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+executePath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return "", fmt.Errorf("failed to call execution service: %w", err)
	}
	defer httpResponse.Body.Close()
	data, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return "", err
	}
	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		return "", statusError(httpResponse.StatusCode, data)
	}
	var payload struct {
		Response string `json:"response"`
	}
	if err = json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("failed to decode execute response: %w", err)
	}
	return payload.Response, nil
}

// Upload reads the document at the supplied location (any scheme supported
// by viant/afs: local path, file://, embed:// etc.), posts it as a multipart
// file field and returns the stored document identity.
func (c *Client) Upload(ctx context.Context, URL string) (*UploadResult, error) {
	ctx, span := tracing.StartSpan(ctx, "executor.upload", "CLIENT")
	span.WithAttributes(map[string]string{"genstack.document": URL})
	result, err := c.upload(ctx, URL)
	tracing.EndSpan(span, err)
	return result, err
}

func (c *Client) upload(ctx context.Context, URL string) (*UploadResult, error) {
	data, err := c.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", URL, err)
	}
	fileName := path.Base(strings.TrimRight(URL, "/"))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err = part.Write(data); err != nil {
		return nil, err
	}
	if err = writer.Close(); err != nil {
		return nil, err
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &body)
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Content-Type", writer.FormDataContentType())
	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to call upload service: %w", err)
	}
	defer httpResponse.Body.Close()
	responseData, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, err
	}
	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		return nil, statusError(httpResponse.StatusCode, responseData)
	}
	result := &UploadResult{}
	if err = json.Unmarshal(responseData, result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.Filename == "" {
		result.Filename = fileName
	}
	return result, nil
}

// statusError extracts the service's detail message when present.
func statusError(statusCode int, data []byte) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(data, &payload)
	return &StatusError{StatusCode: statusCode, Detail: payload.Detail}
}
