package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"dropcord/pkg/utils"
)

// The receiving end requires both parts; the payload text is fixed.
const (
	filePartName    = "file"
	payloadPartName = "payload_json"
	payloadContent  = "File Upload"
	payloadUsername = "Runtime Bot"
)

type webhookPayload struct {
	Content  string `json:"content"`
	Username string `json:"username"`
}

type webhookAttachment struct {
	URL string `json:"url"`
}

type webhookResponse struct {
	Attachments []webhookAttachment `json:"attachments"`
}

// Uploader relays one file to a destination and returns its public URL
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
}

// WebhookClient posts files to a Discord incoming webhook
type WebhookClient struct {
	webhookURL string
	httpClient *http.Client
}

// Option configures a WebhookClient
type Option func(*WebhookClient)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *WebhookClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewWebhookClient creates a client for webhookURL. An empty URL is accepted
// here and reported as a configuration error on the first upload.
func NewWebhookClient(webhookURL string, opts ...Option) *WebhookClient {
	c := &WebhookClient{
		webhookURL: strings.TrimSpace(webhookURL),
		// No timeout: a hung webhook blocks until the caller cancels ctx.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload sends data as filename in a single multipart POST and returns the
// URL of the first attachment in the webhook's response.
func (c *WebhookClient) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if c.webhookURL == "" {
		return "", newUploadError(KindConfiguration, nil, "Discord webhook URL is not defined")
	}
	if err := validateWebhookURL(c.webhookURL); err != nil {
		return "", newUploadError(KindConfiguration, err, "invalid Discord webhook URL")
	}

	body, contentType, err := buildMultipartBody(data, filename)
	if err != nil {
		return "", newUploadError(KindTransport, err, "failed to build multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, body)
	if err != nil {
		return "", newUploadError(KindConfiguration, err, "invalid Discord webhook URL")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newUploadError(KindTransport, err, "failed to upload to Discord")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newUploadError(KindTransport, err, "failed to read Discord response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		uploadErr := newUploadError(KindTransport, nil, "failed to upload to Discord: %s - %s",
			resp.Status, string(respBody))
		uploadErr.StatusCode = resp.StatusCode
		uploadErr.Body = string(respBody)
		return "", uploadErr
	}

	decoded, err := utils.DecodeJSON[webhookResponse](respBody)
	if err != nil {
		return "", newUploadError(KindResponseShape, err, "failed to retrieve file URL from Discord response")
	}
	if len(decoded.Attachments) == 0 || decoded.Attachments[0].URL == "" {
		return "", newUploadError(KindResponseShape, nil, "failed to retrieve file URL from Discord response")
	}

	log.Printf("Uploaded %s (%s) to Discord", filename, utils.FormatFileSize(int64(len(data))))
	return decoded.Attachments[0].URL, nil
}

// validateWebhookURL requires an absolute http or https URL with a host
func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// buildMultipartBody encodes the file part followed by the payload_json part
func buildMultipartBody(data []byte, filename string) (*bytes.Buffer, string, error) {
	payload, err := utils.EncodeJSON(webhookPayload{
		Content:  payloadContent,
		Username: payloadUsername,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode payload_json: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(filePartName, filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}

	if err := writer.WriteField(payloadPartName, string(payload)); err != nil {
		return nil, "", fmt.Errorf("failed to write payload_json part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}
