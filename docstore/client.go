// Package docstore forwards documents to a bot-style messaging API used as
// ad-hoc object storage. One outbound call per upload; the remote envelope
// is mapped to either an Upload reference or an error carrying the remote
// failure description.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/skillsenselab/uploadrelay/errors"
	"github.com/skillsenselab/uploadrelay/httpclient"
	"github.com/skillsenselab/uploadrelay/logger"
)

// Config configures the document API client.
type Config struct {
	// BaseURL is the API base, e.g. "https://api.telegram.org".
	BaseURL string
	// BotToken authenticates the relay against the API.
	BotToken string
	// ChatID is the destination channel for forwarded documents.
	ChatID string
	// Timeout bounds each outbound call. Large payloads take a while, so
	// this is on the order of minutes.
	Timeout time.Duration
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.telegram.org"
	}
	if c.Timeout == 0 {
		c.Timeout = 2 * time.Minute
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("docstore: bot token is required")
	}
	if c.ChatID == "" {
		return fmt.Errorf("docstore: chat id is required")
	}
	return nil
}

// Client sends documents to the remote API.
type Client struct {
	hc     *httpclient.Client
	config Config
	log    *logger.Logger
}

// New creates a document API client.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		hc:     hc,
		config: cfg,
		log:    log.WithComponent("docstore"),
	}, nil
}

// SendDocument forwards a document with a caption to the configured chat.
// A remote success envelope becomes an Upload; a remote failure envelope
// becomes an error surfacing the remote description verbatim.
func (c *Client) SendDocument(ctx context.Context, doc Document, caption string) (*Upload, error) {
	req := httpclient.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/bot%s/sendDocument", c.config.BotToken),
		Body: &httpclient.MultipartBody{
			Fields: map[string]string{
				"chat_id": c.config.ChatID,
				"caption": caption,
			},
			Files: []httpclient.FileField{{
				FieldName:   "document",
				FileName:    doc.Name,
				ContentType: doc.ContentType,
				Reader:      doc.Reader,
			}},
		},
	}

	resp, err := c.hc.Do(ctx, req)
	if err != nil && resp == nil {
		return nil, fmt.Errorf("docstore: send document: %w", err)
	}

	// The API reports failures both through the status code and the ok flag,
	// so the envelope is decoded even for non-2xx responses.
	var envelope sendDocumentResponse
	if jsonErr := json.Unmarshal(resp.Body, &envelope); jsonErr != nil {
		if err != nil {
			return nil, fmt.Errorf("docstore: send document: %w", err)
		}
		return nil, fmt.Errorf("docstore: decode response: %w", jsonErr)
	}

	if !envelope.OK {
		c.log.Warn("Document API rejected upload", map[string]interface{}{
			"description": envelope.Description,
			"status":      resp.StatusCode,
		})
		return nil, apperrors.UpstreamRejected(envelope.Description)
	}
	if envelope.Result == nil || envelope.Result.Document == nil {
		return nil, fmt.Errorf("docstore: success envelope missing document")
	}

	return &Upload{
		FileID:    envelope.Result.Document.FileID,
		MessageID: envelope.Result.MessageID,
	}, nil
}
