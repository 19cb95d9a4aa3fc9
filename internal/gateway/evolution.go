package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/wb-go/wbf/zlog"
)

// Evolution is the adapter for the Evolution API, the default
// self-hosted WhatsApp provider. Instance ids map to Evolution
// instance names; groups are addressed by their JID.
type Evolution struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewEvolution creates an Evolution adapter. The caller owns timeout
// enforcement through contexts, so the underlying client has none.
func NewEvolution(baseURL, apiKey string) *Evolution {
	return &Evolution{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

// Connect asks Evolution to (re)establish the instance session.
func (e *Evolution) Connect(ctx context.Context, instanceID string) error {
	url := fmt.Sprintf("%s/instance/connect/%s", e.baseURL, instanceID)

	var ignored json.RawMessage
	if err := e.do(ctx, http.MethodGet, url, nil, &ignored); err != nil {
		return err
	}

	zlog.Logger.Info().Str("instance_id", instanceID).Msg("evolution instance connect requested")
	return nil
}

// evolutionGroup is the subset of the fetchAllGroups payload we use.
type evolutionGroup struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
}

// GetGroups lists the groups the instance participates in.
func (e *Evolution) GetGroups(ctx context.Context, instanceID string) ([]Group, error) {
	url := fmt.Sprintf("%s/group/fetchAllGroups/%s?getParticipants=false", e.baseURL, instanceID)

	var raw []evolutionGroup
	if err := e.do(ctx, http.MethodGet, url, nil, &raw); err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(raw))
	for _, g := range raw {
		groups = append(groups, Group{ID: g.ID, Name: g.Subject})
	}

	return groups, nil
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

type sendMediaRequest struct {
	Number    string `json:"number"`
	MediaType string `json:"mediatype"`
	Media     string `json:"media"`
	Caption   string `json:"caption,omitempty"`
}

// sendResponse is the slice of Evolution's send payload we care about.
type sendResponse struct {
	Key struct {
		ID string `json:"id"`
	} `json:"key"`
}

// SendText sends a plain-text message to a group.
func (e *Evolution) SendText(ctx context.Context, params SendTextParams) (SendResult, error) {
	url := fmt.Sprintf("%s/message/sendText/%s", e.baseURL, params.InstanceID)
	body := sendTextRequest{Number: params.GroupID, Text: params.Text}

	var resp sendResponse
	if err := e.do(ctx, http.MethodPost, url, body, &resp); err != nil {
		return SendResult{}, err
	}
	if resp.Key.ID == "" {
		return SendResult{}, fmt.Errorf("%w: missing message id", ErrMalformedResponse)
	}

	return SendResult{MessageID: resp.Key.ID}, nil
}

// SendMedia sends a media message with an optional caption.
func (e *Evolution) SendMedia(ctx context.Context, params SendMediaParams) (SendResult, error) {
	url := fmt.Sprintf("%s/message/sendMedia/%s", e.baseURL, params.InstanceID)
	body := sendMediaRequest{
		Number:    params.GroupID,
		MediaType: params.MediaType,
		Media:     params.MediaURL,
		Caption:   params.Text,
	}

	var resp sendResponse
	if err := e.do(ctx, http.MethodPost, url, body, &resp); err != nil {
		return SendResult{}, err
	}
	if resp.Key.ID == "" {
		return SendResult{}, fmt.Errorf("%w: missing message id", ErrMalformedResponse)
	}

	return SendResult{MessageID: resp.Key.ID}, nil
}

// do performs one HTTP exchange and decodes the reply into out.
// Transport failures and non-2xx statuses surface as retryable errors;
// an undecodable body surfaces as ErrMalformedResponse.
func (e *Evolution) do(ctx context.Context, method, url string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("evolution request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}
