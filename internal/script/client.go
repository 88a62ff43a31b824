package script

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://script.googleapis.com"

// TokenSource supplies the bearer token for the execution API.
type TokenSource interface {
	BearerToken(ctx context.Context) (string, error)
}

// Client triggers remote Apps Script executions. The script's syncAll()
// routine pulls fresh marketplace data into the spreadsheet; it also runs on
// its own hourly schedule, so a failed trigger is not fatal to a resync.
type Client struct {
	scriptID string
	tokens   TokenSource
	client   *http.Client
	baseURL  string
}

func NewClient(scriptID string, tokens TokenSource) *Client {
	return &Client{
		scriptID: scriptID,
		tokens:   tokens,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: defaultBaseURL,
	}
}

// Configured reports whether a script project id was supplied.
func (c *Client) Configured() bool {
	return c.scriptID != ""
}

type runRequest struct {
	Function string `json:"function"`
	DevMode  bool   `json:"devMode"`
}

type runResponse struct {
	Done  bool `json:"done"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// RunSyncAll invokes the script's syncAll() function. An HTTP-level failure
// and an application-level error in the response body are both reported as
// errors; the caller decides whether to proceed with a local resync anyway.
func (c *Client) RunSyncAll(ctx context.Context) error {
	token, err := c.tokens.BearerToken(ctx)
	if err != nil {
		return fmt.Errorf("script trigger: %w", err)
	}

	body, err := json.Marshal(runRequest{Function: "syncAll", DevMode: false})
	if err != nil {
		return fmt.Errorf("script trigger: encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/scripts/%s:run", c.baseURL, c.scriptID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("script trigger: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	log.Debug().Str("script_id", c.scriptID).Msg("Triggering Apps Script syncAll")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("script trigger: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("script trigger: reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("script trigger: status %d: %s", resp.StatusCode, data)
	}

	var result runResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("script trigger: decoding response: %w", err)
	}
	if result.Error != nil {
		return fmt.Errorf("script trigger: script error %s: %s", result.Error.Status, result.Error.Message)
	}

	log.Info().Str("script_id", c.scriptID).Msg("Apps Script syncAll triggered")
	return nil
}
