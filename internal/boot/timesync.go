package boot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type worldTime struct {
	Datetime string `json:"datetime"`
}

// ParseWorldTime reads the datetime field of a time-service response.
func ParseWorldTime(body []byte) (time.Time, error) {
	var wt worldTime
	if err := json.Unmarshal(body, &wt); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrClockSync, err)
	}
	if wt.Datetime == "" {
		return time.Time{}, fmt.Errorf("%w: no datetime in response", ErrClockSync)
	}
	t, err := time.Parse(time.RFC3339Nano, wt.Datetime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrClockSync, err)
	}
	return t, nil
}

// WebClient adapts an *http.Client to HTTPClient.
type WebClient struct {
	Client *http.Client
}

func NewWebClient(timeout time.Duration) *WebClient {
	return &WebClient{Client: &http.Client{Timeout: timeout}}
}

func (w *WebClient) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := w.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}
