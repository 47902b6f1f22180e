package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"
)

type scrobbleReport struct {
	TrackID       string `json:"track_id"`
	PlayedSeconds int    `json:"played_seconds"`
	ReportedAt    int64  `json:"reported_at"`
}

var scrobbleClient = &http.Client{Timeout: 10 * time.Second}

// SetScrobbleEndpoint enables scrobble reporting. Empty disables it.
func (client *Client) SetScrobbleEndpoint(url string) {
	client.scrobbleURL = url
}

func (client *Client) SetScrobbleHTTPClient(httpClient *http.Client) {
	client.httpClient = httpClient
}

// ReportScrobble tells the catalog a track was listened to. Telemetry only:
// every failure is swallowed after a debug log, playback never waits on it.
func (client *Client) ReportScrobble(id string, playedSeconds int) {
	if client.scrobbleURL == "" {
		return
	}

	report := scrobbleReport{
		TrackID:       id,
		PlayedSeconds: playedSeconds,
		ReportedAt:    time.Now().Unix(),
	}

	body, err := json.Marshal(report)

	if err != nil {
		return
	}

	httpClient := client.httpClient

	if httpClient == nil {
		httpClient = scrobbleClient
	}

	response, err := httpClient.Post(client.scrobbleURL, "application/json", bytes.NewReader(body))

	if err != nil {
		client.logger.Debug("scrobble report failed", "track", id, "err", err)
		return
	}

	defer response.Body.Close()

	if response.StatusCode >= 300 {
		client.logger.Debug("scrobble report rejected", "track", id, "status", response.StatusCode)
	}
}
