package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/neo/botspotter_backend/internal/logging"
)

// LocalStore is the durable backup target for round records, implemented
// by the sqlite database.
type LocalStore interface {
	SaveGameLog(rec Record) error
}

// Sink delivers round records: fire-and-forget to the remote log endpoint,
// always backed up to the local CSV file and database. Delivery failures
// are logged and swallowed; they never block or fail the round flow.
type Sink struct {
	url    string
	client *http.Client
	csv    *CSVWriter
	store  LocalStore
}

// NewSink creates a sink. An empty url disables the remote post; nil csv
// or store disable that backup leg.
func NewSink(url string, csv *CSVWriter, store LocalStore) *Sink {
	return &Sink{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		csv:    csv,
		store:  store,
	}
}

// Log records one finished round. The local backups are written first and
// synchronously; the remote post happens in the background.
func (s *Sink) Log(rec Record) {
	if s.csv != nil {
		if err := s.csv.Append(rec); err != nil {
			logging.Warn("Failed to append CSV backup", map[string]interface{}{
				"error":       err.Error(),
				"player_code": rec.PlayerCode,
			})
		}
	}

	if s.store != nil {
		if err := s.store.SaveGameLog(rec); err != nil {
			logging.Warn("Failed to write database backup", map[string]interface{}{
				"error":       err.Error(),
				"player_code": rec.PlayerCode,
			})
		}
	}

	if s.url == "" {
		return
	}

	go func() {
		if err := s.post(rec); err != nil {
			logging.Warn("Log sink unreachable, round proceeds with local backup only", map[string]interface{}{
				"error":       err.Error(),
				"player_code": rec.PlayerCode,
			})
		}
	}()
}

func (s *Sink) post(rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %v", err)
	}

	resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to post record: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("log sink returned status %d", resp.StatusCode)
	}

	var ack struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("failed to decode sink response: %v", err)
	}
	if !ack.Success {
		return fmt.Errorf("log sink reported failure")
	}

	return nil
}
