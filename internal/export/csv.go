package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// csvHeader is the ground-truth column order of the log schema.
var csvHeader = []string{
	"Date", "PlayerCode", "Score", "Won", "TimeUsed", "Topic", "Stance",
	"Friendly", "Aggressive", "Logical", "Illogical", "Humor", "Serious",
	"Sarcasm", "Direct", "OpenMinded", "ClosedMinded", "Minimal", "Verbose",
	"EmojiAmount", "BotsFound", "HumansMisidentified", "TotalBots",
}

const csvDateLayout = "2006-01-02 15:04:05"

// utf8BOM is written at the start of a fresh file so spreadsheet software
// opens the semicolon-delimited file with the right encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter appends round records to the local CSV backup: semicolon
// delimited, UTF-8 BOM, CRLF line endings.
type CSVWriter struct {
	path string
	mu   sync.Mutex
}

// NewCSVWriter creates a writer for the given file path. The file and its
// directory are created lazily on first append.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Append writes one record, creating the file with BOM and header first if
// needed.
func (w *CSVWriter) Append(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}

	info, err := os.Stat(w.path)
	fresh := os.IsNotExist(err) || (err == nil && info.Size() == 0)

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}
	defer f.Close()

	if fresh {
		if _, err := f.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %v", err)
		}
	}

	cw := csv.NewWriter(f)
	cw.Comma = ';'
	cw.UseCRLF = true

	if fresh {
		if err := cw.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write header: %v", err)
		}
	}

	if err := cw.Write(recordRow(rec)); err != nil {
		return fmt.Errorf("failed to write record: %v", err)
	}

	cw.Flush()
	return cw.Error()
}

func recordRow(rec Record) []string {
	won := "0"
	if rec.Won {
		won = "1"
	}
	return []string{
		rec.Date.Format(csvDateLayout),
		rec.PlayerCode,
		strconv.Itoa(rec.Score),
		won,
		strconv.Itoa(rec.TimeUsed),
		rec.Topic,
		rec.Stance,
		strconv.Itoa(rec.Friendly),
		strconv.Itoa(rec.Aggressive),
		strconv.Itoa(rec.Logical),
		strconv.Itoa(rec.Illogical),
		strconv.Itoa(rec.Humor),
		strconv.Itoa(rec.Serious),
		strconv.Itoa(rec.Sarcasm),
		strconv.Itoa(rec.Direct),
		strconv.Itoa(rec.OpenMinded),
		strconv.Itoa(rec.ClosedMinded),
		strconv.Itoa(rec.Minimal),
		strconv.Itoa(rec.Verbose),
		strconv.Itoa(rec.EmojiAmount),
		strconv.Itoa(rec.BotsFound),
		strconv.Itoa(rec.HumansMisidentified),
		strconv.Itoa(rec.TotalBots),
	}
}
