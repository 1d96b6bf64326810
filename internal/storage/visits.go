package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"vidinsight/internal/model"
)

// VisitLog is an append-only JSON-lines file of analyze requests.
type VisitLog struct {
	mu   sync.Mutex
	path string
}

func NewVisitLog(path string) *VisitLog {
	return &VisitLog{path: path}
}

// Record appends one visit. A logging failure is reported but must
// never fail the pipeline run that triggered it.
func (v *VisitLog) Record(user, url string) error {
	if v.path == "" {
		return nil
	}

	rec := model.VisitRecord{
		User:      user,
		URL:       url,
		Timestamp: time.Now().UTC(),
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal visit record: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	f, err := os.OpenFile(v.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open visit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append visit record: %w", err)
	}
	return nil
}
