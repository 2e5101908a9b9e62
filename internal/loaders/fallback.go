package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SevaSansthan/wa-responder/internal/utils"
)

// FallbackWriter appends log records to a local JSON-lines file, one file
// per day, when the remote log store is unreachable. Failures here are only
// logged; there is nowhere further to fall.
type FallbackWriter struct {
	dir string
	mu  sync.Mutex
}

func NewFallbackWriter(dir string) *FallbackWriter {
	return &FallbackWriter{dir: dir}
}

func (w *FallbackWriter) Write(rec Record) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		utils.Zlog.Error("Fallback log dir creation failed", zap.Error(err))
		return
	}

	name := fmt.Sprintf("message-logs-%s.jsonl", time.Now().UTC().Format("2006-01-02"))
	path := filepath.Join(w.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		utils.Zlog.Error("Fallback log open failed", zap.Error(err))
		return
	}
	defer f.Close()

	line, err := json.Marshal(rec)
	if err != nil {
		utils.Zlog.Error("Fallback log marshal failed", zap.Error(err))
		return
	}
	line = append(line, '\n')

	if _, err := f.Write(line); err != nil {
		utils.Zlog.Error("Fallback log write failed", zap.Error(err))
	}
}
