package faq

import (
	"database/sql"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/SevaSansthan/wa-responder/internal/utils"
)

// Entry is one FAQ row: a short keyword summary used for selection and the
// full content used for answering.
type Entry struct {
	ID       int
	Keywords string
	Content  string
}

// Store is the read-only FAQ index, loaded in bulk once at process start.
type Store struct {
	entries map[int]Entry
	ids     []int // ascending, for stable numbered rendering
}

// fallbackEntry keeps the answer path alive when the side-loaded database
// is absent or unreadable.
var fallbackEntry = Entry{
	ID:       1,
	Keywords: "default keywords",
	Content:  "Default FAQ content: Please contact support for details.",
}

// LoadStore reads all rows from the extracted_data table. A missing or
// broken database degrades to the single fallback entry instead of failing
// startup.
func LoadStore(dbPath string) *Store {
	store := &Store{
		entries: map[int]Entry{fallbackEntry.ID: fallbackEntry},
		ids:     []int{fallbackEntry.ID},
	}

	if _, err := os.Stat(dbPath); err != nil {
		utils.Zlog.Error("FAQ database file not found, using default entry",
			zap.String("path", dbPath))
		return store
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		utils.Zlog.Error("Failed to open FAQ database", zap.Error(err))
		return store
	}
	defer db.Close()

	rows, err := db.Query("SELECT rowid, keywords, content FROM extracted_data")
	if err != nil {
		utils.Zlog.Error("Failed to query FAQ data", zap.Error(err))
		return store
	}
	defer rows.Close()

	entries := make(map[int]Entry)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Keywords, &e.Content); err != nil {
			utils.Zlog.Warn("Skipping unreadable FAQ row", zap.Error(err))
			continue
		}
		entries[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		utils.Zlog.Error("FAQ row iteration failed", zap.Error(err))
	}

	if len(entries) == 0 {
		utils.Zlog.Warn("FAQ database contained no rows, using default entry")
		return store
	}

	ids := make([]int, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	utils.Zlog.Info("Loaded FAQ index", zap.Int("entries", len(entries)))
	return &Store{entries: entries, ids: ids}
}

// Get returns the entry for id, falling back to the first entry when the id
// is unknown.
func (s *Store) Get(id int) Entry {
	if e, ok := s.entries[id]; ok {
		return e
	}
	return s.entries[s.ids[0]]
}

// Has reports whether id exists in the index.
func (s *Store) Has(id int) bool {
	_, ok := s.entries[id]
	return ok
}

// Len reports the number of loaded entries.
func (s *Store) Len() int { return len(s.entries) }

// All returns entries in ascending id order.
func (s *Store) All() []Entry {
	out := make([]Entry, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.entries[id])
	}
	return out
}

// String renders a numbered keyword list for the selector prompt.
func renderKeywordList(entries []Entry) string {
	var out string
	for _, e := range entries {
		out += fmt.Sprintf("%d. %s\n", e.ID, e.Keywords)
	}
	return out
}
