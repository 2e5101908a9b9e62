package utils

import (
	"testing"
)

func TestContainsDonationIntent(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"I want to donate 500 rupees", true},
		{"Mujhe daan karna hai", true},
		{"Can I pay via UPI?", true},
		{"DONATION receipt please", true},
		{"katha kab shuru hogi?", false},
		{"", false},
		{"thank you ji 🙏", false},
	}
	for _, tt := range tests {
		if got := ContainsDonationIntent(tt.message); got != tt.want {
			t.Errorf("ContainsDonationIntent(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	t.Run("filters stopwords and short words", func(t *testing.T) {
		got := ExtractKeywords("I want to know about the katha schedule", 5)
		for _, w := range got {
			if stopwords[w] || len(w) < 3 {
				t.Errorf("keyword %q should have been filtered", w)
			}
		}
		if !contains(got, "katha") || !contains(got, "schedule") {
			t.Errorf("got %v, want katha and schedule", got)
		}
	})

	t.Run("respects topN", func(t *testing.T) {
		got := ExtractKeywords("receipt donation amount transaction confirmation certificate", 3)
		if len(got) > 3 {
			t.Errorf("got %d keywords, want at most 3", len(got))
		}
	})

	t.Run("empty message", func(t *testing.T) {
		if got := ExtractKeywords("", 5); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})

	t.Run("only stopwords", func(t *testing.T) {
		if got := ExtractKeywords("is it the and of", 5); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

func TestMetricsSnapshot(t *testing.T) {
	m := &Metrics{byCategory: make(map[string]int64)}
	m.RequestsTotal.Add(3)
	m.ErrorsTotal.Add(1)
	m.CountCategory("General|Greeting")
	m.CountCategory("General|Greeting")
	m.CountCategory("Spam|Spammy Message")

	snap := m.Snapshot()
	if snap["requests_total"] != int64(3) {
		t.Errorf("requests_total = %v", snap["requests_total"])
	}
	if snap["errors_total"] != int64(1) {
		t.Errorf("errors_total = %v", snap["errors_total"])
	}
	byCat := snap["by_classification"].(map[string]int64)
	if byCat["General|Greeting"] != 2 || byCat["Spam|Spammy Message"] != 1 {
		t.Errorf("by_classification = %v", byCat)
	}

	// The snapshot map must be a copy.
	byCat["General|Greeting"] = 99
	if m.Snapshot()["by_classification"].(map[string]int64)["General|Greeting"] != 2 {
		t.Error("snapshot aliases the live map")
	}
}
