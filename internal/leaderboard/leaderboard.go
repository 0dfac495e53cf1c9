// Package leaderboard tracks each user's best score per category and
// produces rankings from them.
package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Entry is one (username, category) best score.
type Entry struct {
	Username string `json:"username"`
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// String renders the entry as a human-readable sentence. An empty category is
// the absent representation and yields the short form without the category
// clause; any non-empty category is displayed.
func (e Entry) String() string {
	if e.Category == "" {
		return fmt.Sprintf("%s has a score of %d.", e.Username, e.Score)
	}
	return fmt.Sprintf("%s has a score of %d in category '%s'.", e.Username, e.Score, e.Category)
}

type entryKey struct {
	category string
	username string
}

// Leaderboard keeps the best score per (category, username) pair. Scores only
// ever move upward: a submission below the stored best is ignored. Rankings
// are sorted by score descending; exact ties keep submission order.
//
// The board may be shared by several quiz sessions; access is serialized
// internally so concurrent AddScore calls preserve the monotonic-max rule.
type Leaderboard struct {
	mu      sync.RWMutex
	index   map[entryKey]*Entry
	entries []*Entry // insertion order, for stable tie-breaks
}

// New creates an empty leaderboard.
func New() *Leaderboard {
	return &Leaderboard{
		index: make(map[entryKey]*Entry),
	}
}

// AddScore records score for the (category, username) pair, creating the
// entry on first submission and afterwards keeping the maximum of all
// submitted scores. The error is always nil; it is part of the signature so
// the board satisfies quiz.ScoreSink alongside fallible sinks.
func (l *Leaderboard) AddScore(_ context.Context, category, username string, score int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := entryKey{category: category, username: username}
	if entry, ok := l.index[key]; ok {
		if score > entry.Score {
			entry.Score = score
		}
		return nil
	}
	entry := &Entry{Username: username, Category: category, Score: score}
	l.index[key] = entry
	l.entries = append(l.entries, entry)
	return nil
}

// TopScoresForCategory returns up to n entries for the category, best first.
// A non-positive n or an unknown category yields an empty slice.
func (l *Leaderboard) TopScoresForCategory(category string, n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}

	l.mu.RLock()
	matched := make([]Entry, 0)
	for _, entry := range l.entries {
		if entry.Category == category {
			matched = append(matched, *entry)
		}
	}
	l.mu.RUnlock()

	sortByScoreDesc(matched)
	if len(matched) > n {
		matched = matched[:n]
	}
	return matched
}

// UserScores returns the user's entries across all categories, best first.
func (l *Leaderboard) UserScores(username string) []Entry {
	l.mu.RLock()
	matched := make([]Entry, 0)
	for _, entry := range l.entries {
		if entry.Username == username {
			matched = append(matched, *entry)
		}
	}
	l.mu.RUnlock()

	sortByScoreDesc(matched)
	return matched
}

func sortByScoreDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}
