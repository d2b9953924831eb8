// Package quotes picks the "quote of the day" shown on the home page.
// A random quote is chosen once per calendar day and remembered through a
// settings store, so every visitor sees the same quote until midnight.
package quotes

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const settingKey = "quote_of_the_day"

// Quote is one entry of the quote list.
type Quote struct {
	Author string `yaml:"author" json:"author"`
	Text   string `yaml:"quote" json:"quote"`
}

// Default is used when no quote file is configured.
var Default = []Quote{
	{Author: "Computer Programming", Text: "Hello, World!"},
	{Author: "Anonymous", Text: "It's not a bug, it's a feature."},
	{Author: "Cory House", Text: "Code is like humor. When you have to explain it, it's bad."},
	{Author: "Donald Knuth", Text: "Premature optimization is the root of all evil."},
	{Author: "Donald Knuth", Text: "Programming is the art of telling another human what one wants the computer to do."},
	{Author: "Bjarne Stroustrup", Text: "There are only two kinds of languages: the ones people complain about and the ones nobody uses."},
	{Author: "Chris Pine", Text: "Programming isn't about what you know; it's about what you can figure out."},
}

// ErrEmpty is returned when there are no quotes to pick from.
var ErrEmpty = errors.New("quotes: list is empty")

// Load reads a YAML list of quotes.
func Load(path string) ([]Quote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quotes: read %s: %w", path, err)
	}
	var list []Quote
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("quotes: parse %s: %w", path, err)
	}
	for i, q := range list {
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("quotes: %s: entry %d has no quote", path, i)
		}
	}
	return list, nil
}

// Settings persists the current pick between restarts.
type Settings interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// Picker chooses the quote of the day.
type Picker struct {
	mu       sync.Mutex
	quotes   []Quote
	settings Settings
	intn     func(n int) int
}

// NewPicker returns a Picker over list. A nil settings keeps the pick in
// memory only.
func NewPicker(list []Quote, settings Settings) *Picker {
	if settings == nil {
		settings = &memorySettings{values: map[string]string{}}
	}
	return &Picker{quotes: list, settings: settings, intn: rand.IntN}
}

// Today returns the quote for the calendar day of now.
func (p *Picker) Today(now time.Time) (Quote, error) {
	if len(p.quotes) == 0 {
		return Quote{}, ErrEmpty
	}
	day := now.Format("2006-01-02")

	p.mu.Lock()
	defer p.mu.Unlock()

	stored, err := p.settings.GetSetting(settingKey)
	if err != nil {
		return Quote{}, err
	}
	if idx, stamp, ok := parseStored(stored); ok && stamp == day && idx < len(p.quotes) {
		return p.quotes[idx], nil
	}

	idx := p.intn(len(p.quotes))
	if err := p.settings.SetSetting(settingKey, strconv.Itoa(idx)+"/"+day); err != nil {
		return Quote{}, err
	}
	return p.quotes[idx], nil
}

// parseStored splits an "index/day" value.
func parseStored(v string) (int, string, bool) {
	idxStr, day, found := strings.Cut(v, "/")
	if !found {
		return 0, "", false
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 {
		return 0, "", false
	}
	return idx, day, true
}

type memorySettings struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memorySettings) GetSetting(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memorySettings) SetSetting(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
