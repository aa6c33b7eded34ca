// Package catalog holds the static event configuration: which events exist,
// whether they are solo or team events, how many registrations they accept
// and which row-store table they are recorded in.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/spf13/viper"
)

//go:embed events.yaml
var defaultCatalog []byte

type EventType string

const (
	Solo EventType = "solo"
	Team EventType = "team"
)

type Round struct {
	Name        string `mapstructure:"name" json:"name"`
	Duration    string `mapstructure:"duration" json:"duration"`
	Description string `mapstructure:"description" json:"description"`
}

type Event struct {
	ID                string    `mapstructure:"id"`
	Type              EventType `mapstructure:"type"`
	TeamSize          int       `mapstructure:"team_size"`
	Limit             int       `mapstructure:"limit"`
	Table             string    `mapstructure:"table"`
	CommunicationLink string    `mapstructure:"whatsapp_link"`

	Title    string   `mapstructure:"title"`
	Subtitle string   `mapstructure:"subtitle"`
	Duration string   `mapstructure:"duration"`
	Venue    string   `mapstructure:"venue"`
	Rounds   []Round  `mapstructure:"rounds"`
	Rules    []string `mapstructure:"rules"`
}

func (e Event) IsTeam() bool {
	return e.Type == Team
}

// Catalog is read-only once built and safe for concurrent use.
type Catalog struct {
	events map[string]Event
	order  []string
}

// New builds a catalog from the given events. Events without a limit get
// defaultLimit and events without a table are stored under their ID.
func New(events []Event, defaultLimit int) (*Catalog, error) {
	c := &Catalog{events: make(map[string]Event, len(events))}
	for _, e := range events {
		if e.ID == "" {
			return nil, fmt.Errorf("event without id")
		}
		if _, dup := c.events[e.ID]; dup {
			return nil, fmt.Errorf("duplicate event %q", e.ID)
		}
		switch e.Type {
		case Solo:
			e.TeamSize = 0
		case Team:
			if e.TeamSize <= 0 {
				return nil, fmt.Errorf("team event %q needs a positive team_size", e.ID)
			}
		default:
			return nil, fmt.Errorf("event %q has unknown type %q", e.ID, e.Type)
		}
		if e.Limit == 0 {
			e.Limit = defaultLimit
		}
		if e.Limit <= 0 {
			return nil, fmt.Errorf("event %q needs a positive limit", e.ID)
		}
		if e.Table == "" {
			e.Table = e.ID
		}
		if e.Title == "" {
			e.Title = e.ID
		}
		c.events[e.ID] = e
		c.order = append(c.order, e.ID)
	}
	return c, nil
}

// Load reads the catalog from path, or the built-in catalog when path is empty.
func Load(path string, defaultLimit int) (*Catalog, error) {
	v := viper.New()
	if path == "" {
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewReader(defaultCatalog)); err != nil {
			return nil, fmt.Errorf("read built-in catalog: %w", err)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
	}

	var events []Event
	if err := v.UnmarshalKey("events", &events); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(events, defaultLimit)
}

func (c *Catalog) Lookup(eventID string) (Event, bool) {
	e, ok := c.events[eventID]
	return e, ok
}

func (c *Catalog) IsValid(eventID string) bool {
	_, ok := c.events[eventID]
	return ok
}

// Table resolves the row-store table an event is recorded in.
func (c *Catalog) Table(eventID string) (string, bool) {
	e, ok := c.events[eventID]
	if !ok {
		return "", false
	}
	return e.Table, true
}

// Events returns all events in catalog order.
func (c *Catalog) Events() []Event {
	events := make([]Event, 0, len(c.order))
	for _, id := range c.order {
		events = append(events, c.events[id])
	}
	return events
}
