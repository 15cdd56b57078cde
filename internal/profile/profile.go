// Package profile persists the user's analysis preferences and the
// profile assistant conversation.
package profile

import (
	"sync"

	"github.com/google/uuid"

	"github.com/TobiSchelling/climatenews/internal/storage"
)

// Profile holds the user's preference strings and conversation transcript.
type Profile struct {
	ClimateConcerns     string   `json:"climateConcerns"`
	GeographicFocus     string   `json:"geographicFocus"`
	InterestCategories  string   `json:"interestCategories"`
	ConversationHistory []string `json:"conversationHistory"`
	SessionID           string   `json:"sessionId"`
}

// Update is a partial profile update. Nil fields are left unchanged.
type Update struct {
	ClimateConcerns     *string
	GeographicFocus     *string
	InterestCategories  *string
	ConversationHistory []string
	SessionID           *string
}

// Store is the persisted profile. Every mutation writes the whole
// profile back to the underlying store.
type Store struct {
	mu      sync.Mutex
	store   storage.Store
	profile Profile
}

// Open loads the profile from s, falling back to a fresh default when it
// is missing or corrupt.
func Open(s storage.Store) (*Store, error) {
	p := &Store{store: s}

	var loaded Profile
	if storage.Load(s, storage.ProfileKey, &loaded) {
		p.profile = loaded
		if p.profile.ConversationHistory == nil {
			p.profile.ConversationHistory = []string{}
		}
		if p.profile.SessionID != "" {
			return p, nil
		}
		p.profile.SessionID = uuid.NewString()
	} else {
		p.profile = defaultProfile()
	}

	if err := p.persist(); err != nil {
		return nil, err
	}
	return p, nil
}

func defaultProfile() Profile {
	return Profile{
		ConversationHistory: []string{},
		SessionID:           uuid.NewString(),
	}
}

// Get returns a copy of the current profile.
func (p *Store) Get() Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

// Update shallow-merges u into the profile.
func (p *Store) Update(u Update) (Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if u.ClimateConcerns != nil {
		p.profile.ClimateConcerns = *u.ClimateConcerns
	}
	if u.GeographicFocus != nil {
		p.profile.GeographicFocus = *u.GeographicFocus
	}
	if u.InterestCategories != nil {
		p.profile.InterestCategories = *u.InterestCategories
	}
	if u.ConversationHistory != nil {
		p.profile.ConversationHistory = append([]string{}, u.ConversationHistory...)
	}
	if u.SessionID != nil {
		p.profile.SessionID = *u.SessionID
	}

	if err := p.persist(); err != nil {
		return Profile{}, err
	}
	return p.snapshot(), nil
}

// AppendMessage appends messages to the conversation history.
func (p *Store) AppendMessage(messages ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.profile.ConversationHistory = append(p.profile.ConversationHistory, messages...)
	return p.persist()
}

// Reset restores the default profile with a new session id.
func (p *Store) Reset() (Profile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.profile = defaultProfile()
	if err := p.persist(); err != nil {
		return Profile{}, err
	}
	return p.snapshot(), nil
}

// IsComplete reports whether all three preference fields are set.
func (p *Store) IsComplete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile.ClimateConcerns != "" &&
		p.profile.GeographicFocus != "" &&
		p.profile.InterestCategories != ""
}

func (p *Store) snapshot() Profile {
	out := p.profile
	out.ConversationHistory = append([]string{}, p.profile.ConversationHistory...)
	return out
}

func (p *Store) persist() error {
	return storage.Save(p.store, storage.ProfileKey, p.profile)
}
