package profile

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"chess-with-kaelith/internal/errs"
	"chess-with-kaelith/internal/storage"
)

// document is the on-disk shape of the whole collection. NextID is
// persisted so ids survive deletes without reuse; the active profile id
// lives in the same document as in older versions of the data format.
type document struct {
	NextID   int64     `json:"next_id"`
	ActiveID int64     `json:"active_profile_id"`
	Profiles []Profile `json:"profiles"`
}

// Store keeps the profile collection in memory, in creation order, and
// writes the full document through on every mutation.
type Store struct {
	path     string
	logger   *zap.Logger
	nextID   int64
	activeID int64 // 0 means no active profile
	profiles []Profile
}

// NewStore loads the document at path. A missing document means first
// run; an unreadable one is logged and the store starts empty rather
// than failing.
func NewStore(path string, logger *zap.Logger) *Store {
	s := &Store{
		path:   path,
		logger: logger,
		nextID: 1,
	}
	s.load()
	return s
}

func (s *Store) load() {
	var doc document
	if err := storage.LoadDocument(s.path, &doc); err != nil {
		if !storage.IsNotExist(err) {
			s.logger.Warn("Profile document unreadable, starting with empty collection",
				zap.String("path", s.path),
				zap.Error(err))
		}
		return
	}

	s.profiles = doc.Profiles
	s.activeID = doc.ActiveID
	s.nextID = doc.NextID

	// Repair the counter if an older document predates it.
	for _, p := range s.profiles {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	if s.nextID < 1 {
		s.nextID = 1
	}
	if s.activeID != 0 {
		if _, ok := s.find(s.activeID); !ok {
			s.activeID = 0
		}
	}
}

func (s *Store) find(id int64) (int, bool) {
	for i, p := range s.profiles {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}

// List returns all profiles in creation order.
func (s *Store) List() []Profile {
	out := make([]Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// Count returns the number of profiles.
func (s *Store) Count() int { return len(s.profiles) }

// CanCreate reports whether the profile cap leaves room for one more.
func (s *Store) CanCreate() bool { return len(s.profiles) < MaxProfiles }

// Get returns the profile with the given id.
func (s *Store) Get(id int64) (Profile, error) {
	i, ok := s.find(id)
	if !ok {
		return Profile{}, errs.ErrNotFound
	}
	return s.profiles[i], nil
}

// Create validates nickname, allocates the next id and persists the
// collection before reporting success. The nickname must be non-empty
// after trimming, at most MaxNicknameLen characters and unique among
// all profiles (case-sensitive).
func (s *Store) Create(nickname string) (Profile, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return Profile{}, errs.Validation("nickname", "empty nickname",
			"nickname cannot be empty")
	}
	if n := len([]rune(nickname)); n > MaxNicknameLen {
		return Profile{}, errs.Validation("nickname", "nickname too long",
			fmt.Sprintf("nickname is %d characters, limit is %d", n, MaxNicknameLen))
	}
	for _, p := range s.profiles {
		if p.Nickname == nickname {
			return Profile{}, errs.Validation("nickname", "duplicate nickname",
				fmt.Sprintf("nickname %q already exists", nickname))
		}
	}
	if !s.CanCreate() {
		return Profile{}, errs.Validation("nickname", "profile limit",
			fmt.Sprintf("profile limit of %d reached", MaxProfiles))
	}

	now := time.Now().UTC()
	p := Profile{
		ID:           s.nextID,
		Nickname:     nickname,
		CreatedAt:    now,
		LastPlayedAt: now,
	}
	s.nextID++
	s.profiles = append(s.profiles, p)

	s.logger.Info("Profile created",
		zap.Int64("id", p.ID),
		zap.String("nickname", p.Nickname))

	if err := s.persist(); err != nil {
		// The profile stays in memory; the caller may surface the fault
		// and retry the write via Flush.
		return p, err
	}
	return p, nil
}

// Delete removes the profile with the given id and persists. Deleting
// the active profile clears the active marker.
func (s *Store) Delete(id int64) error {
	i, ok := s.find(id)
	if !ok {
		return errs.ErrNotFound
	}
	s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
	if s.activeID == id {
		s.activeID = 0
	}

	s.logger.Info("Profile deleted", zap.Int64("id", id))
	return s.persist()
}

// UpdateProgress applies a partial counter update and persists. All
// counters must be non-negative.
func (s *Store) UpdateProgress(id int64, upd ProgressUpdate) (Profile, error) {
	if err := validateProgress(upd); err != nil {
		return Profile{}, err
	}
	i, ok := s.find(id)
	if !ok {
		return Profile{}, errs.ErrNotFound
	}

	p := &s.profiles[i]
	if upd.Level != nil {
		p.Level = *upd.Level
	}
	if upd.MatchesPlayed != nil {
		p.MatchesPlayed = *upd.MatchesPlayed
	}
	if upd.GamesWon != nil {
		p.GamesWon = *upd.GamesWon
	}
	if upd.GamesLost != nil {
		p.GamesLost = *upd.GamesLost
	}
	if upd.GamesDrawn != nil {
		p.GamesDrawn = *upd.GamesDrawn
	}

	if err := s.persist(); err != nil {
		return *p, err
	}
	return *p, nil
}

func validateProgress(upd ProgressUpdate) error {
	check := func(field string, v *int) error {
		if v != nil && *v < 0 {
			return errs.Validation(field, "negative counter",
				fmt.Sprintf("%s cannot be negative, got %d", field, *v))
		}
		return nil
	}
	if err := check("level", upd.Level); err != nil {
		return err
	}
	if err := check("matches_played", upd.MatchesPlayed); err != nil {
		return err
	}
	if err := check("games_won", upd.GamesWon); err != nil {
		return err
	}
	if err := check("games_lost", upd.GamesLost); err != nil {
		return err
	}
	return check("games_drawn", upd.GamesDrawn)
}

// SetActive marks the profile as the session-active one, stamps its
// last-played time and persists.
func (s *Store) SetActive(id int64) error {
	i, ok := s.find(id)
	if !ok {
		return errs.ErrNotFound
	}
	s.activeID = id
	s.profiles[i].LastPlayedAt = time.Now().UTC()
	return s.persist()
}

// Active returns the active profile, if any.
func (s *Store) Active() (Profile, bool) {
	if s.activeID == 0 {
		return Profile{}, false
	}
	i, ok := s.find(s.activeID)
	if !ok {
		return Profile{}, false
	}
	return s.profiles[i], true
}

// ClearActive drops the active marker and persists.
func (s *Store) ClearActive() error {
	if s.activeID == 0 {
		return nil
	}
	s.activeID = 0
	return s.persist()
}

// Flush re-persists the collection. Used to retry after a write fault.
func (s *Store) Flush() error {
	return s.persist()
}

func (s *Store) persist() error {
	doc := document{
		NextID:   s.nextID,
		ActiveID: s.activeID,
		Profiles: s.profiles,
	}
	if err := storage.SaveDocument(s.path, doc); err != nil {
		s.logger.Error("Failed to persist profiles",
			zap.String("path", s.path),
			zap.Error(err))
		return err
	}
	return nil
}
