package mesacheck

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/models"
	"go.uber.org/zap"
)

// Session holds one interactive confirmation session: the uploaded bytes,
// the roster parsed from them and the confirmed set. Loading a new file
// replaces all three, so confirmations never carry over between files.
//
// A Session is safe for concurrent use.
type Session struct {
	opts   Options
	logger *zap.Logger

	mu        sync.Mutex
	id        string
	name      string
	data      []byte
	roster    *models.Roster
	confirmed *models.ConfirmedSet
}

// NewSession returns an empty session. A nil logger disables logging.
func NewSession(opts Options, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		opts:      opts,
		logger:    logger,
		confirmed: models.NewConfirmedSet(),
	}
}

// Snapshot is a consistent copy of a session's state, taken under one
// lock so that its fields always belong to the same upload.
type Snapshot struct {
	ID        string
	Name      string
	Roster    *models.Roster
	Confirmed *models.ConfirmedSet
}

// Load parses data and makes it the session's workbook under a new upload
// ID, clearing all confirmations. It returns the state it installed. On
// error the session is left empty.
func (s *Session) Load(name string, data []byte) (Snapshot, error) {
	roster, err := Parse(data, s.opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.confirmed.Clear()
	if err != nil {
		s.id, s.name, s.data, s.roster = "", "", nil, nil
		s.logger.Warn("workbook rejected", zap.String("file", name), zap.Error(err))
		return Snapshot{}, err
	}

	s.id = uuid.NewString()
	s.name = name
	s.data = data
	s.roster = roster

	s.logger.Info("workbook loaded",
		zap.String("upload_id", s.id),
		zap.String("file", name),
		zap.String("sheet", roster.Sheet),
		zap.Int("header_row", roster.HeaderRow),
		zap.Int("tables", len(roster.Groups)),
		zap.Int("items", roster.Len()))
	return s.snapshotLocked(), nil
}

// Snapshot returns the current state. Roster is nil when nothing is
// loaded. The roster must not be modified.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:        s.id,
		Name:      s.name,
		Roster:    s.roster,
		Confirmed: s.confirmed.Clone(),
	}
}

// Reset discards the workbook and all confirmations.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id, s.name, s.data, s.roster = "", "", nil, nil
	s.confirmed.Clear()
}

// ID returns the current upload ID, or "" when nothing is loaded.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Name returns the name the current workbook was loaded under.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Roster returns the parsed roster, or nil when nothing is loaded. The
// roster must not be modified.
func (s *Session) Roster() *models.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster
}

// Toggle flips the confirmation of the item at c and returns its new state.
func (s *Session) Toggle(c models.Coord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toggleLocked(c)
}

// ToggleKeyFor is ToggleFor for a coordinate in key form, such as "R2C1".
// It returns the parsed coordinate with the new state.
func (s *Session) ToggleKeyFor(uploadID, key string) (models.Coord, bool, error) {
	c, err := models.ParseCoord(key)
	if err != nil {
		return models.Coord{}, false, err
	}
	confirmed, err := s.ToggleFor(uploadID, c)
	return c, confirmed, err
}

// ToggleFor is Toggle guarded by the upload ID the caller saw. It fails
// with ErrStaleUpload when another file was loaded in the meantime.
func (s *Session) ToggleFor(uploadID string, c models.Coord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roster != nil && s.id != uploadID {
		return false, ErrStaleUpload
	}
	return s.toggleLocked(c)
}

func (s *Session) toggleLocked(c models.Coord) (bool, error) {
	if s.roster == nil {
		return false, ErrNoWorkbook
	}
	if _, ok := s.roster.Item(c); !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownItem, c)
	}

	confirmed := s.confirmed.Toggle(c)
	s.logger.Debug("item toggled",
		zap.String("coord", c.String()),
		zap.Bool("confirmed", confirmed),
		zap.Int("count", s.confirmed.Len()))
	return confirmed, nil
}

// IsConfirmed reports whether the item at c is confirmed.
func (s *Session) IsConfirmed(c models.Coord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed.Contains(c)
}

// Count returns the number of confirmed items.
func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed.Len()
}

// Confirmed returns the confirmed coordinates in row-major order.
func (s *Session) Confirmed() []models.Coord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed.Coords()
}

// Render renders the current workbook with the current confirmations.
func (s *Session) Render() ([]byte, error) {
	s.mu.Lock()
	data := s.data
	confirmed := s.confirmed.Clone()
	s.mu.Unlock()

	if data == nil {
		return nil, ErrNoWorkbook
	}
	out, err := Render(data, confirmed, s.opts)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("workbook rendered",
		zap.Int("confirmed", confirmed.Len()),
		zap.Int("bytes", len(out)))
	return out, nil
}
