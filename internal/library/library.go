package library

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/listenfill/internal/exercise"
)

// ErrNotFound is returned when no entry has the requested id
var ErrNotFound = errors.New("library entry not found")

// Entry is one saved video/subtitle pair
type Entry struct {
	ID                  string
	VideoPath           string
	SubtitlePath        string
	TimeOffsetMs        int64
	Exercises           []exercise.ExerciseRecord
	Config              *exercise.ExerciseConfig
	ResumePositionMs    int64
	ResumeExerciseIndex int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Library is a handle on the SQLite library file
type Library struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// EntryID derives the stable id of a video/subtitle pair from their
// absolute paths, ignoring case
func EntryID(videoPath, subtitlePath string) string {
	key := strings.ToLower(absPath(videoPath) + "|" + absPath(subtitlePath))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

func absPath(p string) string {
	if p == "" {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// Open opens or creates the library database at path
func Open(path string) (*Library, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	// a single connection keeps writes serialized
	db.SetMaxOpenConns(1)

	l := &Library{db: db, now: time.Now}
	if err := l.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return l, nil
}

func (l *Library) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id text PRIMARY KEY,
			video_path text NOT NULL,
			subtitle_path text NOT NULL,
			time_offset_ms integer NOT NULL DEFAULT 0,
			exercises blob,
			exercise_config blob,
			resume_position_ms integer NOT NULL DEFAULT 0,
			resume_exercise_index integer NOT NULL DEFAULT 0,
			created_at integer NOT NULL,
			updated_at integer NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_entries_updated ON entries (updated_at)`,
	}

	for _, query := range queries {
		if _, err := l.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Close closes the database
func (l *Library) Close() error {
	return l.db.Close()
}

const selectColumns = `SELECT id, video_path, subtitle_path, time_offset_ms, exercises,
	exercise_config, resume_position_ms, resume_exercise_index, created_at, updated_at FROM entries`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e                 Entry
		exercises, config []byte
		created, updated  int64
	)
	err := row.Scan(&e.ID, &e.VideoPath, &e.SubtitlePath, &e.TimeOffsetMs, &exercises,
		&config, &e.ResumePositionMs, &e.ResumeExerciseIndex, &created, &updated)
	if err != nil {
		return Entry{}, err
	}

	if len(exercises) > 0 {
		if err := json.Unmarshal(exercises, &e.Exercises); err != nil {
			return Entry{}, fmt.Errorf("entry %s: corrupt exercises: %w", e.ID, err)
		}
	}
	if len(config) > 0 {
		var cfg exercise.ExerciseConfig
		if err := json.Unmarshal(config, &cfg); err != nil {
			return Entry{}, fmt.Errorf("entry %s: corrupt exercise config: %w", e.ID, err)
		}
		e.Config = &cfg
	}
	e.CreatedAt = time.UnixMilli(created)
	e.UpdatedAt = time.UnixMilli(updated)
	return e, nil
}

// Get returns the entry with the given id
func (l *Library) Get(id string) (Entry, error) {
	e, err := scanEntry(l.db.QueryRow(selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return e, err
}

// Find returns the entry for a video/subtitle pair
func (l *Library) Find(videoPath, subtitlePath string) (Entry, error) {
	return l.Get(EntryID(videoPath, subtitlePath))
}

// List returns all entries, most recently updated first
func (l *Library) List() ([]Entry, error) {
	rows, err := l.db.Query(selectColumns + ` ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddOrUpdate stores e under the id of its video/subtitle pair. When the
// pair is already known, nil exercises, a nil config and zero resume
// fields keep the stored values; the creation time is never changed.
func (l *Library) AddOrUpdate(e Entry) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.ID = EntryID(e.VideoPath, e.SubtitlePath)
	e.VideoPath = absPath(e.VideoPath)
	e.SubtitlePath = absPath(e.SubtitlePath)
	now := l.now()
	e.UpdatedAt = now
	e.CreatedAt = now

	found, err := l.Get(e.ID)
	switch {
	case err == nil:
		if e.Exercises == nil {
			e.Exercises = found.Exercises
		}
		if e.Config == nil {
			e.Config = found.Config
		}
		if e.ResumePositionMs == 0 {
			e.ResumePositionMs = found.ResumePositionMs
		}
		if e.ResumeExerciseIndex == 0 {
			e.ResumeExerciseIndex = found.ResumeExerciseIndex
		}
		e.CreatedAt = found.CreatedAt
	case !errors.Is(err, ErrNotFound):
		return Entry{}, err
	}

	exercises, config, err := encode(e.Exercises, e.Config)
	if err != nil {
		return Entry{}, err
	}

	_, err = l.db.Exec(`INSERT INTO entries (id, video_path, subtitle_path, time_offset_ms, exercises,
			exercise_config, resume_position_ms, resume_exercise_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			video_path = excluded.video_path,
			subtitle_path = excluded.subtitle_path,
			time_offset_ms = excluded.time_offset_ms,
			exercises = excluded.exercises,
			exercise_config = excluded.exercise_config,
			resume_position_ms = excluded.resume_position_ms,
			resume_exercise_index = excluded.resume_exercise_index,
			updated_at = excluded.updated_at`,
		e.ID, e.VideoPath, e.SubtitlePath, e.TimeOffsetMs, nullable(exercises),
		nullable(config), e.ResumePositionMs, e.ResumeExerciseIndex, e.CreatedAt.UnixMilli(), e.UpdatedAt.UnixMilli())
	if err != nil {
		return Entry{}, fmt.Errorf("failed to save entry: %w", err)
	}

	// round-trip through millisecond storage so callers see what Get returns
	e.CreatedAt = time.UnixMilli(e.CreatedAt.UnixMilli())
	e.UpdatedAt = time.UnixMilli(e.UpdatedAt.UnixMilli())
	return e, nil
}

// UpdateExercises replaces the exercises of an entry. A nil cfg keeps the
// stored configuration.
func (l *Library) UpdateExercises(id string, records []exercise.ExerciseRecord, cfg *exercise.ExerciseConfig) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	exercises, config, err := encode(records, cfg)
	if err != nil {
		return err
	}

	res, err := l.db.Exec(`UPDATE entries SET exercises = ?,
			exercise_config = COALESCE(?, exercise_config), updated_at = ? WHERE id = ?`,
		nullable(exercises), nullable(config), l.now().UnixMilli(), id)
	return l.checkAffected(id, res, err)
}

// UpdateResume records where the learner stopped watching
func (l *Library) UpdateResume(id string, positionMs int64, exerciseIndex int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.db.Exec(`UPDATE entries SET resume_position_ms = ?, resume_exercise_index = ?,
			updated_at = ? WHERE id = ?`,
		positionMs, exerciseIndex, l.now().UnixMilli(), id)
	return l.checkAffected(id, res, err)
}

// Remove deletes an entry and reports whether it existed
func (l *Library) Remove(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to remove entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (l *Library) checkAffected(id string, res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// encode turns exercises and config into JSON blobs; nil values become NULL
func encode(records []exercise.ExerciseRecord, cfg *exercise.ExerciseConfig) (exercises, config []byte, err error) {
	if records != nil {
		if exercises, err = json.Marshal(records); err != nil {
			return nil, nil, fmt.Errorf("failed to encode exercises: %w", err)
		}
	}
	if cfg != nil {
		if config, err = json.Marshal(cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to encode exercise config: %w", err)
		}
	}
	return exercises, config, nil
}

func nullable(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}
