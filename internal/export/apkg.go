package export

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/listenfill/internal/exercise"
)

var clozeOrdRe = regexp.MustCompile(`\{\{c(\d+)::`)

// apkgWriter builds an Anki package holding one cloze note per exercise
type apkgWriter struct {
	deckName string
	deckID   int64
	modelID  int64
	now      time.Time
}

func newAPKGWriter(deckName string, now time.Time) *apkgWriter {
	return &apkgWriter{
		deckName: deckName,
		deckID:   now.UnixMilli(),
		modelID:  now.UnixMilli() + 1,
		now:      now,
	}
}

// writeAPKG exports records as an Anki package named after the file
func writeAPKG(path string, records []exercise.ExerciseRecord) error {
	deck := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return newAPKGWriter(deck, time.Now()).write(path, records)
}

func (g *apkgWriter) write(outputPath string, records []exercise.ExerciseRecord) error {
	tempDir, err := os.MkdirTemp("", "listenfill_apkg_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// No media, but Anki expects the mapping file
	if err := os.WriteFile(filepath.Join(tempDir, "media"), []byte("{}"), 0644); err != nil {
		return fmt.Errorf("failed to create media mapping: %w", err)
	}

	if err := g.createDatabase(filepath.Join(tempDir, "collection.anki2"), records); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}
	return nil
}

func (g *apkgWriter) createDatabase(dbPath string, records []exercise.ExerciseRecord) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, query := range schema {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := g.insertNotesAndCards(db, records); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}
	return nil
}

var schema = []string{
	`CREATE TABLE col (
		id integer PRIMARY KEY,
		crt integer NOT NULL,
		mod integer NOT NULL,
		scm integer NOT NULL,
		ver integer NOT NULL,
		dty integer NOT NULL,
		usn integer NOT NULL,
		ls integer NOT NULL,
		conf text NOT NULL,
		models text NOT NULL,
		decks text NOT NULL,
		dconf text NOT NULL,
		tags text NOT NULL
	)`,
	`CREATE TABLE notes (
		id integer PRIMARY KEY,
		guid text NOT NULL,
		mid integer NOT NULL,
		mod integer NOT NULL,
		usn integer NOT NULL,
		tags text NOT NULL,
		flds text NOT NULL,
		sfld text NOT NULL,
		csum integer NOT NULL,
		flags integer NOT NULL,
		data text NOT NULL
	)`,
	`CREATE TABLE cards (
		id integer PRIMARY KEY,
		nid integer NOT NULL,
		did integer NOT NULL,
		ord integer NOT NULL,
		mod integer NOT NULL,
		usn integer NOT NULL,
		type integer NOT NULL,
		queue integer NOT NULL,
		due integer NOT NULL,
		ivl integer NOT NULL,
		factor integer NOT NULL,
		reps integer NOT NULL,
		lapses integer NOT NULL,
		left integer NOT NULL,
		odue integer NOT NULL,
		odid integer NOT NULL,
		flags integer NOT NULL,
		data text NOT NULL
	)`,
	`CREATE TABLE revlog (
		id integer PRIMARY KEY,
		cid integer NOT NULL,
		usn integer NOT NULL,
		ease integer NOT NULL,
		ivl integer NOT NULL,
		lastIvl integer NOT NULL,
		factor integer NOT NULL,
		time integer NOT NULL,
		type integer NOT NULL
	)`,
	`CREATE TABLE graves (
		usn integer NOT NULL,
		oid integer NOT NULL,
		type integer NOT NULL
	)`,
	`CREATE INDEX ix_notes_csum ON notes (csum)`,
	`CREATE INDEX ix_notes_usn ON notes (usn)`,
	`CREATE INDEX ix_cards_usn ON cards (usn)`,
	`CREATE INDEX ix_cards_nid ON cards (nid)`,
	`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
	`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
	`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
}

func (g *apkgWriter) deck(id int64, name, desc string) map[string]interface{} {
	return map[string]interface{}{
		"id":               id,
		"name":             name,
		"mod":              g.now.Unix(),
		"desc":             desc,
		"collapsed":        false,
		"dyn":              0,
		"conf":             1,
		"usn":              0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
	}
}

func (g *apkgWriter) insertCollection(db *sql.DB) error {
	now := g.now.Unix()

	deckKey := strconv.FormatInt(g.deckID, 10)
	decks := map[string]interface{}{
		"1":     g.deck(1, "Default", ""),
		deckKey: g.deck(g.deckID, g.deckName, "Listening exercises created by ListenFill"),
	}
	models := map[string]interface{}{
		strconv.FormatInt(g.modelID, 10): g.noteType(),
	}
	conf := map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      strconv.FormatInt(g.modelID, 10),
		"dayLearnFirst": false,
	}
	dconf := map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	}

	var blobs [4][]byte
	for i, v := range []interface{}{conf, models, decks, dconf} {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		blobs[i] = b
	}

	_, err := db.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		string(blobs[0]),
		string(blobs[1]),
		string(blobs[2]),
		string(blobs[3]),
		"{}", // tags
	)
	return err
}

// noteType is Anki's built-in cloze model with a timing field
func (g *apkgWriter) noteType() map[string]interface{} {
	field := func(name string, ord int) map[string]interface{} {
		return map[string]interface{}{
			"name":   name,
			"ord":    ord,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   20,
			"media":  []string{},
		}
	}
	return map[string]interface{}{
		"id":        g.modelID,
		"name":      "Listening Cloze (ListenFill)",
		"type":      1, // cloze
		"mod":       g.now.Unix(),
		"usn":       -1,
		"sortf":     0,
		"did":       g.deckID,
		"vers":      []int{},
		"tags":      []string{},
		"latexPre":  "",
		"latexPost": "",
		"flds": []map[string]interface{}{
			field("Text", 0),
			field("Timing", 1),
		},
		"tmpls": []map[string]interface{}{
			{
				"name":  "Cloze",
				"ord":   0,
				"qfmt":  `<div class="text">{{cloze:Text}}</div>`,
				"afmt":  `<div class="text">{{cloze:Text}}</div><hr id="answer"><div class="timing">{{Timing}}</div>`,
				"did":   nil,
				"bqfmt": "",
				"bafmt": "",
			},
		},
		"css": `.card { font-family: Arial, sans-serif; font-size: 22px; text-align: center; color: #333; }
.cloze { font-weight: bold; color: #2b6cb0; }
.timing { font-size: 14px; color: #7f8c8d; }`,
	}
}

// clozeOrdinals returns the distinct cloze numbers used in text, in order
func clozeOrdinals(text string) []int {
	var ords []int
	seen := make(map[int]bool)
	for _, m := range clozeOrdRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		ords = append(ords, n)
	}
	return ords
}

func (g *apkgWriter) insertNotesAndCards(db *sql.DB, records []exercise.ExerciseRecord) error {
	mod := g.now.Unix()
	nextID := g.now.UnixMilli()
	due := 0

	for i, rec := range records {
		text := ClozeText(rec)
		ords := clozeOrdinals(text)
		// A cloze note without deletions produces no cards
		if len(ords) == 0 {
			continue
		}

		noteID := nextID
		nextID++
		timing := fmt.Sprintf("#%d %s - %s", rec.SubtitleIndex, formatTime(rec.StartMs), formatTime(rec.EndMs))
		fields := strings.Join([]string{text, timing}, "\x1f")
		guid := fmt.Sprintf("lf_%d_%d", g.deckID, i)

		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			noteID,           // id
			guid,             // guid
			g.modelID,        // mid
			mod,              // mod
			-1,               // usn
			"listenfill",     // tags
			fields,           // flds
			rec.OriginalText, // sfld (sort field)
			0,                // csum
			0,                // flags
			"",               // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		for _, ord := range ords {
			cardID := nextID
			nextID++
			due++
			_, err = db.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				cardID,   // id
				noteID,   // nid
				g.deckID, // did
				ord-1,    // ord (cloze number minus one)
				mod,      // mod
				-1,       // usn
				0,        // type (0=new)
				0,        // queue (0=new)
				due,      // due (position for new cards)
				0,        // ivl
				0,        // factor
				0,        // reps
				0,        // lapses
				0,        // left
				0,        // odue
				0,        // odid
				0,        // flags
				"",       // data
			)
			if err != nil {
				return fmt.Errorf("failed to insert card: %w", err)
			}
		}
	}
	return nil
}

// createZipPackage zips every file of tempDir into outputPath
func createZipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)

	err = filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}
		writer, err := archive.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
	if err != nil {
		archive.Close()
		return err
	}
	return archive.Close()
}
