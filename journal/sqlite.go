// Package journal persists what the algo did: a sqlite journal with one row
// per game and one per turn, and a compressed recording of every protocol
// line for replay.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Game is one journaled match.
type Game struct {
	ID        int64
	Doctrine  string
	Seed      int64
	StartedAt string
	Turns     int
	Result    string
}

// TurnRow is the journal entry for one decision pass.
type TurnRow struct {
	GameID      int64
	Turn        int
	Health      float64
	EnemyHealth float64
	SP          float64
	MP          float64
	Phase       string
	Build       int
	Deploy      int
	Defense     string
	Events      string
	Error       string
}

type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal database at path.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("empty journal path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			doctrine TEXT NOT NULL,
			seed INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			turns INTEGER NOT NULL DEFAULT 0,
			result TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS turns (
			game_id INTEGER NOT NULL REFERENCES games(id),
			turn INTEGER NOT NULL,
			health REAL NOT NULL,
			enemy_health REAL NOT NULL,
			sp REAL NOT NULL,
			mp REAL NOT NULL,
			phase TEXT NOT NULL,
			build INTEGER NOT NULL,
			deploy INTEGER NOT NULL,
			defense TEXT NOT NULL,
			events TEXT NOT NULL,
			error TEXT NOT NULL,
			PRIMARY KEY (game_id, turn)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// BeginGame adds a game row and returns its id.
func (j *Journal) BeginGame(doctrine string, seed int64) (int64, error) {
	res, err := j.db.Exec(`INSERT INTO games(doctrine, seed, started_at) VALUES(?, ?, ?)`,
		doctrine, seed, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("begin game: %w", err)
	}
	return res.LastInsertId()
}

// RecordTurn stores one turn. Recording the same turn twice keeps the later row.
func (j *Journal) RecordTurn(row TurnRow) error {
	_, err := j.db.Exec(`INSERT OR REPLACE INTO turns(
			game_id, turn, health, enemy_health, sp, mp, phase, build, deploy, defense, events, error
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.GameID, row.Turn, row.Health, row.EnemyHealth, row.SP, row.MP,
		row.Phase, row.Build, row.Deploy, row.Defense, row.Events, row.Error)
	if err != nil {
		return fmt.Errorf("record turn %d: %w", row.Turn, err)
	}
	return nil
}

// EndGame closes a game with its result and the number of turns played.
func (j *Journal) EndGame(id int64, result string, turns int) error {
	res, err := j.db.Exec(`UPDATE games SET result = ?, turns = ? WHERE id = ?`, result, turns, id)
	if err != nil {
		return fmt.Errorf("end game %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("end game %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

// Games lists every journaled game, oldest first.
func (j *Journal) Games() ([]Game, error) {
	rows, err := j.db.Query(`SELECT id, doctrine, seed, started_at, turns, result FROM games ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.Doctrine, &g.Seed, &g.StartedAt, &g.Turns, &g.Result); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Turns lists the turns of one game in order.
func (j *Journal) Turns(gameID int64) ([]TurnRow, error) {
	rows, err := j.db.Query(`SELECT
			game_id, turn, health, enemy_health, sp, mp, phase, build, deploy, defense, events, error
		FROM turns WHERE game_id = ? ORDER BY turn`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TurnRow
	for rows.Next() {
		var r TurnRow
		if err := rows.Scan(&r.GameID, &r.Turn, &r.Health, &r.EnemyHealth, &r.SP, &r.MP,
			&r.Phase, &r.Build, &r.Deploy, &r.Defense, &r.Events, &r.Error); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastGame returns the most recent game id, or sql.ErrNoRows when the
// journal is empty.
func (j *Journal) LastGame() (int64, error) {
	var id sql.NullInt64
	if err := j.db.QueryRow(`SELECT MAX(id) FROM games`).Scan(&id); err != nil {
		return 0, err
	}
	if !id.Valid {
		return 0, sql.ErrNoRows
	}
	return id.Int64, nil
}

func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}
