// Package runs keeps a SQLite log of training runs
package runs

import (
	"database/sql"
	"os"
	"runtime"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/xerrors"
)

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	host TEXT NOT NULL,
	program_version TEXT NOT NULL,
	seed INTEGER NOT NULL,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	samples INTEGER NOT NULL,
	bias REAL NOT NULL,
	learning_rate REAL NOT NULL,
	training_threshold REAL NOT NULL,
	stop_policy INTEGER NOT NULL,
	steps INTEGER NOT NULL,
	accum_error INTEGER NOT NULL,
	accuracy INTEGER NOT NULL,
	reason TEXT NOT NULL,
	weights_file TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL
)`

const timeLayout = "2006-01-02 15:04:05"

// Record is one finished training run
type Record struct {
	ID             int64
	Host           string // filled by Insert when empty
	ProgramVersion string // filled by Insert when empty
	Seed           uint64

	Width, Height int
	Samples       int

	Bias, LearningRate, TrainingThreshold float64
	StopPolicy                            int

	Steps      int
	AccumError int
	Accuracy   int // percent, -1 when not measured
	Reason     string

	WeightsFile string

	StartTime, EndTime time.Time
}

// Store is a run log backed by a SQLite file
type Store struct {
	db *sql.DB
}

// Open opens or creates the run log at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, xerrors.Errorf("open run log %s: %w", path, err)
	}
	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, xerrors.Errorf("create run log %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores r and returns its id
func (s *Store) Insert(r Record) (int64, error) {
	if r.Host == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = os.Getenv("HOSTNAME")
		}
		r.Host = hostname
	}
	if r.ProgramVersion == "" {
		r.ProgramVersion = runtime.Version()
	}
	res, err := s.db.Exec(`INSERT INTO runs (host, program_version, seed, width, height, samples,
		bias, learning_rate, training_threshold, stop_policy, steps, accum_error, accuracy, reason,
		weights_file, start_time, end_time) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Host, r.ProgramVersion, int64(r.Seed), r.Width, r.Height, r.Samples,
		r.Bias, r.LearningRate, r.TrainingThreshold, r.StopPolicy, r.Steps, r.AccumError, r.Accuracy, r.Reason,
		r.WeightsFile, r.StartTime.UTC().Format(timeLayout), r.EndTime.UTC().Format(timeLayout))
	if err != nil {
		return 0, xerrors.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// List returns all runs, oldest first
func (s *Store) List() ([]Record, error) {
	rows, err := s.db.Query(`SELECT id, host, program_version, seed, width, height, samples,
		bias, learning_rate, training_threshold, stop_policy, steps, accum_error, accuracy, reason,
		weights_file, start_time, end_time FROM runs ORDER BY id`)
	if err != nil {
		return nil, xerrors.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var seed int64
		var start, end string
		if err := rows.Scan(&r.ID, &r.Host, &r.ProgramVersion, &seed, &r.Width, &r.Height, &r.Samples,
			&r.Bias, &r.LearningRate, &r.TrainingThreshold, &r.StopPolicy, &r.Steps, &r.AccumError, &r.Accuracy, &r.Reason,
			&r.WeightsFile, &start, &end); err != nil {
			return nil, xerrors.Errorf("scan run: %w", err)
		}
		r.Seed = uint64(seed)
		if r.StartTime, err = time.Parse(timeLayout, start); err != nil {
			return nil, xerrors.Errorf("run %d start time: %w", r.ID, err)
		}
		if r.EndTime, err = time.Parse(timeLayout, end); err != nil {
			return nil, xerrors.Errorf("run %d end time: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
