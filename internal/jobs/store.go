package jobs

import (
	"database/sql"
	"fmt"
	"time"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ClaimRun records that a job ran on a given date. The primary key makes
// the insert a compare-and-set: false means another process already ran
// the job that day.
func (s *Store) ClaimRun(jobName string, runDate time.Time) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO job_runs (job_name, run_date) VALUES ($1, $2)
		 ON CONFLICT (job_name, run_date) DO NOTHING`,
		jobName, runDate,
	)
	if err != nil {
		return false, fmt.Errorf("claim job run: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}
