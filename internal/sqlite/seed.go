package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// seededBenchmark is a default benchmark row inserted on first attach.
// Percentiles describe the observed distribution of each metric across the
// cohort in ascending order, including metrics where lower observed values
// indicate healthier companies (churn_rate, burn_multiple).
type seededBenchmark struct {
	sector, stage, metric string
	p25, p50, p75, p90    float64
}

var defaultBenchmarks = []seededBenchmark{
	{"saas", "seed", "mrr_growth_rate", 10, 20, 35, 50},
	{"saas", "seed", "cac_ltv_ratio", 2, 3, 5, 8},
	{"saas", "seed", "churn_rate", 5, 7, 10, 15},
	{"saas", "seed", "burn_multiple", 1, 1.5, 2, 3},
}

// seedDefaultBenchmarks inserts the default benchmark rows when the
// benchmarks table is empty. A store that already holds benchmark data,
// loaded from the interchange files, is left untouched.
func seedDefaultBenchmarks(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM benchmarks`).Scan(&count); err != nil {
		return fmt.Errorf("counting benchmarks: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC().Format(timeLayout)
	for _, s := range defaultBenchmarks {
		_, err := db.Exec(`
			INSERT INTO benchmarks (sector, stage, metric_name, p25, p50, p75, p90, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.sector, s.stage, s.metric, s.p25, s.p50, s.p75, s.p90, now)
		if err != nil {
			return fmt.Errorf("seeding benchmark %s/%s/%s: %w", s.sector, s.stage, s.metric, err)
		}
	}
	return nil
}
