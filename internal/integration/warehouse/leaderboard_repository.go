// Package warehouse reads pre-aggregated leaderboard candidates from BigQuery.
package warehouse

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/ecoimpact/backend/internal/application/adapter"
	"github.com/ecoimpact/backend/internal/domain/entity"
)

// LeaderboardCandidateRow is one row of the leaderboard candidates table.
type LeaderboardCandidateRow struct {
	UserID             string              `bigquery:"user_id"`      // REQUIRED
	DisplayName        bigquery.NullString `bigquery:"display_name"` // NULLABLE
	EcoPoints          int64               `bigquery:"eco_points"`   // REQUIRED
	TotalCO2           float64             `bigquery:"total_co2"`
	TotalSpend         float64             `bigquery:"total_spend"`
	TxCount            int64               `bigquery:"tx_count"`
	EcoScorePercentile float64             `bigquery:"eco_score_percentile"`
	Badge              bigquery.NullString `bigquery:"badge"` // NULLABLE
	UpdatedAt          time.Time           `bigquery:"updated_at"`
}

// ToEntity converts the row. A missing display name falls back to the user id.
func (r *LeaderboardCandidateRow) ToEntity() *entity.LeaderboardEntry {
	displayName := r.UserID
	if r.DisplayName.Valid && r.DisplayName.StringVal != "" {
		displayName = r.DisplayName.StringVal
	}
	var badge entity.Badge
	if r.Badge.Valid {
		badge = entity.Badge(r.Badge.StringVal)
	}
	return &entity.LeaderboardEntry{
		UserID:             r.UserID,
		DisplayName:        displayName,
		EcoPoints:          int(r.EcoPoints),
		TotalCO2:           r.TotalCO2,
		TotalSpend:         r.TotalSpend,
		TxCount:            int(r.TxCount),
		EcoScorePercentile: r.EcoScorePercentile,
		Badge:              badge,
		UpdatedAt:          r.UpdatedAt,
	}
}

// BigQueryLeaderboardRepository implements adapter.LeaderboardRepository over a BigQuery table.
type BigQueryLeaderboardRepository struct {
	client  *bigquery.Client
	dataset string
	table   string
}

var _ adapter.LeaderboardRepository = (*BigQueryLeaderboardRepository)(nil)

// NewBigQueryLeaderboardRepository creates a repository with its own client.
func NewBigQueryLeaderboardRepository(ctx context.Context, projectID, dataset, table string) (*BigQueryLeaderboardRepository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryLeaderboardRepository: creating client: %w", err)
	}
	return &BigQueryLeaderboardRepository{
		client:  client,
		dataset: dataset,
		table:   table,
	}, nil
}

// Close closes the BigQuery client connection.
func (r *BigQueryLeaderboardRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// ListCandidates returns every candidate row, best first.
func (r *BigQueryLeaderboardRepository) ListCandidates(ctx context.Context) ([]*entity.LeaderboardEntry, error) {
	q := r.client.Query(candidatesQuery(r.dataset, r.table))

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListCandidates: query read: %w", err)
	}

	var entries []*entity.LeaderboardEntry
	for {
		var row LeaderboardCandidateRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListCandidates: iter next: %w", err)
		}
		entries = append(entries, row.ToEntity())
	}

	return entries, nil
}

func candidatesQuery(dataset, table string) string {
	return fmt.Sprintf(`
		SELECT
		  user_id,
		  display_name,
		  eco_points,
		  total_co2,
		  total_spend,
		  tx_count,
		  eco_score_percentile,
		  badge,
		  updated_at
		FROM `+"`%s.%s`"+`
		ORDER BY eco_points DESC, user_id
	`, dataset, table)
}
