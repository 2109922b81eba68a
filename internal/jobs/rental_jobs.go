package jobs

import (
	"context"
	"time"

	"bikefleet-backend/internal/logger"
)

// MarkOverdueRentals marks rentals as OVERDUE if they are past their end_date
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		// Find rentals that are past their end date and still in ACTIVE status
		query := `
			UPDATE rentals
			SET status = 'OVERDUE',
			    updated_on = NOW()
			WHERE status = 'ACTIVE'
			  AND end_date < $1
			  AND deleted_on IS NULL
			RETURNING id, pax_profile_id, bike_id, end_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var rental struct {
				ID           int
				PaxProfileID int
				BikeID       int
				EndDate      string
			}
			if err := rows.Scan(&rental.ID, &rental.PaxProfileID, &rental.BikeID, &rental.EndDate); err != nil {
				logger.Error("Failed to scan overdue rental", "error", err)
				continue
			}
			count++
			logger.Debug("Marked rental as overdue",
				"rental_id", rental.ID,
				"pax_profile_id", rental.PaxProfileID,
				"bike_id", rental.BikeID,
				"end_date", rental.EndDate)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", count)
	})
}

// ExpirePendingRentals cancels rentals that never got past payment.
// A booking left in PENDING_PAYMENT for more than 48 hours is dead
// stock holding a bike hostage.
func (jr *JobRunner) ExpirePendingRentals() {
	jr.runWithRecovery("ExpirePendingRentals", func() {
		ctx := context.Background()

		query := `
			UPDATE rentals
			SET status = 'CANCELLED',
			    end_team_id = start_team_id,
			    updated_on = NOW()
			WHERE status = 'PENDING_PAYMENT'
			  AND created_on < NOW() - INTERVAL '48 hours'
			  AND deleted_on IS NULL
			RETURNING id, bike_id
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to expire pending rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var rentalID, bikeID int
			if err := rows.Scan(&rentalID, &bikeID); err != nil {
				logger.Error("Failed to scan expired rental", "error", err)
				continue
			}
			count++
			logger.Debug("Cancelled stale pending rental", "rental_id", rentalID, "bike_id", bikeID)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired rentals", "error", err)
			return
		}

		logger.Info("Expired pending rentals", "count", count)
	})
}
