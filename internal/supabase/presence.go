package supabase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
)

// Presence rows are created implicitly on the first write for a user and
// never deleted.

func (d *DatabaseClient) MarkOnline(userID uuid.UUID) (*models.UserStatus, error) {
	status, err := d.scanStatus(d.db.QueryRow(`
		INSERT INTO user_status (user_id, is_online, last_heartbeat)
		VALUES ($1, TRUE, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET is_online = TRUE, last_heartbeat = NOW()
		RETURNING user_id, is_online, last_seen, last_heartbeat
	`, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to mark online: %w", err)
	}
	return status, nil
}

func (d *DatabaseClient) MarkOffline(userID uuid.UUID) (*models.UserStatus, error) {
	status, err := d.scanStatus(d.db.QueryRow(`
		INSERT INTO user_status (user_id, is_online, last_seen, last_heartbeat)
		VALUES ($1, FALSE, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET is_online = FALSE, last_seen = NOW()
		RETURNING user_id, is_online, last_seen, last_heartbeat
	`, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to mark offline: %w", err)
	}
	return status, nil
}

func (d *DatabaseClient) Heartbeat(userID uuid.UUID) error {
	_, err := d.db.Exec(`
		INSERT INTO user_status (user_id, is_online, last_heartbeat)
		VALUES ($1, TRUE, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET is_online = TRUE, last_heartbeat = NOW()
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetUserStatus(userID uuid.UUID) (*models.UserStatus, error) {
	status, err := d.scanStatus(d.db.QueryRow(`
		SELECT user_id, is_online, last_seen, last_heartbeat
		FROM user_status
		WHERE user_id = $1
	`, userID))
	if err != nil {
		return nil, err
	}
	return status, nil
}

// SweepStaleSessions flips users whose last heartbeat is older than cutoff
// to offline and returns their ids. last_seen is stamped with the heartbeat
// time, the best estimate of when the session actually went away.
func (d *DatabaseClient) SweepStaleSessions(cutoff time.Time) ([]uuid.UUID, error) {
	rows, err := d.db.Query(`
		UPDATE user_status
		SET is_online = FALSE, last_seen = last_heartbeat
		WHERE is_online = TRUE AND last_heartbeat < $1
		RETURNING user_id
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to sweep stale sessions: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan swept user: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (d *DatabaseClient) scanStatus(row rowScanner) (*models.UserStatus, error) {
	var status models.UserStatus
	err := row.Scan(&status.UserID, &status.IsOnline, &status.LastSeen, &status.LastHeartbeat)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
