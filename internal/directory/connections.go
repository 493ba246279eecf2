package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AddConnection records that userID is connected with otherID. Connecting
// with yourself is rejected; duplicate connections are silently ignored.
func (db *DB) AddConnection(ctx context.Context, userID, otherID uuid.UUID) error {
	if userID == otherID {
		return ErrSelfConnection
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO connections (user_id, connected_user_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		userID, otherID,
	)
	if err != nil {
		return fmt.Errorf("failed to add connection: %w", err)
	}
	return nil
}

// RemoveConnection deletes a connection if it exists.
func (db *DB) RemoveConnection(ctx context.Context, userID, otherID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM connections WHERE user_id = $1 AND connected_user_id = $2`,
		userID, otherID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove connection: %w", err)
	}
	return nil
}

// GetConnections returns the ids the user is connected with, sorted for
// stable output. A user with no connections (or an unknown user) yields an
// empty slice; that is the normal case, not an error. The string signature
// satisfies the matching core's Directory contract.
func (db *DB) GetConnections(ctx context.Context, userID string) ([]string, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT connected_user_id FROM connections WHERE user_id = $1 ORDER BY connected_user_id ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch connections: %w", err)
	}
	defer rows.Close()

	connections := []string{}
	for rows.Next() {
		var connected uuid.UUID
		if err := rows.Scan(&connected); err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		connections = append(connections, connected.String())
	}
	return connections, nil
}
