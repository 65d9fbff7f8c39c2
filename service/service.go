// Package service holds one service per entity family. Each service issues
// parameterized SQL against the shared handle it is given and raises the most
// specific domain error at the point of failure.
package service

import (
	"database/sql"
	"fmt"
)

// affected returns the number of rows matched by a write.
func affected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
