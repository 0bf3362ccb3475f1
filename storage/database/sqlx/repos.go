// Package sqlxrepos provides PostgreSQL-backed repositories for all domain
// services, built on sqlx.
package sqlxrepos

import (
	"database/sql"

	"github.com/pkg/errors"
)

func notFoundOrWrap(err, notFound error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return errors.Wrap(err, msg)
}

func deleted(res sql.Result, err error, msg string) (bool, error) {
	if err != nil {
		return false, errors.Wrap(err, msg)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, msg)
	}
	return n > 0, nil
}
