package repositories

import (
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
)

const (
	mysqlDuplicateKey    = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

type scanner interface {
	Scan(dest ...any) error
}

// mapError turns driver errors into domain errors for resource.
func mapError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateKey:
			return domain.ConflictError{Resource: resource, Msg: "already exists", Err: err}
		case mysqlRowIsReferenced:
			return domain.ConflictError{Resource: resource, Msg: "still referenced by other records", Err: err}
		case mysqlNoReferencedRow:
			return domain.NotFoundError{Resource: "referenced record", Err: err}
		}
	}
	return errors.Wrap(err, resource)
}

// affected maps a zero-row mutation to NotFound.
func affected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, resource)
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}
