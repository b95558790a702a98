package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/almacen-solidario/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

// isLockTimeout verifica si un error es un lock_not_available (55P03), producto
// del SET LOCAL lock_timeout de la transacción.
func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "55P03" // lock_not_available
}

// isDeadlock verifica si un error es un deadlock_detected (40P01): PostgreSQL
// abortó esta transacción como víctima para destrabar a la otra.
func isDeadlock(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40P01" // deadlock_detected
}

// translateErr mapea errores de PostgreSQL a errores de dominio; deja pasar el
// resto sin tocar. Un deadlock abortado equivale para el caller a un lock
// vencido: la tx no dejó efectos y el reintento es seguro.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case isLockTimeout(err) || isDeadlock(err):
		return domain.ErrLockTimeout
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	default:
		return err
	}
}
