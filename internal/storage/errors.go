package storage

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"tenant-ledger/internal/apperrors"
)

var (
	ErrDatabase      apperrors.Error = apperrors.New("database error").WithTitle("Database Error")
	ErrNotFound      apperrors.Error = ErrDatabase.New("record not found")
	ErrAlreadyExists apperrors.Error = ErrDatabase.New("record already exists")
	ErrInvalidInput  apperrors.Error = ErrDatabase.New("invalid input")
	ErrForeignKey    apperrors.Error = ErrInvalidInput.New("referenced record does not exist")
	ErrMigration     apperrors.Error = ErrDatabase.New("schema migration failed")
)

// translate maps driver errors onto the storage sentinels. what names the
// record kind for the not-found message.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound.Msg(what + " not found")
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return ErrForeignKey.Err(err)
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrAlreadyExists.Err(err)
		}
	}
	return ErrDatabase.Err(err)
}
