package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches the given key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert collides with an existing key.
	ErrDuplicate = errors.New("duplicate record")
)

// translateError maps driver and gorm errors onto the package sentinels. The
// gorm handle is opened with TranslateError, the string checks cover drivers
// that do not implement the translator.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	msg := err.Error()
	if strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}

// withUpdatedAt copies updates and stamps updated_at unless the caller set it.
func withUpdatedAt(updates map[string]any) map[string]any {
	values := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		values[k] = v
	}
	if _, ok := values["updated_at"]; !ok {
		values["updated_at"] = time.Now()
	}
	return values
}

// updateByKey applies updates to the rows matching column = key and reports
// ErrNotFound when none matched.
func updateByKey(tx *gorm.DB, model any, column, key string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := tx.Model(model).Where(column+" = ?", key).Updates(updates)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
