package util

import (
	"database/sql"
	"time"
)

// StringToNullString converts a string to sql.NullString; empty means NULL.
func StringToNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringToString converts a sql.NullString to a plain string.
func NullStringToString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// TimeToNullTime converts a time.Time to sql.NullTime; zero means NULL.
func TimeToNullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// TimePtrToNullTime converts a *time.Time to sql.NullTime.
func TimePtrToNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// NullTimeToTimePtr converts a sql.NullTime to a *time.Time.
func NullTimeToTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

// BoolToInt converts a bool to the NUMBER(1) representation used by the
// Oracle schema.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
