package models

import "time"

type DialogMode string

const (
	DialogModeCreate DialogMode = "create"
	DialogModeEdit   DialogMode = "edit"
)

// DateItem is one calendar day of a rendered range.
type DateItem struct {
	Date       time.Time
	DateString string
}
