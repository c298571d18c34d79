package view

import (
	"fmt"
	"strings"

	"taskcal/internal/storage"
)

// ModeKey is the storage key holding the display mode.
const ModeKey = "viewMode"

type Mode string

const (
	ModeList     Mode = "list"
	ModeCalendar Mode = "calendar"
)

// ParseMode accepts only the exact stored spellings, case-insensitively.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeList, ModeCalendar:
		return m, true
	}
	return "", false
}

func (m Mode) Toggle() Mode {
	if m == ModeCalendar {
		return ModeList
	}
	return ModeCalendar
}

// LoadMode restores the display mode, falling back to ModeList when the key
// is absent or holds anything else.
func LoadMode(kv storage.Store) (Mode, error) {
	raw, ok, err := kv.Get(ModeKey)
	if err != nil {
		return ModeList, fmt.Errorf("read view mode: %w", err)
	}
	if !ok {
		return ModeList, nil
	}
	if m, valid := ParseMode(raw); valid && raw == string(m) {
		return m, nil
	}
	return ModeList, nil
}

func SaveMode(kv storage.Store, m Mode) error {
	if err := kv.Set(ModeKey, string(m)); err != nil {
		return fmt.Errorf("write view mode: %w", err)
	}
	return nil
}
