package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported type for JSON column")
	}
}

// StringList is a []string stored as a JSON column.
type StringList []string

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// QuestionList is the ordered question bank stored as a JSON column.
type QuestionList []Question

func (l *QuestionList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func (l QuestionList) Value() (driver.Value, error) {
	if l == nil {
		l = QuestionList{}
	}
	return json.Marshal(l)
}

// CategoryScoreList is the per-category score breakdown stored as JSON.
type CategoryScoreList []CategoryScore

func (l *CategoryScoreList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func (l CategoryScoreList) Value() (driver.Value, error) {
	if l == nil {
		l = CategoryScoreList{}
	}
	return json.Marshal(l)
}

// WeaknessList is the weakness breakdown stored as JSON.
type WeaknessList []Weakness

func (l *WeaknessList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func (l WeaknessList) Value() (driver.Value, error) {
	if l == nil {
		l = WeaknessList{}
	}
	return json.Marshal(l)
}
