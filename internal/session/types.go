package session

import "time"

// Wire types mirroring the attempt gate's JSON surface. Correct answers
// never appear here; the read path strips them server-side.

type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
}

type Assessment struct {
	ID              uint       `json:"id"`
	BatchID         string     `json:"batchId"`
	Categories      []string   `json:"categories"`
	TimePerQuestion int        `json:"timePerQuestion"`
	Questions       []Question `json:"questions"`
}

type Slot struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type FetchResponse struct {
	Locked          bool        `json:"locked"`
	Reason          string      `json:"reason,omitempty"`
	Assessment      *Assessment `json:"assessment,omitempty"`
	TimePerQuestion int         `json:"timePerQuestion,omitempty"`
	Slot            *Slot       `json:"slot,omitempty"`
	ServerTime      *time.Time  `json:"serverTime,omitempty"`
}

type SubmitRequest struct {
	Answers   []*string `json:"answers"`
	TimeSpent int       `json:"timeSpent"`
}

type CategoryScore struct {
	Category   string `json:"category"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

type Weakness struct {
	Category        string   `json:"category"`
	Reason          string   `json:"reason"`
	ImprovementTips []string `json:"improvementTips"`
}

type Result struct {
	ID                     string          `json:"id"`
	StudentID              uint            `json:"studentId"`
	BatchID                string          `json:"batchId"`
	AssessmentID           uint            `json:"assessmentId"`
	CategoryScores         []CategoryScore `json:"categoryScores"`
	TotalCorrect           int             `json:"totalCorrect"`
	TotalQuestions         int             `json:"totalQuestions"`
	OverallPercentage      int             `json:"overallPercentage"`
	Strengths              []string        `json:"strengths"`
	Weaknesses             []Weakness      `json:"weaknesses"`
	Explanations           []string        `json:"explanations"`
	ImprovementSuggestions []string        `json:"improvementSuggestions"`
	RecommendedCareers     []string        `json:"recommendedCareers"`
	TimeSpent              int             `json:"timeSpent"`
	Attempt                int             `json:"attempt"`
	IsLocked               bool            `json:"isLocked"`
}
