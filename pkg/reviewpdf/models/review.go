// Package models defines data structures for review document generation.
package models

// ReviewRow represents one row of the review export.
type ReviewRow struct {
	// Line is the source row number (1-based, header is line 1).
	Line int `json:"line"`
	// Reviewee is the name of the person being reviewed.
	Reviewee string `json:"reviewee"`
	// Cycle is the review cycle name.
	Cycle string `json:"cycle"`
	// Team is the reviewee's team.
	Team string `json:"team"`
	// Position is the reviewee's position.
	Position string `json:"position"`
	// Reviewer is the name of the person who wrote the response.
	Reviewer string `json:"reviewer"`
	// Comment is the response body, possibly carrying restricted HTML markup.
	Comment string `json:"comment"`
	// FeedbackType is the export's feedback type code (optional column).
	FeedbackType string `json:"feedback_type,omitempty"`
	// Question is the question the response answers (optional column).
	Question string `json:"question,omitempty"`
	// QuestionDescription is the question's help text (optional column).
	QuestionDescription string `json:"question_description,omitempty"`
	// LaunchDate is the review cycle launch date, YYYY-MM-DD when it could be parsed (optional column).
	LaunchDate string `json:"launch_date,omitempty"`
}

// Key returns the grouping key of the row.
func (r ReviewRow) Key() GroupKey {
	return GroupKey{
		Reviewee: r.Reviewee,
		Cycle:    r.Cycle,
		Team:     r.Team,
		Position: r.Position,
		Reviewer: r.Reviewer,
	}
}
