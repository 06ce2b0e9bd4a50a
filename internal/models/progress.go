package models

// SubjectProgress is the per-subject rollup served to the dashboard:
// the highest level reached and the success rate of the attempt that
// recorded it.
type SubjectProgress struct {
	Level       int    `json:"level"`
	Progression int    `json:"progression"`
	SubjectName string `json:"subjectName"`
}

type ProgressResponse struct {
	Progressions map[string]SubjectProgress `json:"progressions"`
}
