package resumes

import "time"

// Resume is one uploaded-and-analyzed resume record. StorageKey points at the
// object store; the underlying file is removed once processing finishes, so
// the key may dangle.
type Resume struct {
	ID                 string              `json:"id"`
	UserID             string              `json:"userId"`
	OriginalFileName   string              `json:"originalFileName"`
	StorageKey         string              `json:"filePath"`
	JobRecommendations []JobRecommendation `json:"jobRecommendations"`
	Analysis           *Analysis           `json:"analysis"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// JobRecommendation is one suggested job from the model.
type JobRecommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills,omitempty"`
	Education   string   `json:"education,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// Analysis is the structured review of a resume.
type Analysis struct {
	Contact         Contact          `json:"contact"`
	Skills          []string         `json:"skills"`
	Education       Education        `json:"education"`
	Experience      []Experience     `json:"experience"`
	QualityScore    QualityScore     `json:"qualityScore"`
	ImprovementTips []ImprovementTip `json:"improvementTips"`
}

type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
}

type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear string `json:"graduationYear"`
	GPA            string `json:"gpa"`
}

type Experience struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// QualityScore carries the overall score and its four components. Overall is
// stored exactly as the model supplied it, never recomputed.
type QualityScore struct {
	Overall float64      `json:"overall"`
	Details ScoreDetails `json:"details"`
}

type ScoreDetails struct {
	Content    float64 `json:"content"`
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Format     float64 `json:"format"`
}

type ImprovementTip struct {
	Section    string `json:"section"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
}
