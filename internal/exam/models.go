package exam

// Subject identifies the exam subject a question or preset belongs to.
// The set is open; the two below are the subjects shipped in the catalog.
type Subject string

const (
	SubjectGeography Subject = "geografie"
	SubjectHistory   Subject = "istorie"
)

// Kind selects the scoring rule applied to a question.
type Kind string

const (
	KindSingle   Kind = "single"
	KindMultiple Kind = "multiple"
	KindShort    Kind = "short"
)

// Mode is the kind of session a result was produced by.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeExam     Mode = "exam"
)

type Choice struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Question is a graded unit of assessment. JSON field names match the
// stored catalog and result documents, so they must not change.
type Question struct {
	ID                 string   `json:"id" yaml:"id"`
	Subject            Subject  `json:"subject" yaml:"subject"`
	Topics             []string `json:"topics" yaml:"topics"`
	Kind               Kind     `json:"kind" yaml:"kind"`
	Stem               string   `json:"stem" yaml:"stem"`
	Choices            []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
	CorrectChoiceIDs   []string `json:"correctChoiceIds,omitempty" yaml:"correctChoiceIds,omitempty"`
	CorrectShortAnswer []string `json:"correctShortAnswer,omitempty" yaml:"correctShortAnswer,omitempty"`
	Explanation        string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	RefTopicID         string   `json:"refTopicId,omitempty" yaml:"refTopicId,omitempty"`
	Difficulty         int      `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Points             *float64 `json:"points,omitempty" yaml:"points,omitempty"`
}

// Weight returns the question's points, defaulting to 1 when unset.
func (q Question) Weight() float64 {
	if q.Points == nil {
		return 1
	}
	return *q.Points
}

// Answer is a learner's response. Choice kinds read ChoiceIDs, the short
// kind reads Text; the other field is ignored.
type Answer struct {
	ChoiceIDs []string `json:"choiceIds,omitempty" yaml:"choiceIds,omitempty"`
	Text      string   `json:"text,omitempty" yaml:"text,omitempty"`
}

type Topic struct {
	ID            string   `json:"id" yaml:"id"`
	Subject       Subject  `json:"subject" yaml:"subject"`
	Title         string   `json:"title" yaml:"title"`
	Summary       string   `json:"summary" yaml:"summary"`
	ContentMDPath string   `json:"contentMdPath" yaml:"contentMdPath"`
	Tags          []string `json:"tags" yaml:"tags"`
}

// Preset is an authored exam: either a list of catalog question ids or a
// structured blueprint.
type Preset struct {
	ID              string     `json:"id" yaml:"id"`
	Subject         Subject    `json:"subject" yaml:"subject"`
	Title           string     `json:"title" yaml:"title"`
	DurationMinutes int        `json:"durationMinutes" yaml:"durationMinutes"`
	QuestionIDs     []string   `json:"questionIds" yaml:"questionIds"`
	Year            int        `json:"year,omitempty" yaml:"year,omitempty"`
	Source          string     `json:"source,omitempty" yaml:"source,omitempty"`
	Profile         string     `json:"profile,omitempty" yaml:"profile,omitempty"`
	Structure       *Blueprint `json:"structure,omitempty" yaml:"structure,omitempty"`
}

// Blueprint is the nested structure of a graded exam. Up to three sections.
type Blueprint struct {
	Subject1 *Section `json:"subject1,omitempty" yaml:"subject1,omitempty"`
	Subject2 *Section `json:"subject2,omitempty" yaml:"subject2,omitempty"`
	Subject3 *Section `json:"subject3,omitempty" yaml:"subject3,omitempty"`
}

type Section struct {
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	MapImage    string    `json:"mapImage,omitempty" yaml:"mapImage,omitempty"`
	Notes       []string  `json:"notes,omitempty" yaml:"notes,omitempty"`
	Segments    []Segment `json:"segments" yaml:"segments"`
}

type Segment struct {
	Label       string   `json:"label" yaml:"label"`
	Prompt      string   `json:"prompt" yaml:"prompt"`
	Items       []Item   `json:"items" yaml:"items"`
	Notes       []string `json:"notes,omitempty" yaml:"notes,omitempty"`
	SectionType string   `json:"sectionType,omitempty" yaml:"sectionType,omitempty"`
}

// Item is one prompt inside a segment. Options make it an implicit
// single-choice question; without CorrectIndex it is not auto-gradable.
type Item struct {
	Text         string   `json:"text" yaml:"text"`
	Points       *float64 `json:"points,omitempty" yaml:"points,omitempty"`
	Options      []string `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectIndex *int     `json:"correctIndex,omitempty" yaml:"correctIndex,omitempty"`
}

// TopicScore is the per-topic accumulation of earned and possible points.
type TopicScore struct {
	Correct float64 `json:"correct"`
	Total   float64 `json:"total"`
}

// SessionResult is the immutable outcome of a submitted session.
// Timestamps are unix milliseconds. ExamBlueprint is kept for sessions
// started from a blueprint so their questions can be rebuilt without a
// preset.
type SessionResult struct {
	ID             string                `json:"id"`
	LearnerID      string                `json:"learnerId,omitempty"`
	Mode           Mode                  `json:"mode"`
	Subject        Subject               `json:"subject"`
	StartedAt      int64                 `json:"startedAt"`
	FinishedAt     int64                 `json:"finishedAt,omitempty"`
	Answers        map[string]Answer     `json:"answers"`
	Score          float64               `json:"score"`
	MaxScore       float64               `json:"maxScore"`
	AchievedScore  float64               `json:"achievedScore"`
	TopicBreakdown map[string]TopicScore `json:"topicBreakdown"`
	QuestionIDs    []string              `json:"questionIds,omitempty"`
	ExamPresetID   string                `json:"examPresetId,omitempty"`
	ExamBlueprint  *Blueprint            `json:"examBlueprint,omitempty"`
}
