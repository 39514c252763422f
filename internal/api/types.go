package api

import "time"

// Language identifies a submission language supported by the backend.
type Language string

const (
	LanguageCPP        Language = "cpp"
	LanguageJava       Language = "java"
	LanguageJavaScript Language = "javascript"
)

// Languages lists every supported language in display order.
var Languages = []Language{LanguageCPP, LanguageJava, LanguageJavaScript}

// Display returns the backend's display name for the language. Starter
// templates in problem payloads are keyed by this name, not the enum value.
func (l Language) Display() string {
	switch l {
	case LanguageCPP:
		return "C++"
	case LanguageJava:
		return "Java"
	case LanguageJavaScript:
		return "JavaScript"
	default:
		return string(l)
	}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	switch l {
	case LanguageCPP, LanguageJava, LanguageJavaScript:
		return true
	}
	return false
}

// StarterCode is a per-language starter template attached to a problem.
type StarterCode struct {
	Language    string `json:"language"`
	InitialCode string `json:"initialCode"`
}

// VisibleTestCase is an example test case shown in the problem description.
type VisibleTestCase struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// ReferenceSolution is a complete solution revealed after solving.
type ReferenceSolution struct {
	Language     string `json:"language"`
	CompleteCode string `json:"completeCode"`
}

// Problem is the problem detail payload from GET /problem/problemById/{id}.
type Problem struct {
	ID                string              `json:"_id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Difficulty        string              `json:"difficulty"`
	Tags              []string            `json:"tags"`
	StartCode         []StarterCode       `json:"startCode"`
	VisibleTestCases  []VisibleTestCase   `json:"visibleTestCases"`
	ReferenceSolution []ReferenceSolution `json:"referenceSolution,omitempty"`
	StudyMaterial     string              `json:"studyMaterial,omitempty"`
}

// StarterFor returns the starter template for the given language.
// The bool is false when the backend provided no template for it.
func (p *Problem) StarterFor(lang Language) (string, bool) {
	display := lang.Display()
	for _, sc := range p.StartCode {
		if sc.Language == display {
			return sc.InitialCode, true
		}
	}
	return "", false
}

// Templates returns every starter template keyed by language enum value.
// Languages without a template are omitted.
func (p *Problem) Templates() map[Language]string {
	out := make(map[Language]string, len(Languages))
	for _, lang := range Languages {
		if code, ok := p.StarterFor(lang); ok {
			out[lang] = code
		}
	}
	return out
}

// StatusAccepted is the per-test-case status code for a passing case.
const StatusAccepted = 3

// TestCaseResult is one executed test case inside a run result.
type TestCaseResult struct {
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
	Stdout         string `json:"stdout"`
	StatusID       int    `json:"status_id"`
}

// Passed reports whether this test case was accepted.
func (t TestCaseResult) Passed() bool {
	return t.StatusID == StatusAccepted
}

// RunResult is the response to POST /submission/run/{problemId}.
type RunResult struct {
	Success   bool             `json:"success"`
	TestCases []TestCaseResult `json:"testCases,omitempty"`
	Runtime   float64          `json:"runtime,omitempty"`
	Memory    int              `json:"memory,omitempty"`
	Error     string           `json:"error,omitempty"`

	// CustomResult holds the first test case when the run used custom
	// stdin, so the UI can surface it separately.
	CustomResult *TestCaseResult `json:"-"`
}

// SubmissionResult is the response to a submit (problem or contest mode).
type SubmissionResult struct {
	Accepted        bool    `json:"accepted"`
	PassedTestCases int     `json:"passedTestCases"`
	TotalTestCases  int     `json:"totalTestCases"`
	Runtime         float64 `json:"runtime"`
	Memory          int     `json:"memory"`
	Error           string  `json:"error,omitempty"`
}

// Contest is the contest payload inside GET /contest/fetchById/{id}.
type Contest struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Problems    []Problem `json:"problems"`
}

// Participant carries the caller's participation timestamps for a contest.
// StartTime is nil until the participant starts; EndTime is nil until they
// leave or the contest is closed out for them.
type Participant struct {
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	TimeTaken int        `json:"timeTaken,omitempty"`
}

// ContestDetail is the full response to GET /contest/fetchById/{id}.
type ContestDetail struct {
	Contest     Contest      `json:"contest"`
	Participant *Participant `json:"participantData,omitempty"`
}

// RunRequest is the body for POST /submission/run/{problemId}.
type RunRequest struct {
	Code        string   `json:"code"`
	Language    Language `json:"language"`
	CustomInput string   `json:"customInput,omitempty"`
}

// SubmitRequest is the body for POST /submission/submit/{problemId}.
type SubmitRequest struct {
	Code     string   `json:"code"`
	Language Language `json:"language"`
}

// ContestSubmitRequest is the body for POST /contest/submit/{problemId}.
type ContestSubmitRequest struct {
	Code      string   `json:"code"`
	Language  Language `json:"language"`
	ContestID string   `json:"contestId"`
}
