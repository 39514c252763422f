package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageDisplay(t *testing.T) {
	assert.Equal(t, "C++", LanguageCPP.Display())
	assert.Equal(t, "Java", LanguageJava.Display())
	assert.Equal(t, "JavaScript", LanguageJavaScript.Display())
	assert.Equal(t, "rust", Language("rust").Display())
}

func TestLanguageValid(t *testing.T) {
	for _, lang := range Languages {
		assert.True(t, lang.Valid(), "%s", lang)
	}
	assert.False(t, Language("rust").Valid())
	assert.False(t, Language("").Valid())
}

func TestProblemStarterFor(t *testing.T) {
	p := &Problem{
		StartCode: []StarterCode{
			{Language: "C++", InitialCode: "int main() {}"},
			{Language: "Java", InitialCode: "class Solution {}"},
		},
	}

	code, ok := p.StarterFor(LanguageCPP)
	require.True(t, ok)
	assert.Equal(t, "int main() {}", code)

	_, ok = p.StarterFor(LanguageJavaScript)
	assert.False(t, ok)
}

func TestProblemTemplates(t *testing.T) {
	p := &Problem{
		StartCode: []StarterCode{
			{Language: "C++", InitialCode: "cpp"},
			{Language: "JavaScript", InitialCode: "js"},
		},
	}

	tmpls := p.Templates()

	assert.Equal(t, map[Language]string{
		LanguageCPP:        "cpp",
		LanguageJavaScript: "js",
	}, tmpls)
}

func TestTestCaseResultPassed(t *testing.T) {
	assert.True(t, TestCaseResult{StatusID: StatusAccepted}.Passed())
	assert.False(t, TestCaseResult{StatusID: 4}.Passed())
}

func TestProblemFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/problem/problemById/abc123", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(Problem{
			ID:         "abc123",
			Title:      "Two Sum",
			Difficulty: "easy",
			StartCode:  []StarterCode{{Language: "C++", InitialCode: "int main() {}"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	p, err := c.Problem(context.Background(), "abc123")

	require.NoError(t, err)
	assert.Equal(t, "abc123", p.ID)
	assert.Equal(t, "Two Sum", p.Title)
}

func TestProblemsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/problem/getAllProblem", r.URL.Path)
		json.NewEncoder(w).Encode([]Problem{{ID: "a"}, {ID: "b"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	ps, err := c.Problems(context.Background())

	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "a", ps[0].ID)
}

func TestRunPostsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/submission/run/p1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req RunRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "code here", req.Code)
		assert.Equal(t, LanguageJava, req.Language)

		json.NewEncoder(w).Encode(RunResult{
			Success:   true,
			TestCases: []TestCaseResult{{StatusID: StatusAccepted, Stdout: "42"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Run(context.Background(), "p1", RunRequest{Code: "code here", Language: LanguageJava})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Nil(t, res.CustomResult, "no custom input means no custom result")
}

func TestRunWithCustomInputLiftsFirstCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req RunRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "5 7\n", req.CustomInput)

		json.NewEncoder(w).Encode(RunResult{
			Success:   true,
			TestCases: []TestCaseResult{{Stdin: "5 7\n", Stdout: "12", StatusID: StatusAccepted}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Run(context.Background(), "p1", RunRequest{
		Code:        "code",
		Language:    LanguageCPP,
		CustomInput: "5 7\n",
	})

	require.NoError(t, err)
	require.NotNil(t, res.CustomResult)
	assert.Equal(t, "12", res.CustomResult.Stdout)
}

func TestSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submission/submit/p1", r.URL.Path)
		json.NewEncoder(w).Encode(SubmissionResult{
			Accepted:        true,
			PassedTestCases: 10,
			TotalTestCases:  10,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.Submit(context.Background(), "p1", SubmitRequest{Code: "code", Language: LanguageCPP})

	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, 10, res.PassedTestCases)
}

func TestContestByID(t *testing.T) {
	start := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contest/fetchById/c1", r.URL.Path)
		json.NewEncoder(w).Encode(ContestDetail{
			Contest: Contest{
				ID:       "c1",
				Title:    "Weekly 42",
				Problems: []Problem{{ID: "p1"}},
			},
			Participant: &Participant{StartTime: &start},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	detail, err := c.ContestByID(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, "Weekly 42", detail.Contest.Title)
	require.NotNil(t, detail.Participant)
	require.NotNil(t, detail.Participant.StartTime)
	assert.True(t, detail.Participant.StartTime.Equal(start))
}

func TestContestSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contest/submit/p1", r.URL.Path)
		var req ContestSubmitRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "c1", req.ContestID)
		json.NewEncoder(w).Encode(SubmissionResult{Accepted: false, PassedTestCases: 3, TotalTestCases: 5})
	}))
	defer srv.Close()

	c := New(srv.URL)
	res, err := c.ContestSubmit(context.Background(), "p1", ContestSubmitRequest{
		Code: "code", Language: LanguageCPP, ContestID: "c1",
	})

	require.NoError(t, err)
	assert.False(t, res.Accepted)
}

func TestStartAndEndContest(t *testing.T) {
	var paths []string
	var endBody map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/contest/c1/end" {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&endBody))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.StartContest(context.Background(), "c1"))
	require.NoError(t, c.EndContest(context.Background(), "c1", 754))

	assert.Equal(t, []string{"/contest/c1/start", "/contest/c1/end"}, paths)
	assert.Equal(t, 754, endBody["timeTaken"])
}

func TestErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Please login first"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Problems(context.Background())

	require.Error(t, err)
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Please login first", apiErr.Message)
	assert.Equal(t, "Please login first", apiErr.UserMessage())
}

func TestErrorMessageFieldFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "something broke"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Problems(context.Background())

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "something broke", apiErr.Message)
}

func TestErrorEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Problems(context.Background())

	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Internal server error", apiErr.UserMessage())
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]Problem{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Problems(context.Background())
	require.NoError(t, err)
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := New(srv.URL)
	_, err := c.Problems(ctx)
	assert.Error(t, err)
}
