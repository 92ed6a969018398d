package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClientFetchForStudent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/student/assessment", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    200,
			"message": "success",
			"data": FetchResponse{
				Locked: true,
				Reason: "Assessment not created yet",
			},
		})
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "tok")
	res, err := client.FetchForStudent(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Locked)
	assert.Equal(t, "Assessment not created yet", res.Reason)
}

func TestAPIClientSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/results/submit", r.URL.Path)

		var req SubmitRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Answers, 2)
		assert.Equal(t, 90, req.TimeSpent)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    201,
			"message": "created",
			"data":    Result{OverallPercentage: 50, Attempt: 1},
		})
	}))
	defer srv.Close()

	a := "A"
	client := NewAPIClient(srv.URL, "tok")
	res, err := client.Submit(context.Background(), SubmitRequest{
		Answers:   []*string{&a, nil},
		TimeSpent: 90,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, res.OverallPercentage)
	assert.Equal(t, 1, res.Attempt)
}

func TestAPIClientSubmitDuplicateSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    403,
			"message": "assessment already submitted. One attempt only",
		})
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "tok")
	_, err := client.Submit(context.Background(), SubmitRequest{Answers: []*string{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "One attempt only")
	assert.Contains(t, err.Error(), "403")
}

func TestAPIClientResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/results/my", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    200,
			"message": "success",
			"data": Result{
				OverallPercentage:  70,
				Strengths:          []string{"logical"},
				RecommendedCareers: []string{"Data Analyst"},
			},
		})
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "tok")
	res, err := client.Result(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 70, res.OverallPercentage)
	assert.Equal(t, []string{"Data Analyst"}, res.RecommendedCareers)
}
