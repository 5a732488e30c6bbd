package models

import (
	"errors"
	"time"

	"github.com/tidwall/gjson"
)

// Defaults reported when upstream data is missing or unavailable
const (
	DefaultAPIRoutes  = 214
	DefaultAPIVersion = "v1.66.0"

	FallbackProducts       = 36
	FallbackTasksCompleted = 221
	FallbackTotalTasks     = 300
	FallbackErrorMessage   = "Using fallback data"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ErrMalformedTask is returned when the tasks array holds a null entry
var ErrMalformedTask = errors.New("malformed task entry")

// completedStatuses are the task statuses counted as done
var completedStatuses = map[string]bool{
	"complete":  true,
	"completed": true,
}

// StatsResponse is the summary returned by the stats endpoint
type StatsResponse struct {
	Products       int    `json:"products"`
	TasksCompleted int    `json:"tasksCompleted"`
	TotalTasks     int    `json:"totalTasks"`
	APIRoutes      int    `json:"apiRoutes"`
	APIVersion     string `json:"apiVersion"`
	Timestamp      string `json:"timestamp"`
	Healthy        bool   `json:"healthy"`
	Error          string `json:"error,omitempty"`
}

// TaskCounts holds the totals derived from the tasks document
type TaskCounts struct {
	Total     int
	Completed int
}

// DocsSummary holds the fields read from the docs document
type DocsSummary struct {
	Routes  int
	Version string
}

// NewStats reduces the three upstream documents into a healthy StatsResponse
func NewStats(products, tasks, docs []byte, now time.Time) (*StatsResponse, error) {
	taskCounts, err := CountTasks(tasks)
	if err != nil {
		return nil, err
	}
	summary := SummarizeDocs(docs)

	return &StatsResponse{
		Products:       CountProducts(products),
		TasksCompleted: taskCounts.Completed,
		TotalTasks:     taskCounts.Total,
		APIRoutes:      summary.Routes,
		APIVersion:     summary.Version,
		Timestamp:      FormatTimestamp(now),
		Healthy:        true,
	}, nil
}

// NewFallbackStats returns the static stats served when aggregation fails
func NewFallbackStats(now time.Time) *StatsResponse {
	return &StatsResponse{
		Products:       FallbackProducts,
		TasksCompleted: FallbackTasksCompleted,
		TotalTasks:     FallbackTotalTasks,
		APIRoutes:      DefaultAPIRoutes,
		APIVersion:     DefaultAPIVersion,
		Timestamp:      FormatTimestamp(now),
		Healthy:        false,
		Error:          FallbackErrorMessage,
	}
}

// IsFallback reports whether s is the degraded response
func (s *StatsResponse) IsFallback() bool {
	return !s.Healthy && s.Error != ""
}

// FormatTimestamp renders t in TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// CountProducts returns the number of entries when body is a JSON array, else 0
func CountProducts(body []byte) int {
	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return 0
	}
	return len(result.Array())
}

// CountTasks counts all tasks and those whose status is complete or completed.
// A body that is not an array yields zero counts.
func CountTasks(body []byte) (TaskCounts, error) {
	var counts TaskCounts

	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return counts, nil
	}

	var err error
	result.ForEach(func(_, task gjson.Result) bool {
		if task.Type == gjson.Null {
			err = ErrMalformedTask
			return false
		}

		counts.Total++
		status := task.Get("status")
		if status.Type == gjson.String && completedStatuses[status.Str] {
			counts.Completed++
		}
		return true
	})
	if err != nil {
		return TaskCounts{}, err
	}

	return counts, nil
}

// SummarizeDocs reads routes and version from the docs document. Both are
// optional; an absent or empty value falls back to the defaults.
func SummarizeDocs(body []byte) DocsSummary {
	summary := DocsSummary{
		Routes:  DefaultAPIRoutes,
		Version: DefaultAPIVersion,
	}

	docs := gjson.ParseBytes(body)
	if !docs.IsObject() {
		return summary
	}

	if routes := docs.Get("routes"); routes.IsArray() {
		if n := len(routes.Array()); n > 0 {
			summary.Routes = n
		}
	}

	if version := docs.Get("version"); version.Type == gjson.String && version.Str != "" {
		summary.Version = version.Str
	}

	return summary
}
