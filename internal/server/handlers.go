package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/leettrack/internal/dashboard"
	"github.com/example/leettrack/internal/dateutil"
	"github.com/example/leettrack/internal/model"
	"github.com/example/leettrack/internal/problemurl"
	"github.com/example/leettrack/internal/tracker"
)

// Wire shapes. CompletedOn is a *string so an open review serializes as
// null rather than "".
type problemPayload struct {
	ID      string          `json:"id"`
	URL     string          `json:"url"`
	Slug    string          `json:"slug"`
	Title   string          `json:"title"`
	AddedOn string          `json:"addedOn"`
	Reviews []reviewPayload `json:"reviews"`
}

type reviewPayload struct {
	Kind        string  `json:"kind"`
	Label       string  `json:"label"`
	DueOn       string  `json:"dueOn"`
	CompletedOn *string `json:"completedOn"`
	Status      string  `json:"status"`
}

type reviewRefPayload struct {
	ItemID      string  `json:"itemId"`
	ItemTitle   string  `json:"itemTitle"`
	ItemURL     string  `json:"itemUrl"`
	AddedOn     string  `json:"addedOn"`
	Kind        string  `json:"kind"`
	Label       string  `json:"label"`
	DueOn       string  `json:"dueOn"`
	CompletedOn *string `json:"completedOn"`
	Status      string  `json:"status"`
}

type todayGroupPayload struct {
	Kind  string             `json:"kind"`
	Label string             `json:"label"`
	Items []reviewRefPayload `json:"items"`
}

type statsPayload struct {
	TodaysDueCount      int `json:"todaysDueCount"`
	CompletedTodayCount int `json:"completedTodayCount"`
	PendingCount        int `json:"pendingCount"`
	UpcomingWeekCount   int `json:"upcomingWeekCount"`
	TotalReviews        int `json:"totalReviews"`
	TotalCompleted      int `json:"totalCompleted"`
	CompletionRate      int `json:"completionRate"`
	RecentCompletions   int `json:"recentCompletions"`
	CurrentStreak       int `json:"currentStreak"`
}

type timelineDayPayload struct {
	Date      string `json:"date"`
	Due       int    `json:"due"`
	Completed int    `json:"completed"`
}

type cadenceProgressPayload struct {
	Kind      string `json:"kind"`
	Label     string `json:"label"`
	Completed int    `json:"completed"`
	Remaining int    `json:"remaining"`
	Progress  int    `json:"progress"`
}

type dashboardPayload struct {
	Today          string                   `json:"today"`
	Pending        []reviewRefPayload       `json:"pending"`
	Upcoming       []reviewRefPayload       `json:"upcoming"`
	TodayGroups    []todayGroupPayload      `json:"todayGroups"`
	Stats          statsPayload             `json:"stats"`
	Timeline       []timelineDayPayload     `json:"timeline"`
	CadenceSummary []cadenceProgressPayload `json:"cadenceSummary"`
}

type createProblemRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListProblems(w http.ResponseWriter, r *http.Request) {
	today := s.today()
	items, err := s.Tracker.List(r.Context(), s.ownerID(r))
	if err != nil {
		s.serveError(w, err)
		return
	}
	out := make([]problemPayload, 0, len(items))
	for _, item := range items {
		out = append(out, toProblemPayload(item, today))
	}
	writeData(w, http.StatusOK, out)
}

func (s *Server) handleCreateProblem(w http.ResponseWriter, r *http.Request) {
	var req createProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body must be JSON with a url field")
		return
	}
	today := s.today()
	item, err := s.Tracker.Create(r.Context(), s.ownerID(r), req.URL, today)
	if err != nil {
		s.serveError(w, err)
		return
	}
	writeData(w, http.StatusCreated, toProblemPayload(item, today))
}

func (s *Server) handleToggleReview(w http.ResponseWriter, r *http.Request) {
	kind := model.Cadence(r.PathValue("kind"))
	if !kind.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid_review", "unknown review kind: "+r.PathValue("kind"))
		return
	}
	today := s.today()
	item, err := s.Tracker.Toggle(r.Context(), s.ownerID(r), r.PathValue("id"), kind, today)
	if err != nil {
		s.serveError(w, err)
		return
	}
	writeData(w, http.StatusOK, toProblemPayload(item, today))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	today := s.today()
	snap, err := s.Tracker.Snapshot(r.Context(), s.ownerID(r), today)
	if err != nil {
		s.serveError(w, err)
		return
	}
	writeData(w, http.StatusOK, toDashboardPayload(snap, today))
}

// serveError maps domain errors onto wire codes. Anything unmapped is a
// 500 and gets logged; the mapped cases are expected client mistakes
// and stay at debug level.
func (s *Server) serveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, problemurl.ErrInvalidURL),
		errors.Is(err, problemurl.ErrNoProblemSegment),
		errors.Is(err, problemurl.ErrEmptySlug):
		writeError(w, http.StatusBadRequest, "invalid_url", err.Error())
	case errors.Is(err, tracker.ErrAlreadyTracked):
		writeError(w, http.StatusConflict, "duplicate", "this problem is already being tracked")
	case errors.Is(err, tracker.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "not_found", "no tracked problem with that id")
	case errors.Is(err, model.ErrCheckpointNotFound):
		writeError(w, http.StatusBadRequest, "invalid_review", err.Error())
	case errors.Is(err, model.ErrTooEarly):
		writeError(w, http.StatusBadRequest, "too_early", "this review is not due yet")
	default:
		s.Log.WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func toProblemPayload(item model.TrackedItem, today dateutil.Date) problemPayload {
	out := problemPayload{
		ID:      item.ID,
		URL:     item.URL,
		Slug:    item.Slug,
		Title:   item.Title,
		AddedOn: item.AddedOn.Format(),
		Reviews: make([]reviewPayload, 0, len(item.Checkpoints)),
	}
	for _, cp := range item.Checkpoints {
		out.Reviews = append(out.Reviews, reviewPayload{
			Kind:        string(cp.Kind),
			Label:       cp.Label,
			DueOn:       cp.DueOn.Format(),
			CompletedOn: optionalDate(cp.CompletedOn),
			Status:      string(cp.StatusOn(today)),
		})
	}
	return out
}

func toReviewRefPayload(ref dashboard.ReviewRef, today dateutil.Date) reviewRefPayload {
	cp := ref.Checkpoint
	return reviewRefPayload{
		ItemID:      ref.ItemID,
		ItemTitle:   ref.ItemTitle,
		ItemURL:     ref.ItemURL,
		AddedOn:     ref.AddedOn.Format(),
		Kind:        string(cp.Kind),
		Label:       cp.Label,
		DueOn:       cp.DueOn.Format(),
		CompletedOn: optionalDate(cp.CompletedOn),
		Status:      string(cp.StatusOn(today)),
	}
}

func toDashboardPayload(snap dashboard.Snapshot, today dateutil.Date) dashboardPayload {
	out := dashboardPayload{
		Today:          snap.Today.Format(),
		Pending:        make([]reviewRefPayload, 0, len(snap.Pending)),
		Upcoming:       make([]reviewRefPayload, 0, len(snap.Upcoming)),
		TodayGroups:    make([]todayGroupPayload, 0, len(snap.TodayGroups)),
		Timeline:       make([]timelineDayPayload, 0, len(snap.Timeline)),
		CadenceSummary: make([]cadenceProgressPayload, 0, len(snap.CadenceSummary)),
		Stats: statsPayload{
			TodaysDueCount:      snap.Stats.TodaysDueCount,
			CompletedTodayCount: snap.Stats.CompletedTodayCount,
			PendingCount:        snap.Stats.PendingCount,
			UpcomingWeekCount:   snap.Stats.UpcomingWeekCount,
			TotalReviews:        snap.Stats.TotalReviews,
			TotalCompleted:      snap.Stats.TotalCompleted,
			CompletionRate:      snap.Stats.CompletionRate,
			RecentCompletions:   snap.Stats.RecentCompletions,
			CurrentStreak:       snap.Stats.CurrentStreak,
		},
	}
	for _, ref := range snap.Pending {
		out.Pending = append(out.Pending, toReviewRefPayload(ref, today))
	}
	for _, ref := range snap.Upcoming {
		out.Upcoming = append(out.Upcoming, toReviewRefPayload(ref, today))
	}
	for _, group := range snap.TodayGroups {
		gp := todayGroupPayload{
			Kind:  string(group.Kind),
			Label: group.Label,
			Items: make([]reviewRefPayload, 0, len(group.Items)),
		}
		for _, ref := range group.Items {
			gp.Items = append(gp.Items, toReviewRefPayload(ref, today))
		}
		out.TodayGroups = append(out.TodayGroups, gp)
	}
	for _, day := range snap.Timeline {
		out.Timeline = append(out.Timeline, timelineDayPayload{
			Date:      day.Date.Format(),
			Due:       day.Due,
			Completed: day.Completed,
		})
	}
	for _, cad := range snap.CadenceSummary {
		out.CadenceSummary = append(out.CadenceSummary, cadenceProgressPayload{
			Kind:      string(cad.Kind),
			Label:     cad.Label,
			Completed: cad.Completed,
			Remaining: cad.Remaining,
			Progress:  cad.Progress,
		})
	}
	return out
}

func optionalDate(d dateutil.Date) *string {
	if d.IsZero() {
		return nil
	}
	s := d.Format()
	return &s
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
