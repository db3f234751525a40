// Package server exposes the tracker over JSON/HTTP. Dates cross the
// wire only in their canonical YYYY-MM-DD form.
package server

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/leettrack/internal/dateutil"
	"github.com/example/leettrack/internal/tracker"
)

// DefaultOwner is used when the server runs without authentication:
// single-user mode, one shared log.
const DefaultOwner = "local"

type Server struct {
	Tracker  *tracker.Service
	Username string
	Password string
	Log      *logrus.Logger

	// today is swappable for tests; the default snapshots the local
	// clock once per request.
	today func() dateutil.Date
}

func New(svc *tracker.Service, user, pass string, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		Tracker:  svc,
		Username: user,
		Password: pass,
		Log:      log,
		today:    func() dateutil.Date { return dateutil.Today(time.Now()) },
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/problems", s.basicAuth(s.handleListProblems))
	mux.HandleFunc("POST /api/problems", s.basicAuth(s.handleCreateProblem))
	mux.HandleFunc("PATCH /api/problems/{id}/reviews/{kind}", s.basicAuth(s.handleToggleReview))
	mux.HandleFunc("GET /api/dashboard", s.basicAuth(s.handleDashboard))

	return s.logRequests(mux)
}

func (s *Server) Start(addr string) error {
	s.Log.Infof("leettrack API listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// basicAuth guards an endpoint when credentials are configured. The
// authenticated username doubles as the owner ID, so one deployment can
// serve one account; without credentials everything maps to
// DefaultOwner.
func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="leettrack"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) ownerID(r *http.Request) string {
	if user, _, ok := r.BasicAuth(); ok && user != "" {
		return user
	}
	return DefaultOwner
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.Log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request handled")
	})
}
