package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/user"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/http/handlers"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/http/metrics"
	httpmw "github.com/fadeyibigbolahan/mbjobs-backend/internal/http/middleware"
)

type RouterDependencies struct {
	JobHandler         *handlers.JobHandler
	ApplicationHandler *handlers.ApplicationHandler
	HireHandler        *handlers.HireHandler
	EmploymentHandler  *handlers.EmploymentHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	RequestTimeout     time.Duration
	ApplyLimiter       httpmw.Limiter
	ApplyLimit         int
	ApplyWindow        time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && segmentCount(path) == 2:
			r.deps.JobHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/jobs") || strings.HasPrefix(path, "/employers") || strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/hires") || strings.HasPrefix(path, "/employments") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/jobs":
		httpmw.RequireRole(user.RoleApprentice)(http.HandlerFunc(r.deps.JobHandler.ListOpen)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/jobs":
		httpmw.RequireRole(user.RoleEmployer)(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/") && segmentCount(path) == 2:
		httpmw.RequireRole(user.RoleEmployer)(http.HandlerFunc(r.deps.JobHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/jobs/") && segmentCount(path) == 2:
		httpmw.RequireRole(user.RoleEmployer)(http.HandlerFunc(r.deps.JobHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/employers/jobs":
		httpmw.RequireRole(user.RoleEmployer)(http.HandlerFunc(r.deps.JobHandler.ListByEmployer)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/applications"):
		httpmw.RequireRole(user.RoleEmployer)(http.HandlerFunc(r.deps.ApplicationHandler.ListByJob)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/apply"):
		apply := httpmw.RateLimit(r.deps.ApplyLimiter, httpmw.ClientIP, r.deps.ApplyLimit, r.deps.ApplyWindow)(http.HandlerFunc(r.deps.ApplicationHandler.Apply))
		httpmw.RequireRole(user.RoleApprentice)(apply).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		httpmw.RequireRole(user.RoleEmployer)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/jobs/") && strings.Contains(path, "/hires/") && segmentCount(path) == 4:
		httpmw.RequireRole(user.RoleEmployer)(http.HandlerFunc(r.deps.HireHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/hires"):
		httpmw.RequireRole(user.RoleEmployer)(http.HandlerFunc(r.deps.HireHandler.ListByJob)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/") && strings.Contains(path, "/hires/") && strings.HasSuffix(path, "/status"):
		// Authorization is status-dependent and enforced in the service.
		r.deps.HireHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodGet && path == "/hires":
		httpmw.RequireRole(user.RoleApprentice)(http.HandlerFunc(r.deps.HireHandler.ListMine)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/hires/") && strings.HasSuffix(path, "/timeline"):
		r.deps.HireHandler.Timeline(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/hires/") && strings.HasSuffix(path, "/respond"):
		r.deps.HireHandler.Respond(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/hires/") && segmentCount(path) == 2:
		r.deps.HireHandler.Get(w, req)
		return
	case req.Method == http.MethodGet && path == "/employments":
		r.deps.EmploymentHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/employments/") && segmentCount(path) == 2:
		httpmw.RequireRole(user.RoleEmployer)(http.HandlerFunc(r.deps.EmploymentHandler.Update)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}

func segmentCount(path string) int {
	return len(strings.Split(strings.Trim(path, "/"), "/"))
}
