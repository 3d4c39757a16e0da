// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditfeature "github.com/dalemusser/recoveryhub/internal/app/features/auditlog"
	commissionsfeature "github.com/dalemusser/recoveryhub/internal/app/features/commissions"
	drcsfeature "github.com/dalemusser/recoveryhub/internal/app/features/drcs"
	healthfeature "github.com/dalemusser/recoveryhub/internal/app/features/health"
	paymentsfeature "github.com/dalemusser/recoveryhub/internal/app/features/payments"
	officersfeature "github.com/dalemusser/recoveryhub/internal/app/features/recoveryofficers"
	rtomsfeature "github.com/dalemusser/recoveryhub/internal/app/features/rtoms"
	settlementsfeature "github.com/dalemusser/recoveryhub/internal/app/features/settlements"
	tasksfeature "github.com/dalemusser/recoveryhub/internal/app/features/tasks"
	"github.com/dalemusser/recoveryhub/internal/app/store/audit"
	"github.com/dalemusser/recoveryhub/internal/app/system/auditlog"
	"github.com/dalemusser/recoveryhub/internal/app/system/ratelimit"
	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Every JSON endpoint lives under /api and
// is rate limited per client; /health is not.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase
	auditLogger := auditlog.New(audit.New(db), logger, auditlog.Uniform(appCfg.AuditLog))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.NotFound(respond.NotFoundHandler)
	r.MethodNotAllowed(respond.MethodNotAllowedHandler)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Redis, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	api := chi.NewRouter()
	api.Use(ratelimit.Middleware(deps.Limiter, appCfg.RateLimitWindow, logger))
	api.NotFound(respond.NotFoundHandler)
	api.MethodNotAllowed(respond.MethodNotAllowedHandler)

	api.Mount("/DRC", drcsfeature.Routes(drcsfeature.NewHandler(db, logger, auditLogger)))
	api.Mount("/recovery_officer", officersfeature.Routes(officersfeature.NewHandler(db, logger, auditLogger)))
	api.Mount("/RTOM", rtomsfeature.Routes(rtomsfeature.NewHandler(db, logger, auditLogger)))

	// Read-only case money views
	api.Mount("/settlement", settlementsfeature.Routes(settlementsfeature.NewHandler(db, logger, auditLogger)))
	api.Mount("/money", paymentsfeature.Routes(paymentsfeature.NewHandler(db, logger, auditLogger)))
	api.Mount("/commission", commissionsfeature.Routes(commissionsfeature.NewHandler(db, logger, auditLogger)))

	api.Mount("/task", tasksfeature.Routes(tasksfeature.NewHandler(db, logger, auditLogger)))
	api.Mount("/audit", auditfeature.Routes(auditfeature.NewHandler(db, logger)))

	r.Mount("/api", api)

	return r, nil
}
