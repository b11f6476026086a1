// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"fmt"
	"net/http"
	"time"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/config"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/service"
	"jobboard-backend/internal/utilities"
)

// MyServer holds the configuration, storage and services behind the HTTP routes
type MyServer struct {
	cfg *config.Config
	DB  *database.DBinstanceStruct

	Tokens    *auth.TokenManager
	Blacklist auth.JwtBlacklistStore

	Users         *service.UserService
	Organizations *service.OrganizationService
	Jobs          *service.JobService
	Applications  *service.ApplicationService
	Skills        *service.SkillService
	Admin         *service.AdminService
}

// NewServer wires every service over db. A nil blacklist falls back to the
// in-memory store and a nil notifier drops status notifications.
func NewServer(cfg *config.Config, db *database.DBinstanceStruct, blacklist auth.JwtBlacklistStore, notifier service.Notifier) *MyServer {
	if blacklist == nil {
		blacklist = auth.NewInMemoryBlacklistStore()
	}

	tokens := auth.NewTokenManager(cfg.Auth)
	audit := service.NewAuditLogger(db.DB)
	engine := authz.New(db.DB)

	return &MyServer{
		cfg:       cfg,
		DB:        db,
		Tokens:    tokens,
		Blacklist: blacklist,

		Users:         service.NewUserService(db.DB, audit, utilities.BcryptHasher{}, tokens),
		Organizations: service.NewOrganizationService(db.DB, audit, cfg.Server.BypassVerification),
		Jobs:          service.NewJobService(db.DB, engine, audit),
		Applications:  service.NewApplicationService(db.DB, engine, audit, notifier),
		Skills:        service.NewSkillService(db.DB),
		Admin:         service.NewAdminService(db.DB, audit),
	}
}

// HTTPServer declares the http.Server serving RegisterRoutes on the configured port
func (s *MyServer) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
