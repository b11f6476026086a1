package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/controller/admin"
	"jobboard-backend/internal/controller/application"
	"jobboard-backend/internal/controller/job"
	"jobboard-backend/internal/controller/organization"
	"jobboard-backend/internal/controller/skill"
	"jobboard-backend/internal/middleware"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	gin.SetMode(s.cfg.Server.GinMode)
	utilities.RegisterValidators()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.Server.AllowOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader(gin.Mode() == gin.ReleaseMode))
	r.Use(middleware.SizeLimit(middleware.DefaultMaxBodyBytes))

	lAuth := auth.NewLocalAuthHandler(s.Users)
	gAuth := auth.NewOauthLoginHandler(s.Users, auth.NewGoogleOauthConfig(s.cfg.Auth), auth.GoogleUserInfoEndpoint)
	logout := auth.NewLogoutController(s.Blacklist)

	applicationController := application.NewApplicationController(s.Applications)
	jobController := job.NewJobController(s.Jobs)
	organizationController := organization.NewOrganizationController(s.Organizations)
	skillController := skill.NewSkillController(s.Skills)
	adminController := admin.NewAdminController(s.Admin, s.Users)

	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rateLimit := middleware.RateLimiterMiddleware(uint(s.cfg.Server.RateLimitPerSecond))

	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth", rateLimit)
		{
			authRoute.POST("register", lAuth.LocalRegisterHandler)
			authRoute.POST("login", lAuth.LocalLoginHandler)
			if s.cfg.Auth.GoogleEnabled() {
				authRoute.POST("google", gAuth.GoogleLoginHandler)
				authRoute.GET("google/callback", gAuth.Callback)
			}
		}

		// Any authenticated routes
		needAuth := v1.Group("")
		{
			needAuth.Use(
				middleware.RequireAuth(s.DB.DB, s.Tokens),
				middleware.JwtBlacklistCheck(s.Blacklist),
				rateLimit,
			)
			needAuth.POST("auth/logout", logout.LogoutHandler)

			organizationRoute := needAuth.Group("/organizations")
			{
				organizationRoute.GET(":id", organizationController.GetOrganizationByIDHandler)
				organizationRoute.Use(middleware.CheckRole(model.RoleRecruiter))
				organizationRoute.POST("", organizationController.CreateOrganizationHandler)
				organizationRoute.GET("me", organizationController.GetMyOrganizationHandler)
				organizationRoute.PATCH("me", organizationController.EditMyOrganizationHandler)
			}

			jobRoute := needAuth.Group("/jobs")
			{
				jobRoute.GET("", jobController.GetJobsHandler)
				jobRoute.GET(":id", jobController.GetJobByIDHandler)
				jobRoute.GET("mine", middleware.CheckRole(model.RoleRecruiter), jobController.MyJobsHandler)
				jobRoute.POST("", middleware.CheckRole(model.RoleRecruiter), jobController.CreateJobHandler)
				jobRoute.PATCH(":id", middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jobController.UpdateJobHandler)
				jobRoute.DELETE(":id", middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jobController.DeleteJobHandler)
			}

			needAuth.GET("skills", skillController.GetSkillsHandler)
			needAuth.POST("skills", middleware.CheckRole(model.RoleAdmin), skillController.CreateSkillHandler)
			needAuth.PUT("profile/skills", middleware.CheckRole(model.RoleJobSeeker), skillController.ReplaceProfileSkillsHandler)

			applicationRoute := needAuth.Group("/applications")
			{
				applicationRoute.GET("me", applicationController.MyApplicationsHandler)
				applicationRoute.GET(":id", applicationController.GetApplicationHandler)
				applicationRoute.POST(":jobId", middleware.CheckRole(model.RoleJobSeeker), applicationController.ApplyHandler)

				manage := applicationRoute.Group("/manage", middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin))
				manage.GET(":jobId", applicationController.JobApplicationsHandler)
				manage.PATCH(":id", applicationController.UpdateStatusHandler)
			}

			needAdmin := needAuth.Group("/admin")
			{
				needAdmin.Use(middleware.CheckRole(model.RoleAdmin))
				needAdmin.GET("stats", adminController.GetStatsHandler)
				needAdmin.GET("users", adminController.GetUsersHandler)
				needAdmin.GET("jobs", adminController.GetJobsHandler)
				needAdmin.GET("companies", adminController.GetCompaniesHandler)
				needAdmin.GET("logs", adminController.GetLogsHandler)
				needAdmin.GET("reports/summary", adminController.GetSummaryHandler)
				needAdmin.GET("reports/matrix", adminController.GetMatrixHandler)
				needAdmin.PATCH("users/:id/role", adminController.UpdateRoleHandler)
				needAdmin.PATCH("users/:id/active", adminController.SetActiveHandler)
				needAdmin.PATCH("companies/:id/verify", organizationController.VerifyOrganizationHandler)
				needAdmin.POST("jobs/:id/restore", jobController.RestoreJobHandler)
				needAdmin.DELETE("applications/:id", applicationController.DeleteApplicationHandler)
			}
		}
	}

	return r
}

func (s *MyServer) healthHandler(c *gin.Context) {
	stats := s.DB.Health()
	if stats["status"] != "up" {
		c.JSON(http.StatusServiceUnavailable, stats)
		return
	}
	c.JSON(http.StatusOK, stats)
}
