package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/parkreg-io/parkreg/internal/config"
	"github.com/parkreg-io/parkreg/internal/middleware"
	"github.com/parkreg-io/parkreg/internal/modules/handler"
	"github.com/parkreg-io/parkreg/internal/modules/serializer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config             *config.Config
	Log                *zap.Logger
	PublicHandler      *handler.PublicHandler
	AuthHandler        *handler.AuthHandler
	ProjectHandler     *handler.ProjectHandler
	ApplicationHandler *handler.ApplicationHandler
	ParkingTypeHandler *handler.ParkingTypeHandler
	PageSettingHandler *handler.PageSettingHandler
	QrCodeHandler      *handler.QrCodeHandler
	EventsHandler      *handler.EventsHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// visitor surface, no session required
	pub := r.Group("/p/:slug")
	{
		pub.GET("/config", d.PublicHandler.GetPageConfig)
		pub.POST("/applications", d.PublicHandler.SubmitApplication)
		pub.GET("/status", d.PublicHandler.LookupStatus)
	}

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", d.AuthHandler.SignUp)
			auth.POST("/login", d.AuthHandler.Login)
			auth.POST("/site-login", d.AuthHandler.SiteLogin)

			profile := auth.Group("/profile", middleware.RequireAuth(d.Config), middleware.RequireMaster())
			{
				profile.GET("", d.AuthHandler.GetProfile)
				profile.PUT("", d.AuthHandler.UpdateProfile)
			}

			masters := auth.Group("/masters", middleware.RequireAuth(d.Config), middleware.RequireMaster())
			{
				masters.GET("", d.AuthHandler.ListMasters)
				masters.POST("/:userID/approve", d.AuthHandler.ApproveMaster)
			}
		}

		projects := v1.Group("/projects", middleware.RequireAuth(d.Config))
		{
			// project management is master-only
			projects.GET("", middleware.RequireMaster(), d.ProjectHandler.ListProjects)
			projects.POST("", middleware.RequireMaster(), d.ProjectHandler.CreateProject)

			scoped := projects.Group("/:projectID", middleware.ProjectScope())
			{
				scoped.GET("", middleware.RequireMaster(), d.ProjectHandler.GetProject)
				scoped.PUT("", middleware.RequireMaster(), d.ProjectHandler.UpdateProject)
				scoped.DELETE("", middleware.RequireMaster(), d.ProjectHandler.DeleteProject)

				apps := scoped.Group("/applications")
				{
					apps.GET("", d.ApplicationHandler.ListApplications)
					apps.POST("/assign", d.ApplicationHandler.AssignParkingType)
					apps.POST("/reject", d.ApplicationHandler.RejectApplications)
					apps.POST("/delete", d.ApplicationHandler.DeleteApplications)
					apps.GET("/export", d.ApplicationHandler.ExportApplications)
				}

				// configuration surfaces stay master-only; site sessions
				// get application review and the change feed, nothing else
				types := scoped.Group("/parking-types", middleware.RequireMaster())
				{
					types.GET("", d.ParkingTypeHandler.ListParkingTypes)
					types.POST("", d.ParkingTypeHandler.CreateParkingType)
					types.PUT("/order", d.ParkingTypeHandler.ReorderParkingTypes)
					types.DELETE("/:typeID", d.ParkingTypeHandler.DeleteParkingType)
				}

				settings := scoped.Group("/settings", middleware.RequireMaster())
				{
					settings.GET("", d.PageSettingHandler.GetPageSettings)
					settings.PUT("", d.PageSettingHandler.SavePageSettings)
				}

				qr := scoped.Group("/qr-codes", middleware.RequireMaster())
				{
					qr.GET("", d.QrCodeHandler.ListQrCodes)
					qr.POST("", d.QrCodeHandler.CreateQrCode)
					qr.PUT("/:qrID", d.QrCodeHandler.UpdateQrCode)
					qr.DELETE("/:qrID", d.QrCodeHandler.DeleteQrCode)
					qr.GET("/:qrID/image", d.QrCodeHandler.RenderQrCode)
					qr.POST("/:qrID/share", d.QrCodeHandler.ShareQrCode)
				}

				scoped.GET("/events", d.EventsHandler.StreamEvents)
			}
		}
	}
	return r
}
