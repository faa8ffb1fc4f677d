package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"franquicias-latam.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	otpHandler       *handlers.OtpHandler
	leadHandler      *handlers.LeadHandler
	franchiseHandler *handlers.FranchiseHandler
	catalogHandler   *handlers.CatalogHandler
	adminHandler     *handlers.AdminHandler
	quizHandler      *handlers.QuizHandler
	adminAuth        gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "franquicias-latam-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Phone verification (public)
		smsGroup := v1.Group("/sms")
		{
			smsGroup.POST("/send", d.otpHandler.SendCode)
			smsGroup.POST("/verify", d.otpHandler.VerifyCode)
		}

		// Lead intake (public, gated on verified phone inside the usecase)
		v1.POST("/leads", d.leadHandler.SubmitLead)

		// Catalog (public)
		v1.GET("/sectors", d.catalogHandler.ListSectors)
		v1.GET("/countries", d.catalogHandler.ListCountries)

		// Franchise detail (public)
		v1.GET("/franchises/:id", d.franchiseHandler.GetFranchise)

		// Quiz sessions (public)
		quiz := v1.Group("/quiz/sessions")
		{
			quiz.POST("", d.quizHandler.Start)
			quiz.GET("/:id", d.quizHandler.Get)
			quiz.POST("/:id/events", d.quizHandler.Answer)
			quiz.POST("/:id/back", d.quizHandler.Back)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.POST("/auth/login", d.adminHandler.Login)

			protected := admin.Group("")
			protected.Use(d.adminAuth)
			{
				protected.GET("/stats", d.leadHandler.Stats)

				protected.GET("/leads", d.leadHandler.ListLeads)
				protected.GET("/leads/:id", d.leadHandler.GetLead)
				protected.PATCH("/leads/:id/viewed", d.leadHandler.SetViewed)
				protected.DELETE("/leads/:id", d.leadHandler.DeleteLead)
				protected.PATCH("/matches/:id/contacted", d.leadHandler.SetMatchContacted)

				protected.GET("/franchises", d.franchiseHandler.ListFranchises)
				protected.POST("/franchises", d.franchiseHandler.CreateFranchise)
				protected.PUT("/franchises/:id", d.franchiseHandler.UpdateFranchise)
				protected.DELETE("/franchises/:id", d.franchiseHandler.DeleteFranchise)
			}
		}
	}
}
