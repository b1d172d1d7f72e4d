package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) attachRoutes(r *gin.Engine) {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", sessionHeader},
		ExposeHeaders:    []string{"Content-Length", sessionHeader},
		AllowCredentials: true,
	}
	if allowAll(s.cfg.AllowOrigins) {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = s.cfg.AllowOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.Use(s.rateLimit(), s.sessionMiddleware())
	{
		v1.POST("/claims", s.analyzeClaim)
		v1.POST("/urls", s.scanURL)
		v1.POST("/images", s.analyzeImage)
		v1.POST("/quiz/runs", s.runQuiz)
		v1.GET("/quiz", s.quizTally)
	}
}

// allowAll reports whether origins is empty or contains the "*" wildcard
func allowAll(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
