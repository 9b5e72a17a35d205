package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/views"
)

const adminCookie = "admin_token"

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// who identifies a client in logs without logging its address.
func (s *Server) who(c *gin.Context) string {
	if s.store == nil {
		return "client"
	}
	return s.store.HashIP(c.ClientIP())
}

func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !equal(token, s.adminToken) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	if s.cfg.AdminDefaults && gin.Mode() == gin.DebugMode {
		log.Println("WARNING: Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD.")
	}

	r.GET("/privacy", func(c *gin.Context) {
		render(c, http.StatusOK, views.PrivacyPage())
	})

	r.GET("/admin/login", func(c *gin.Context) {
		render(c, http.StatusOK, views.LoginPage(""))
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		userOK := equal(username, s.cfg.AdminUsername)
		passOK := equal(password, s.cfg.AdminPassword)
		if !userOK || !passOK {
			log.Printf("Failed admin login attempt from %s", s.who(c))
			render(c, http.StatusUnauthorized, views.LoginPage("Invalid credentials"))
			return
		}
		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
		log.Printf("Admin login successful from %s", s.who(c))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", s.who(c))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		if s.store == nil {
			render(c, http.StatusServiceUnavailable, views.ErrorPage("Visitor tracking is disabled"))
			return
		}
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			render(c, http.StatusInternalServerError, views.ErrorPage("Failed to load statistics"))
			return
		}
		render(c, http.StatusOK, views.Dashboard(stats))
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		if s.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "visitor tracking is disabled"})
			return
		}
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		if s.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "visitor tracking is disabled"})
			return
		}
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", s.who(c))
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		if s.store == nil {
			c.JSON(http.StatusOK, gin.H{"removed": 0})
			return
		}
		n, err := s.store.Cleanup(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Privacy cleanup: removed %d records", n)
		c.JSON(http.StatusOK, gin.H{"removed": n})
	})
}
