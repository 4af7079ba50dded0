package service

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salesprofoma/kc-backend/internal/apperrors"
	"github.com/salesprofoma/kc-backend/internal/config"
	"github.com/salesprofoma/kc-backend/internal/mailer"
	"github.com/salesprofoma/kc-backend/internal/model"
	"github.com/salesprofoma/kc-backend/internal/store"
)

// emailPattern accepts local@domain.tld where the domain contains a dot and
// the TLD is at least two characters.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[A-Za-z]{2,}$`)

// Notifier sends the owner notification and customer confirmation for a
// stored lead.
type Notifier interface {
	Notify(lead model.Lead) (mailer.Result, error)
}

// Server holds the dependencies of all HTTP handlers. Everything is
// constructed once at process start and injected here; there is no
// package-level mutable state.
type Server struct {
	store      *store.Store
	notifier   Notifier
	adminToken string
	commit     string
	origins    []OriginRule
	adminPage  string
	log        *zap.Logger
}

// New builds a Server from its collaborators.
func New(leadStore *store.Store, notifier Notifier, cfg *config.Config, log *zap.Logger) *Server {
	return &Server{
		store:      leadStore,
		notifier:   notifier,
		adminToken: cfg.Admin.Token,
		commit:     cfg.Commit,
		origins:    ParseOriginRules(cfg.CORS.AllowedOrigins),
		adminPage:  "./web/admin.html",
		log:        log,
	}
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
func (s *Server) SetupHttpRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	if len(s.origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOriginFunc: func(origin string) bool {
				return MatchOrigin(s.origins, origin)
			},
			AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}))
	}

	router.GET("/health", s.health)
	router.StaticFile("/admin", s.adminPage)

	router.POST("/api/leads", s.createLead)
	router.POST("/api/leads/email", s.createLeadAndNotify)
	router.POST("/api/email", s.createLeadAndNotify)

	admin := router.Group("/api/admin", s.requireAdmin())
	admin.GET("/leads", s.listLeads)
	admin.DELETE("/leads/:id", s.deleteLeadByID)

	return router
}

// requestLogger emits one structured log line per handled request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// health responds with liveness information.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/health"
func (s *Server) health(c *gin.Context) {
	body := gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339)}
	if s.commit != "" {
		body["commit"] = s.commit
	}
	c.JSON(http.StatusOK, body)
}

// createLead validates the submission in the request's JSON and inserts it
// into the database. It responds with the newly assigned id.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/leads --request "POST" --header "Content-Type: application/json" --data '{"name": "Ann", "email": "ann@example.com", "service": "wash", "message": "please quote"}'
func (s *Server) createLead(c *gin.Context) {
	submission, ok := s.bindAndValidate(c)
	if !ok {
		return
	}
	id, err := s.store.Insert(c.Request.Context(), leadFromSubmission(submission))
	if err != nil {
		s.log.Error("insert failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}

// createLeadAndNotify validates and stores the submission with source forced
// to "email", then emails the owner notification and the customer
// confirmation. The lead is durably stored before any mail is attempted, so a
// misconfigured or failing transport reports a server error without losing
// the lead.
//
// Example REST API call:
//
//	> curl http://localhost:8080/api/leads/email --request "POST" --header "Content-Type: application/json" --data '{"name": "Ann", "email": "ann@example.com", "service": "wash", "message": "please quote"}'
func (s *Server) createLeadAndNotify(c *gin.Context) {
	submission, ok := s.bindAndValidate(c)
	if !ok {
		return
	}
	submission.Source = "email"

	lead := leadFromSubmission(submission)
	id, err := s.store.Insert(c.Request.Context(), lead)
	if err != nil {
		s.log.Error("insert failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "storage error"})
		return
	}

	lead.Id = id
	result, err := s.notifier.Notify(lead)
	if err != nil {
		s.log.Error("notify failed", zap.Int64("id", id), zap.Error(err))
		message := "mail send failed"
		if apperrors.IsConfiguration(err) {
			message = "mail not configured"
		}
		// The id is included so the caller knows the lead was stored.
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			gin.H{"ok": false, "error": message, "id": id})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":                 true,
		"id":                 id,
		"mailed":             result.OwnerSent,
		"confirmationMailed": result.ConfirmationSent,
	})
}

// bindAndValidate parses the request body into a Submission and validates it,
// writing the error response itself when the input is unusable.
func (s *Server) bindAndValidate(c *gin.Context) (model.Submission, bool) {
	var submission model.Submission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON"})
		return submission, false
	}
	if err := validateSubmission(&submission); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return submission, false
	}
	return submission, true
}

// validateSubmission normalizes and checks a submission in place. Name and
// email are trimmed before validation.
func validateSubmission(submission *model.Submission) error {
	submission.Name = strings.TrimSpace(submission.Name)
	submission.Email = strings.TrimSpace(submission.Email)
	if submission.Name == "" || submission.Email == "" ||
		submission.Service == "" || submission.Message == "" {
		return apperrors.NewValidation("missing fields")
	}
	if !emailPattern.MatchString(submission.Email) {
		return apperrors.NewValidation("invalid email")
	}
	return nil
}

// leadFromSubmission maps a validated submission onto a lead row. Defaulting
// of Source and assignment of CreatedAt happen in the store.
func leadFromSubmission(submission model.Submission) model.Lead {
	return model.Lead{
		Name:    submission.Name,
		Email:   submission.Email,
		Phone:   submission.Phone,
		Service: submission.Service,
		Message: submission.Message,
		Source:  submission.Source,
	}
}

// listLeads responds with all stored leads as JSON, newest first. Requires
// the admin token.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/api/admin/leads" --header "Authorization: Bearer secret"
func (s *Server) listLeads(c *gin.Context) {
	leads, err := s.store.ListAll(c.Request.Context())
	if err != nil {
		s.log.Error("list failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "rows": leads})
}

// deleteLeadByID deletes the lead whose id matches the id parameter of the
// request URL and responds with the number of rows removed. Deleting a
// nonexistent id responds with a count of 0, not an error. Requires the admin
// token.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/api/admin/leads/42" --request "DELETE" --header "Authorization: Bearer secret"
func (s *Server) deleteLeadByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id parameter"})
		return
	}
	count, err := s.store.DeleteByID(c.Request.Context(), id)
	if err != nil {
		s.log.Error("delete failed", zap.Int64("id", id), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": count})
}
