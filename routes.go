package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// contactRequest is bound from either a form post or a JSON body.
type contactRequest struct {
	Name    string `form:"name" json:"name" binding:"required"`
	Email   string `form:"email" json:"email" binding:"required,email"`
	Message string `form:"message" json:"message" binding:"required"`
}

type profileView struct {
	content.Profile
	WorkExperienceLines []string `json:"work_experience_lines"`
	Headline            string   `json:"headline"`
	CVDownloadURL       string   `json:"cv_download_url,omitempty"`
}

type skillView struct {
	content.Skill
	Initials string `json:"initials"`
}

type projectView struct {
	content.Project
	Technologies []string `json:"technologies"`
	ImageURL     string   `json:"image_url,omitempty"`
}

type contentView struct {
	Profile  profileView   `json:"profile"`
	Skills   []skillView   `json:"skills"`
	Projects []projectView `json:"projects"`
	Loading  bool          `json:"loading"`
}

func newProfileView(p content.Profile) profileView {
	return profileView{
		Profile:             p,
		WorkExperienceLines: p.WorkExperienceLines(),
		Headline:            p.Headline(),
		CVDownloadURL:       p.CVDownloadURL(),
	}
}

func newSkillViews(skills []content.Skill) []skillView {
	out := make([]skillView, 0, len(skills))
	for _, s := range skills {
		out = append(out, skillView{Skill: s, Initials: s.Initials()})
	}
	return out
}

func newProjectViews(projects []content.Project) []projectView {
	out := make([]projectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectView{Project: p, Technologies: p.Technologies(), ImageURL: p.ImageURL()})
	}
	return out
}

func setupRoutes(r *gin.Engine, loader *content.Loader, submitter *content.Submitter, db pinger) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness includes store connectivity and where each collection came from
	r.GET("/readyz", func(c *gin.Context) {
		snap := loader.Snapshot()
		details := gin.H{
			"loading":  snap.Loading,
			"profile":  snap.ProfileSource,
			"skills":   snap.SkillsSource,
			"projects": snap.ProjectsSource,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			details["db"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "details": details})
			return
		}
		details["db"] = "ok"
		c.JSON(http.StatusOK, gin.H{"status": "ready", "details": details})
	})

	api := r.Group("/api")

	api.GET("/content", func(c *gin.Context) {
		snap := loader.Snapshot()
		c.JSON(http.StatusOK, contentView{
			Profile:  newProfileView(snap.Profile),
			Skills:   newSkillViews(snap.Skills),
			Projects: newProjectViews(snap.Projects),
			Loading:  snap.Loading,
		})
	})

	api.GET("/profile", func(c *gin.Context) {
		c.JSON(http.StatusOK, newProfileView(loader.Snapshot().Profile))
	})

	api.GET("/skills", func(c *gin.Context) {
		c.JSON(http.StatusOK, newSkillViews(loader.Snapshot().Skills))
	})

	api.GET("/projects", func(c *gin.Context) {
		c.JSON(http.StatusOK, newProjectViews(loader.Snapshot().Projects))
	})

	// Contact form submission, form-encoded or JSON
	r.POST("/contact", func(c *gin.Context) {
		var req contactRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, content.SubmitResult{
				Error: "Please provide your name, a valid email address and a message.",
			})
			return
		}

		res := submitter.Submit(c.Request.Context(), content.Submission{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		})
		if !res.Success {
			c.JSON(http.StatusBadGateway, res)
			return
		}
		c.JSON(http.StatusOK, res)
	})
}
