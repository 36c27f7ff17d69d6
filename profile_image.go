package main

import (
	"net/http"

	"github.com/adarshmisra/portfolio/internal/linkedin"
	"github.com/gin-gonic/gin"
)

// handleProfileImage serves the LinkedIn profile picture URL. Only a failed
// fetch with nothing cached is reported as a server error; every other case,
// including "not found", answers 200 so the hero can fall back to initials.
func (s *server) handleProfileImage(c *gin.Context) {
	res := s.images.Lookup(c.Request.Context())

	status := http.StatusOK
	if res.Outcome == linkedin.OutcomeFailed {
		status = http.StatusInternalServerError
	}
	c.JSON(status, res)
}
