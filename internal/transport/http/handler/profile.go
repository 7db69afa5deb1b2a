package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"devconnector/internal/app"
	"devconnector/internal/transport/http/response"
)

type RepoLister interface {
	ListRepos(ctx context.Context, username string) (json.RawMessage, error)
}

type ProfileHandler struct {
	profileService *app.ProfileService
	repos          RepoLister
	logger         *slog.Logger
}

// ProfileRequest enumerates every field POST /profile accepts. Fields left
// out of the body keep their stored value.
type ProfileRequest struct {
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	Status         *string `json:"status"`
	GithubUsername *string `json:"githubusername"`
	Skills         *string `json:"skills"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

type ExperienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func NewProfileHandler(profileService *app.ProfileService, repos RepoLister, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, repos: repos, logger: logger}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetMine(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, "get own profile", err)
		return
	}
	response.OK(c, profile)
}

func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.Upsert(c.Request.Context(), userID, app.ProfileUpdate{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		writeError(c, h.logger, "upsert profile", err)
		return
	}
	response.OK(c, profile)
}

func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileService.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "list profiles", err)
		return
	}
	response.OK(c, profiles)
}

func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	profile, err := h.profileService.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, h.logger, "get profile by user", err)
		return
	}
	response.OK(c, profile)
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteAccount(c.Request.Context(), userID); err != nil {
		writeError(c, h.logger, "delete account", err)
		return
	}
	response.Msg(c, http.StatusOK, "User deleted")
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ExperienceRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.AddExperience(c.Request.Context(), userID, app.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, h.logger, "add experience", err)
		return
	}
	response.OK(c, profile)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.RemoveExperience(c.Request.Context(), userID, c.Param("exp_id"))
	if err != nil {
		writeError(c, h.logger, "remove experience", err)
		return
	}
	response.OK(c, profile)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req EducationRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profileService.AddEducation(c.Request.Context(), userID, app.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		writeError(c, h.logger, "add education", err)
		return
	}
	response.OK(c, profile)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.RemoveEducation(c.Request.Context(), userID, c.Param("edu_id"))
	if err != nil {
		writeError(c, h.logger, "remove education", err)
		return
	}
	response.OK(c, profile)
}

// GithubRepos forwards the upstream repository listing as-is.
func (h *ProfileHandler) GithubRepos(c *gin.Context) {
	raw, err := h.repos.ListRepos(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, h.logger, "github repos", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}
