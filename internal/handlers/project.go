package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/authz"
	"github.com/trackline-dev/trackline/internal/models"
	"github.com/trackline-dev/trackline/internal/types"
	"github.com/trackline-dev/trackline/internal/utils"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type GetProjectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Owner       types.UserResponse   `json:"owner"`
	Members     []types.UserResponse `json:"members"`
}

func buildProjectResponse(project models.Project) GetProjectResponse {
	members := make([]types.UserResponse, 0, len(project.ProjectMemberships))

	for _, membership := range project.ProjectMemberships {
		members = append(members, types.UserResponse{
			ID:    membership.User.ID,
			Name:  membership.User.Name,
			Email: membership.User.Email,
		})
	}

	return GetProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Owner: types.UserResponse{
			ID:    project.Owner.ID,
			Name:  project.Owner.Name,
			Email: project.Owner.Email,
		},
		Members: members,
	}
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if strings.TrimSpace(body.Name) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
		return
	}

	// Member set = union(requested members, owner), deduplicated.
	memberIDs := []string{userID}

	for _, memberID := range body.Members {
		duplicate := false
		for _, existing := range memberIDs {
			if existing == memberID {
				duplicate = true
				break
			}
		}
		if !duplicate {
			memberIDs = append(memberIDs, memberID)
		}
	}

	var memberCount int64

	if err := db.DB.Model(&models.User{}).Where("id IN ?", memberIDs).Count(&memberCount).Error; err != nil {
		log.Printf("Failed to verify project members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if memberCount != int64(len(memberIDs)) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "One or more member ids are unknown"})
		return
	}

	project := models.Project{
		Name:        strings.TrimSpace(body.Name),
		Description: body.Description,
		OwnerID:     userID,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		for _, memberID := range memberIDs {
			membership := models.ProjectMembership{
				UserID:    memberID,
				ProjectID: project.ID,
			}
			if err := tx.Create(&membership).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	if err := db.DB.Preload("Owner").Preload("ProjectMemberships.User").First(&project, "id = ?", project.ID).Error; err != nil {
		log.Printf("Failed to reload project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, buildProjectResponse(project))
}

// ListProjects returns every project where the caller is a member, owners
// populated, newest first.
func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	memberOf := db.DB.Model(&models.ProjectMembership{}).Select("project_id").Where("user_id = ?", userID)

	var projects []models.Project

	if err := db.DB.Preload("Owner").Preload("ProjectMemberships.User").
		Where("id IN (?)", memberOf).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]GetProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, buildProjectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var project models.Project
	projectID := ctx.Param("project_id")

	if err := db.DB.First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if !authz.IsProjectOwner(userID, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can update this project"})
		return
	}

	if body.Name != nil {
		if strings.TrimSpace(*body.Name) == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
			return
		}
		project.Name = strings.TrimSpace(*body.Name)
	}

	if body.Description != nil {
		project.Description = *body.Description
	}

	if err := db.DB.Save(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	if err := db.DB.Preload("Owner").Preload("ProjectMemberships.User").First(&project, "id = ?", project.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, buildProjectResponse(project))
}

// DeleteProject removes the project and cascades over its tickets, their
// comments and its membership rows in one transaction, so nothing is left
// dangling.
func DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project
	projectID := ctx.Param("project_id")

	if err := db.DB.First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if !authz.IsProjectOwner(userID, project) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can delete this project"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		ticketIDs := tx.Model(&models.Ticket{}).Select("id").Where("project_id = ?", project.ID)

		if err := tx.Where("ticket_id IN (?)", ticketIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Ticket{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectMembership{}).Error; err != nil {
			return err
		}

		return tx.Delete(&project).Error
	})

	if err != nil {
		log.Printf("Failed to delete project %s: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
