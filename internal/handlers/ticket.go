package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/authz"
	"github.com/trackline-dev/trackline/internal/models"
	"github.com/trackline-dev/trackline/internal/types"
	"github.com/trackline-dev/trackline/internal/utils"
	"gorm.io/gorm"
)

type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	ProjectID   string `json:"project_id" binding:"required"`
	AssignedTo  string `json:"assigned_to"`
}

type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignTicketRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type ProjectSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TicketResponse struct {
	ID          string             `json:"id"`
	Project     ProjectSummary     `json:"project"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	Priority    string             `json:"priority"`
	CreatedBy   types.UserResponse `json:"created_by"`
	AssignedTo  types.UserResponse `json:"assigned_to"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func buildTicketResponse(ticket models.Ticket) TicketResponse {
	return TicketResponse{
		ID: ticket.ID,
		Project: ProjectSummary{
			ID:   ticket.Project.ID,
			Name: ticket.Project.Name,
		},
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		CreatedBy: types.UserResponse{
			ID:    ticket.CreatedBy.ID,
			Name:  ticket.CreatedBy.Name,
			Email: ticket.CreatedBy.Email,
		},
		AssignedTo: types.UserResponse{
			ID:    ticket.AssignedTo.ID,
			Name:  ticket.AssignedTo.Name,
			Email: ticket.AssignedTo.Email,
		},
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
	}
}

func CreateTicket(ctx *gin.Context) {
	var req CreateTicketRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title and project are required"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, "id = ?", req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	var memberships []models.ProjectMembership

	if err := db.DB.Where("project_id = ?", project.ID).Find(&memberships).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project members"})
		return
	}

	if !authz.IsProjectMember(userID, memberships) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a project member"})
		return
	}

	priority := req.Priority

	if priority == "" {
		priority = types.PriorityMedium
	} else if !types.IsValidPriority(priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	// An unspecified assignee defaults to the creator; an explicit one must
	// belong to the project.
	assignedTo := req.AssignedTo

	if assignedTo == "" {
		assignedTo = userID
	} else if !authz.IsProjectMember(assignedTo, memberships) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Assignee must be a project member"})
		return
	}

	ticket := models.Ticket{
		ProjectID:    project.ID,
		Title:        req.Title,
		Description:  req.Description,
		Status:       types.StatusTodo,
		Priority:     priority,
		CreatedByID:  userID,
		AssignedToID: assignedTo,
	}

	if err := db.DB.Create(&ticket).Error; err != nil {
		log.Printf("Failed to create ticket: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket"})
		return
	}

	if err := db.DB.Preload("Project").Preload("CreatedBy").Preload("AssignedTo").First(&ticket, "id = ?", ticket.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, buildTicketResponse(ticket))
}

func GetTicket(ctx *gin.Context) {
	var ticket models.Ticket
	ticketID := ctx.Param("ticket_id")

	if err := db.DB.Preload("Project").Preload("CreatedBy").Preload("AssignedTo").First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		}
		return
	}

	ctx.JSON(http.StatusOK, buildTicketResponse(ticket))
}

// GetMyTickets returns every ticket assigned to the caller, newest first.
// Feeds the personal kanban board.
func GetMyTickets(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var tickets []models.Ticket

	if err := db.DB.Preload("Project").Preload("CreatedBy").Preload("AssignedTo").
		Where("assigned_to_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tickets"})
		return
	}

	response := make([]TicketResponse, 0, len(tickets))

	for _, ticket := range tickets {
		response = append(response, buildTicketResponse(ticket))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTicketsByProject lists a project's tickets for members. Non-members get
// an explicit 403, never an empty list.
func GetTicketsByProject(ctx *gin.Context) {
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

	var memberships []models.ProjectMembership

	if err := db.DB.Where("project_id = ?", project.ID).Find(&memberships).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project members"})
		return
	}

	if !authz.IsProjectMember(userID, memberships) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a project member"})
		return
	}

	var tickets []models.Ticket

	if err := db.DB.Preload("Project").Preload("CreatedBy").Preload("AssignedTo").
		Where("project_id = ?", project.ID).
		Order("created_at DESC").
		Find(&tickets).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tickets"})
		return
	}

	response := make([]TicketResponse, 0, len(tickets))

	for _, ticket := range tickets {
		response = append(response, buildTicketResponse(ticket))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateTicket(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateTicketRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var ticket models.Ticket
	ticketID := ctx.Param("ticket_id")

	if err := db.DB.First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		}
		return
	}

	if !authz.CanEditTicket(userID, ticket) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the creator or assignee can edit this ticket"})
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		ticket.Title = strings.TrimSpace(*req.Title)
	}

	if req.Description != nil {
		ticket.Description = *req.Description
	}

	if req.Priority != nil {
		if !types.IsValidPriority(*req.Priority) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		ticket.Priority = *req.Priority
	}

	if err := db.DB.Save(&ticket).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket"})
		return
	}

	if err := db.DB.Preload("Project").Preload("CreatedBy").Preload("AssignedTo").First(&ticket, "id = ?", ticket.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, buildTicketResponse(ticket))
}

// UpdateTicketStatus moves a ticket between kanban columns. Only the
// assignee may move it; the status enum is validated before any write.
func UpdateTicketStatus(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateTicketStatusRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	if !types.IsValidStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var ticket models.Ticket
	ticketID := ctx.Param("ticket_id")

	if err := db.DB.First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		}
		return
	}

	if !authz.CanChangeStatus(userID, ticket) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the assignee can change the status"})
		return
	}

	ticket.Status = req.Status

	if err := db.DB.Save(&ticket).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket"})
		return
	}

	if err := db.DB.Preload("Project").Preload("CreatedBy").Preload("AssignedTo").First(&ticket, "id = ?", ticket.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, buildTicketResponse(ticket))
}

// AssignTicket hands a ticket to another project member. Both the caller and
// the new assignee must belong to the ticket's project.
func AssignTicket(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req AssignTicketRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User id is required"})
		return
	}

	var ticket models.Ticket
	ticketID := ctx.Param("ticket_id")

	if err := db.DB.First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		}
		return
	}

	var memberships []models.ProjectMembership

	if err := db.DB.Where("project_id = ?", ticket.ProjectID).Find(&memberships).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project members"})
		return
	}

	if !authz.IsProjectMember(userID, memberships) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a project member"})
		return
	}

	if !authz.IsProjectMember(req.UserID, memberships) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Assignee must be a project member"})
		return
	}

	ticket.AssignedToID = req.UserID

	if err := db.DB.Save(&ticket).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ticket"})
		return
	}

	if err := db.DB.Preload("Project").Preload("CreatedBy").Preload("AssignedTo").First(&ticket, "id = ?", ticket.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, buildTicketResponse(ticket))
}

// DeleteTicket removes a ticket and its comments. Creator-only: project
// ownership grants no delete rights here.
func DeleteTicket(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var ticket models.Ticket
	ticketID := ctx.Param("ticket_id")

	if err := db.DB.First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		}
		return
	}

	if !authz.CanDeleteTicket(userID, ticket) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the creator can delete this ticket"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", ticket.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ticket).Error
	})

	if err != nil {
		log.Printf("Failed to delete ticket %s: %v", ticket.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ticket"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
