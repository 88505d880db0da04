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
	"github.com/trackline-dev/trackline/internal/utils"
	"gorm.io/gorm"
)

type CreateCommentRequest struct {
	TicketID string `json:"ticket_id" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

type CommentAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CommentResponse struct {
	ID        string        `json:"id"`
	TicketID  string        `json:"ticket_id"`
	Author    CommentAuthor `json:"author"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"created_at"`
}

func buildCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:       comment.ID,
		TicketID: comment.TicketID,
		Author: CommentAuthor{
			ID:   comment.Author.ID,
			Name: comment.Author.Name,
		},
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

// CreateComment posts to a ticket's discussion. Only the ticket's creator or
// assignee may post, mirroring read visibility.
func CreateComment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateCommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	var ticket models.Ticket

	if err := db.DB.First(&ticket, "id = ?", req.TicketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ticket"})
		}
		return
	}

	if !authz.CanAccessTicketDiscussion(userID, ticket) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the creator or assignee can comment on this ticket"})
		return
	}

	comment := models.Comment{
		TicketID: ticket.ID,
		AuthorID: userID,
		Text:     req.Text,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		log.Printf("Failed to create comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if err := db.DB.Preload("Author").First(&comment, "id = ?", comment.ID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, buildCommentResponse(comment))
}

// GetComments lists a ticket's discussion, newest first. Visible only to the
// ticket's creator or assignee.
func GetComments(ctx *gin.Context) {
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

	if !authz.CanAccessTicketDiscussion(userID, ticket) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You are not the creator or assignee of this ticket"})
		return
	}

	var comments []models.Comment

	if err := db.DB.Preload("Author").
		Where("ticket_id = ?", ticket.ID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	response := make([]CommentResponse, 0, len(comments))

	for _, comment := range comments {
		response = append(response, buildCommentResponse(comment))
	}

	ctx.JSON(http.StatusOK, response)
}
