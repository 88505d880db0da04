package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/db"
	"github.com/trackline-dev/trackline/internal/models"
	"github.com/trackline-dev/trackline/internal/types"
	"github.com/trackline-dev/trackline/internal/utils"
)

type DashboardResponse struct {
	Projects int64 `json:"projects"`
	Tickets  int64 `json:"tickets"`
	Pending  int64 `json:"pending"`
	Done     int64 `json:"done"`
	Open     int64 `json:"open"`
	Progress int64 `json:"progress"`
	High     int64 `json:"high"`
}

func countAssignedTickets(userID string, dest *int64, conditions ...interface{}) error {
	query := db.DB.Model(&models.Ticket{}).Where("assigned_to_id = ?", userID)

	if len(conditions) > 0 {
		query = query.Where(conditions[0], conditions[1:]...)
	}

	return query.Count(dest).Error
}

// GetDashboard aggregates the caller's workspace: membership count plus
// assigned-ticket counts per status and for high priority. Recomputed on
// every request, nothing is persisted.
func GetDashboard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var response DashboardResponse

	err = db.DB.Model(&models.ProjectMembership{}).
		Where("user_id = ?", userID).
		Count(&response.Projects).Error

	if err == nil {
		err = countAssignedTickets(userID, &response.Tickets)
	}

	if err == nil {
		err = countAssignedTickets(userID, &response.Pending, "status <> ?", types.StatusDone)
	}

	if err == nil {
		err = countAssignedTickets(userID, &response.Done, "status = ?", types.StatusDone)
	}

	if err == nil {
		err = countAssignedTickets(userID, &response.Open, "status = ?", types.StatusTodo)
	}

	if err == nil {
		err = countAssignedTickets(userID, &response.Progress, "status = ?", types.StatusInProgress)
	}

	if err == nil {
		err = countAssignedTickets(userID, &response.High, "priority = ?", types.PriorityHigh)
	}

	if err != nil {
		log.Printf("Failed to compute dashboard for user %s: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
