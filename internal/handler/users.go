package handler

import (
	"net/http"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/dto"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/repository"

	"github.com/gin-gonic/gin"
)

// UsersHandler exposes the read-only operator directory used by clients to
// attach display names to sessions and movements.
type UsersHandler struct{ repo repository.UserRepository }

func NewUsersHandler(repo repository.UserRepository) *UsersHandler {
	return &UsersHandler{repo: repo}
}

// List returns all active operators.
func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.UserResponse{
			ID:       u.ID.String(),
			Username: u.Username,
			FullName: u.FullName,
			Role:     u.Role,
			Active:   u.Active,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
