package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	directorydomain "github.com/smallbiznis/storefront/internal/directory/domain"
	"github.com/smallbiznis/storefront/pkg/pagination"
)

func (s *Server) GetUserByID(c *gin.Context) {
	id, ok := parseInt64Param(c.Param("id"))
	if !ok {
		AbortWithError(c, ErrNotFound)
		return
	}

	resp, err := s.directorySvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListUsers(c *gin.Context) {
	page := pagination.NewPage(
		parseIntParam(c.Query("page"), 1),
		parseIntParam(c.Query("limit"), pagination.DefaultLimit),
	)

	resp, err := s.directorySvc.List(c.Request.Context(), directorydomain.ListRequest{
		Page: page,
		Role: strings.TrimSpace(c.Query("role")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
