package handlers

import (
	"yatube/storage"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) MediaFetch(c *gin.Context) {
	path, ok := storage.CleanPath(c.Param("path"))
	if !ok {
		NotFound(c)
		return
	}
	h.Media.Serve(path, c.Request, c.Writer)
}
