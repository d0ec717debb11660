package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/GoSim-25-26J-441/items-api/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/items-api/internal/items/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handler) list(c *gin.Context) {
	skip, ok := queryInt(c, "skip", domain.DefaultSkip)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", domain.DefaultLimit)
	if !ok {
		return
	}

	items, err := h.store.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	it, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handler) create(c *gin.Context) {
	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, bindErrors(err)...)
		return
	}

	it, err := h.store.Insert(c.Request.Context(), *req.Name, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		unprocessable(c, bindErrors(err)...)
		return
	}

	it, err := h.store.Update(c.Request.Context(), id, *req.Name, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgDeleted})
}

// fail maps store errors onto responses. Anything other than ErrNotFound is
// logged and reported as a 500.
func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": msgNotFound})
		return
	}

	log.Printf("[items] id=%s %s %s: %v",
		middleware.GetRequestID(c.Request.Context()), c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": msgInternal})
}
