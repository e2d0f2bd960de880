package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"campus-nav-server/apperrors"
	"campus-nav-server/routing"
	"campus-nav-server/services"
)

type navigateRequest struct {
	Start routing.NodeID `json:"start" binding:"required,max=64,nodeid"`
	End   routing.NodeID `json:"end" binding:"required,max=64,nodeid"`
}

type rangeQuery struct {
	Within *int `form:"within" binding:"required,gte=0,lte=100000"`
}

type nearestQuery struct {
	X *float64 `form:"x" binding:"required"`
	Y *float64 `form:"y" binding:"required"`
}

var (
	nodeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	registerOnce  sync.Once
)

// registerValidators adds the custom tags used by request bindings to gin's
// validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("nodeid", validNodeID); err != nil {
			panic(fmt.Sprintf("handlers: register nodeid validator: %v", err))
		}
	})
}

func validNodeID(fl validator.FieldLevel) bool {
	return nodeIDPattern.MatchString(fl.Field().String())
}

type NavigationHandler struct {
	service *services.NavigationService
	logger  *zap.Logger
}

func NewNavigationHandler(service *services.NavigationService, logger *zap.Logger) *NavigationHandler {
	registerValidators()
	return &NavigationHandler{
		service: service,
		logger:  logger,
	}
}

func (h *NavigationHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	api.GET("/locations", h.ListLocations)
	api.GET("/locations/:id", h.GetLocation)
	api.GET("/locations/:id/neighbors", h.GetNeighbors)
	api.GET("/locations/:id/reachable", h.GetReachable)
	api.GET("/map", h.GetMap)
	api.GET("/nearest", h.GetNearest)
	api.POST("/navigate", h.Navigate)
}

func (h *NavigationHandler) ListLocations(c *gin.Context) {
	locations := h.service.Locations()
	c.JSON(http.StatusOK, gin.H{
		"locations": locations,
		"count":     len(locations),
	})
}

func (h *NavigationHandler) GetLocation(c *gin.Context) {
	node, err := h.service.Location(routing.NodeID(c.Param("id")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, node)
}

func (h *NavigationHandler) GetNeighbors(c *gin.Context) {
	id := routing.NodeID(c.Param("id"))
	neighbors, err := h.service.Neighbors(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        id,
		"neighbors": neighbors,
		"count":     len(neighbors),
	})
}

func (h *NavigationHandler) GetReachable(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.logger, apperrors.NewValidation(apperrors.CodeInvalidRequest, "within must be a distance in meters between 0 and 100000", err))
		return
	}

	id := routing.NodeID(c.Param("id"))
	reachable, err := h.service.WithinRange(id, *q.Within)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        id,
		"within":    *q.Within,
		"locations": reachable,
		"count":     len(reachable),
	})
}

func (h *NavigationHandler) GetMap(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Map())
}

func (h *NavigationHandler) GetNearest(c *gin.Context) {
	var q nearestQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, h.logger, apperrors.NewValidation(apperrors.CodeInvalidRequest, "x and y query parameters are required numbers", err))
		return
	}

	nearest, err := h.service.Nearest(*q.X, *q.Y)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nearest)
}

func (h *NavigationHandler) Navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperrors.NewValidation(apperrors.CodeInvalidRequest, err.Error(), err))
		return
	}

	h.logger.Debug("navigation request",
		zap.String("request_id", requestID(c)),
		zap.String("start", string(req.Start)),
		zap.String("end", string(req.End)))

	resp, err := h.service.Navigate(req.Start, req.End)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp.RequestID = requestID(c)
	c.JSON(http.StatusOK, resp)
}
