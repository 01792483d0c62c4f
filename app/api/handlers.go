package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skywatch/stargazer/app/apod"
	"github.com/skywatch/stargazer/app/catalog"
	"github.com/skywatch/stargazer/app/database"
)

// Observations belong to a single demo user; there is no authentication
// around them
const demoUserID int64 = 1

// Fallback shown for objects no provider has an image for
const stockImageURL = "https://images.unsplash.com/photo-1462331940025-496dfbfc7564?auto=format&fit=crop&w=800&h=500"

// normalizeMonth maps user-supplied month names ("january", "JULY") onto
// the canonical form stored in the database. A Caser is stateful, so each
// call builds its own instead of sharing one across handler goroutines.
func normalizeMonth(month string) string {
	if month == "" {
		return time.Now().In(time.Local).Month().String()
	}
	return cases.Title(language.English).String(month)
}

func NewHandler(objectRepo database.ObjectRepository, observationRepo database.ObservationRepository,
	guideRepo database.GuideRepository, tipRepo database.TipRepository,
	apodService ApodService, apodRange ApodRangeFetcher,
	resolver ImageResolver, previews PreviewBuilder) *Handler {
	return &Handler{
		objectRepo:      objectRepo,
		observationRepo: observationRepo,
		guideRepo:       guideRepo,
		tipRepo:         tipRepo,
		apodService:     apodService,
		apodRange:       apodRange,
		resolver:        resolver,
		previews:        previews,
	}
}

func (h *Handler) GetApod(c *gin.Context) {
	payload, err := h.apodService.Get(c.Request.Context(), c.Query("date"))
	if err != nil {
		status, message := apod.ErrorResponse(err)
		c.JSON(status, gin.H{"message": message})
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

func (h *Handler) GetApodRange(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing date range parameters"})
		return
	}

	payload, err := h.apodRange.FetchRange(c.Request.Context(), startDate, endDate)
	if err != nil {
		status, message := apod.ErrorResponse(err)
		c.JSON(status, gin.H{"message": message})
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

func (h *Handler) GetCelestialObjects(c *gin.Context) {
	objectType := c.Query("type")
	month := c.Query("month")
	if month != "" {
		month = normalizeMonth(month)
	}
	hemisphere := c.Query("hemisphere")

	var objects []database.CelestialObject
	var err error
	if objectType != "" || month != "" || hemisphere != "" {
		objects, err = h.objectRepo.FilterObjects(objectType, month, hemisphere)
	} else {
		objects, err = h.objectRepo.GetAllObjects()
	}
	if err != nil {
		slog.Error("Database error", "operation", "list_objects", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get celestial objects"})
		return
	}

	if objects == nil {
		objects = []database.CelestialObject{}
	}
	c.JSON(http.StatusOK, objects)
}

func (h *Handler) GetCelestialObject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid object id"})
		return
	}

	obj, err := h.objectRepo.GetObject(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_object", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get celestial object"})
		return
	}
	if obj == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Celestial object not found"})
		return
	}

	c.JSON(http.StatusOK, obj)
}

func (h *Handler) CreateCelestialObject(c *gin.Context) {
	var obj database.CelestialObject
	if err := c.ShouldBindJSON(&obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if obj.Name == "" || obj.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name and type are required"})
		return
	}

	// Custom objects get placeholder values for the optional display fields
	if obj.VisibilityRating == "" {
		obj.VisibilityRating = "Custom"
	}
	if obj.Information == "" {
		obj.Information = "Custom celestial object"
	}
	if obj.ImageURL == "" {
		obj.ImageURL = stockImageURL
	}
	if obj.Constellation == "" {
		obj.Constellation = "Not specified"
	}
	if obj.Magnitude == "" {
		obj.Magnitude = "Not specified"
	}
	if obj.RecommendedEyepiece == "" {
		obj.RecommendedEyepiece = "Not specified"
	}

	id, err := h.objectRepo.CreateObject(obj)
	if err != nil {
		slog.Error("Database error", "operation", "create_object", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create celestial object"})
		return
	}

	created, err := h.objectRepo.GetObject(id)
	if err != nil || created == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create celestial object"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetCelestialObjectTypes(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.ObjectTypes)
}

func (h *Handler) GetMonthlyGuide(c *gin.Context) {
	month := normalizeMonth(c.Query("month"))
	year := time.Now().In(time.Local).Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid year"})
			return
		}
		year = parsed
	}
	hemisphere := c.DefaultQuery("hemisphere", "Northern")

	guide, err := h.guideRepo.GetGuide(month, year, hemisphere)
	if err != nil {
		slog.Error("Database error", "operation", "get_guide", "month", month, "year", year, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get monthly guide"})
		return
	}
	if guide == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Monthly guide not found"})
		return
	}

	c.JSON(http.StatusOK, guide)
}

func (h *Handler) GetObservations(c *gin.Context) {
	observations, err := h.observationRepo.GetUserObservations(demoUserID)
	if err != nil {
		slog.Error("Database error", "operation", "list_observations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get observations"})
		return
	}

	// Join each observation with its object; a dangling reference yields null
	response := make([]observationResponse, 0, len(observations))
	for _, obs := range observations {
		obj, err := h.objectRepo.GetObject(obs.ObjectID)
		if err != nil {
			slog.Warn("Failed to load object for observation", "observation", obs.ID, "error", err)
			obj = nil
		}
		response = append(response, observationResponse{Observation: obs, CelestialObject: obj})
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) CreateObservation(c *gin.Context) {
	var req createObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	obj, err := h.objectRepo.GetObject(req.ObjectID)
	if err != nil {
		slog.Error("Database error", "operation", "get_object", "id", req.ObjectID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create observation"})
		return
	}
	if obj == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Celestial object not found"})
		return
	}

	id, err := h.observationRepo.CreateObservation(database.Observation{
		UserID:           demoUserID,
		ObjectID:         req.ObjectID,
		ObservationNotes: req.ObservationNotes,
		PlannedDate:      req.PlannedDate,
	})
	if err != nil {
		slog.Error("Database error", "operation", "create_observation", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create observation"})
		return
	}

	created, err := h.observationRepo.GetObservation(id)
	if err != nil || created == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create observation"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateObservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid observation id"})
		return
	}

	obs, err := h.observationRepo.GetObservation(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_observation", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update observation"})
		return
	}
	if obs == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Observation not found"})
		return
	}
	if obs.UserID != demoUserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to update this observation"})
		return
	}

	var req updateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.observationRepo.UpdateObservation(id, database.ObservationUpdate{
		IsObserved:       req.IsObserved,
		ObservationNotes: req.ObservationNotes,
		PlannedDate:      req.PlannedDate,
	})
	if err != nil || updated == nil {
		slog.Error("Database error", "operation", "update_observation", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update observation"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteObservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid observation id"})
		return
	}

	obs, err := h.observationRepo.GetObservation(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_observation", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete observation"})
		return
	}
	if obs == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Observation not found"})
		return
	}
	if obs.UserID != demoUserID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to delete this observation"})
		return
	}

	if err := h.observationRepo.DeleteObservation(id); err != nil {
		slog.Error("Database error", "operation", "delete_observation", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete observation"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetTelescopeTips(c *gin.Context) {
	category := c.Query("category")

	var tips []database.TelescopeTip
	var err error
	if category != "" {
		tips, err = h.tipRepo.GetTipsByCategory(category)
	} else {
		tips, err = h.tipRepo.GetAllTips()
	}
	if err != nil {
		slog.Error("Database error", "operation", "list_tips", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get telescope tips"})
		return
	}

	if tips == nil {
		tips = []database.TelescopeTip{}
	}
	c.JSON(http.StatusOK, tips)
}

func (h *Handler) NasaImageSearch(c *gin.Context) {
	objectName := c.Query("object")
	if objectName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing object parameter"})
		return
	}

	result := h.resolver.ResolvePreview(c.Request.Context(), objectName)
	c.JSON(http.StatusOK, result)
}

func (h *Handler) AutoPopulatePreview(c *gin.Context) {
	var req autoPopulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	req.Month = normalizeMonth(req.Month)
	if req.Year == 0 {
		req.Year = time.Now().In(time.Local).Year()
	}

	preview := h.previews.BuildPreview(c.Request.Context(), req.Month, req.Year)
	c.JSON(http.StatusOK, preview)
}

func (h *Handler) AutoPopulateConfirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	req.Month = normalizeMonth(req.Month)

	created := make([]database.CelestialObject, 0, len(req.Objects))
	skipped := []string{}

	for _, suggested := range req.Objects {
		existing, err := h.objectRepo.GetObjectByName(suggested.Name)
		if err != nil {
			slog.Warn("Existence lookup failed, creating anyway", "object", suggested.Name, "error", err)
		}
		if existing != nil {
			skipped = append(skipped, suggested.Name)
			continue
		}

		imageURL := stockImageURL
		if result := h.resolver.Resolve(c.Request.Context(), suggested.Name); result.Success {
			imageURL = result.ImageURL
		}

		obj := database.CelestialObject{
			Name:             suggested.Name,
			Type:             suggested.Type,
			Description:      suggested.Description,
			Month:            req.Month,
			ImageURL:         imageURL,
			VisibilityRating: suggested.Difficulty,
			Information:      suggested.ViewingTips,
			Constellation:    suggested.Constellation,
			Magnitude:        suggested.Magnitude,
		}

		id, err := h.objectRepo.CreateObject(obj)
		if err != nil {
			slog.Error("Database error", "operation", "create_object", "object", suggested.Name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create celestial objects"})
			return
		}

		if stored, err := h.objectRepo.GetObject(id); err == nil && stored != nil {
			created = append(created, *stored)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"created": created,
		"skipped": skipped,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if objectCount, err := h.objectRepo.GetObjectCount(); err == nil {
		health["objects"] = objectCount
	}
	if guideCount, err := h.guideRepo.GetGuideCount(); err == nil {
		health["guides"] = guideCount
	}
	if tipCount, err := h.tipRepo.GetTipCount(); err == nil {
		health["tips"] = tipCount
	}

	c.JSON(http.StatusOK, health)
}
