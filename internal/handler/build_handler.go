package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"eldenbuilds/internal/auth"
	"eldenbuilds/internal/errors"
	"eldenbuilds/internal/model"
	"eldenbuilds/internal/service"
)

// BuildHandler handles build CRUD endpoints.
type BuildHandler struct {
	buildService service.BuildService
}

// NewBuildHandler creates a new build handler.
func NewBuildHandler(buildService service.BuildService) *BuildHandler {
	return &BuildHandler{buildService: buildService}
}

// CreateBuildRequest represents a build submission. Omitted stats
// default to 0.
type CreateBuildRequest struct {
	Name          string   `json:"name" validate:"required"`
	StartingClass string   `json:"starting_class"`
	Weapon        string   `json:"weapon"`
	LocationName  string   `json:"location_name"`
	LocationURL   string   `json:"location_url"`
	ImageURL      string   `json:"image_url"`
	VideoURL      string   `json:"video_url"`
	Description   string   `json:"description"`
	Vigor         int      `json:"vigor"`
	Mind          int      `json:"mind"`
	Endurance     int      `json:"endurance"`
	Strength      int      `json:"strength"`
	Dexterity     int      `json:"dexterity"`
	Intelligence  int      `json:"intelligence"`
	Faith         int      `json:"faith"`
	Arcane        int      `json:"arcane"`
	Difficulty    string   `json:"difficulty"`
	ShowcaseItems []string `json:"showcase_items"`
}

// UpdateBuildRequest represents a partial build update; only fields
// present in the body are written.
type UpdateBuildRequest struct {
	Name          *string   `json:"name"`
	StartingClass *string   `json:"starting_class"`
	Weapon        *string   `json:"weapon"`
	LocationName  *string   `json:"location_name"`
	LocationURL   *string   `json:"location_url"`
	ImageURL      *string   `json:"image_url"`
	VideoURL      *string   `json:"video_url"`
	Description   *string   `json:"description"`
	Vigor         *int      `json:"vigor"`
	Mind          *int      `json:"mind"`
	Endurance     *int      `json:"endurance"`
	Strength      *int      `json:"strength"`
	Dexterity     *int      `json:"dexterity"`
	Intelligence  *int      `json:"intelligence"`
	Faith         *int      `json:"faith"`
	Arcane        *int      `json:"arcane"`
	Difficulty    *string   `json:"difficulty"`
	ShowcaseItems *[]string `json:"showcase_items"`
}

// fields flattens the request into a column map for a partial update.
func (r *UpdateBuildRequest) fields() map[string]interface{} {
	out := map[string]interface{}{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.StartingClass != nil {
		out["starting_class"] = *r.StartingClass
	}
	if r.Weapon != nil {
		out["weapon"] = *r.Weapon
	}
	if r.LocationName != nil {
		out["location_name"] = *r.LocationName
	}
	if r.LocationURL != nil {
		out["location_url"] = *r.LocationURL
	}
	if r.ImageURL != nil {
		out["image_url"] = *r.ImageURL
	}
	if r.VideoURL != nil {
		out["video_url"] = *r.VideoURL
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.Difficulty != nil {
		out["difficulty"] = *r.Difficulty
	}
	if r.Vigor != nil {
		out["vigor"] = *r.Vigor
	}
	if r.Mind != nil {
		out["mind"] = *r.Mind
	}
	if r.Endurance != nil {
		out["endurance"] = *r.Endurance
	}
	if r.Strength != nil {
		out["strength"] = *r.Strength
	}
	if r.Dexterity != nil {
		out["dexterity"] = *r.Dexterity
	}
	if r.Intelligence != nil {
		out["intelligence"] = *r.Intelligence
	}
	if r.Faith != nil {
		out["faith"] = *r.Faith
	}
	if r.Arcane != nil {
		out["arcane"] = *r.Arcane
	}
	if r.ShowcaseItems != nil {
		out["showcase_items"] = *r.ShowcaseItems
	}
	return out
}

// List godoc
// @Summary List all builds, newest first
// @Tags builds
// @Produce json
// @Success 200 {array} model.Build
// @Failure 500 {object} errors.ErrorResponse
// @Router /builds [get]
func (h *BuildHandler) List(c echo.Context) error {
	builds, err := h.buildService.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list builds: %v", err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, builds)
}

// Get godoc
// @Summary Get a build by id
// @Tags builds
// @Produce json
// @Param id path int true "Build ID"
// @Success 200 {object} model.Build
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /builds/{id} [get]
func (h *BuildHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	build, err := h.buildService.Get(c.Request().Context(), id)
	if err != nil {
		c.Logger().Errorf("get build %d: %v", id, err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, build)
}

// Create godoc
// @Summary Submit a new build
// @Tags builds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBuildRequest true "Build data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /builds [post]
func (h *BuildHandler) Create(c echo.Context) error {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req CreateBuildRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	build := &model.Build{
		Name:          req.Name,
		StartingClass: req.StartingClass,
		Weapon:        req.Weapon,
		LocationName:  req.LocationName,
		LocationURL:   req.LocationURL,
		ImageURL:      req.ImageURL,
		VideoURL:      req.VideoURL,
		Description:   req.Description,
		Vigor:         req.Vigor,
		Mind:          req.Mind,
		Endurance:     req.Endurance,
		Strength:      req.Strength,
		Dexterity:     req.Dexterity,
		Intelligence:  req.Intelligence,
		Faith:         req.Faith,
		Arcane:        req.Arcane,
		Difficulty:    req.Difficulty,
		ShowcaseItems: req.ShowcaseItems,
		UserID:        claims.UserID,
	}

	created, err := h.buildService.Create(c.Request().Context(), build)
	if err != nil {
		c.Logger().Errorf("create build: %v", err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "build created successfully",
		"id":      created.ID,
	})
}

// Update godoc
// @Summary Update fields of an owned build
// @Tags builds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Build ID"
// @Param request body UpdateBuildRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /builds/{id} [put]
func (h *BuildHandler) Update(c echo.Context) error {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateBuildRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.buildService.Update(c.Request().Context(), id, claims.UserID, req.fields()); err != nil {
		c.Logger().Errorf("update build %d: %v", id, err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "build updated successfully",
	})
}

// Delete godoc
// @Summary Delete an owned build
// @Tags builds
// @Produce json
// @Security BearerAuth
// @Param id path int true "Build ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /builds/{id} [delete]
func (h *BuildHandler) Delete(c echo.Context) error {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.buildService.Delete(c.Request().Context(), id, claims.UserID); err != nil {
		c.Logger().Errorf("delete build %d: %v", id, err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "build deleted successfully",
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid build id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
