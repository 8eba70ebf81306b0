package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/realtyhub/listing-api/internal/api/metrics"
	"github.com/realtyhub/listing-api/internal/core/ports"
)

// HomeHandler handles HTTP requests for listings and inquiries.
type HomeHandler struct {
	service ports.HomeService
}

func NewHomeHandler(service ports.HomeService) *HomeHandler {
	return &HomeHandler{service: service}
}

// List handles GET /home.
//
// @Summary      List homes
// @Tags         homes
// @Produce      json
// @Param        city          query     string  false  "City"
// @Param        minPrice      query     int     false  "Minimum price"
// @Param        maxPrice      query     int     false  "Maximum price"
// @Param        beds          query     int     false  "Number of bedrooms"
// @Param        baths         query     int     false  "Number of bathrooms"
// @Param        propertyType  query     string  false  "RESIDENTIAL or CONDO"
// @Param        page          query     int     false  "Page (1-based)"
// @Param        limit         query     int     false  "Page size (max 100)"
// @Success      200           {object}  listHomesResponse
// @Failure      400           {object}  errorResponse
// @Router       /home [get]
func (h *HomeHandler) List(c echo.Context) error {
	var q listHomesQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	filter := toHomeFilter(q).Normalized()
	homes, err := h.service.ListHomes(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listHomesResponse{
		Data: toHomeSummaries(homes),
		Pagination: &paginationResponse{
			Page:  filter.Page,
			Limit: filter.Limit,
			Count: len(homes),
		},
	})
}

// Get handles GET /home/:id.
//
// @Summary      Get a home
// @Tags         homes
// @Produce      json
// @Param        id   path      string  true  "Home id (uuid)"
// @Success      200  {object}  homeResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /home/{id} [get]
func (h *HomeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	home, err := h.service.GetHome(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHomeResponse(home))
}

// Search handles GET /home/search/:query.
//
// @Summary      Search homes by city, state or zip
// @Tags         homes
// @Produce      json
// @Param        query  path      string  true  "Free text"
// @Success      200    {object}  listHomesResponse
// @Failure      400    {object}  errorResponse
// @Router       /home/search/{query} [get]
func (h *HomeHandler) Search(c echo.Context) error {
	homes, err := h.service.SearchHomes(c.Request().Context(), c.Param("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listHomesResponse{Data: toHomeSummaries(homes)})
}

// Create handles POST /home.
//
// @Summary      List a new home
// @Tags         homes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createHomeRequest  true  "Listing details"
// @Success      201   {object}  homeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /home [post]
func (h *HomeHandler) Create(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createHomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	home, err := h.service.CreateHome(c.Request().Context(), toCreateHomeInput(req), caller)
	if err != nil {
		return err
	}

	metrics.HomesCreatedTotal.WithLabelValues(string(home.PropertyType)).Inc()
	return c.JSON(http.StatusCreated, toHomeResponse(home))
}

// Update handles PATCH /home/:id.
//
// @Summary      Update a home
// @Description  Only the owning realtor or an admin may update a listing.
// @Tags         homes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Home id (uuid)"
// @Param        body  body      updateHomeRequest  true  "Fields to change"
// @Success      200   {object}  homeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /home/{id} [patch]
func (h *HomeHandler) Update(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateHomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	home, err := h.service.UpdateHome(c.Request().Context(), id, toHomeUpdate(req), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHomeResponse(home))
}

// Delete handles DELETE /home/:id.
//
// @Summary      Delete a home
// @Tags         homes
// @Security     BearerAuth
// @Param        id   path  string  true  "Home id (uuid)"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /home/{id} [delete]
func (h *HomeHandler) Delete(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteHome(c.Request().Context(), id, caller); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Inquire handles POST /home/:id/inquire.
//
// @Summary      Send an inquiry to the listing realtor
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Home id (uuid)"
// @Param        body  body      inquireRequest  true  "Message"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /home/{id}/inquire [post]
func (h *HomeHandler) Inquire(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req inquireRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Inquire(c.Request().Context(), id, req.Message, caller)
	if err != nil {
		return err
	}

	metrics.InquiriesTotal.Inc()
	return c.JSON(http.StatusCreated, toMessageResponse(ports.InquiryView{
		Message:   msg,
		BuyerName: caller.Name,
	}))
}

// Messages handles GET /home/:id/messages.
//
// @Summary      List inquiries for a listing
// @Description  Only the realtor who owns the listing may read its inquiries.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Home id (uuid)"
// @Success      200  {object}  listMessagesResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /home/{id}/messages [get]
func (h *HomeHandler) Messages(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	views, err := h.service.Messages(c.Request().Context(), id, caller)
	if err != nil {
		return err
	}

	out := make([]messageResponse, len(views))
	for i, v := range views {
		out[i] = toMessageResponse(v)
	}
	return c.JSON(http.StatusOK, listMessagesResponse{Data: out})
}

// RealtorHomes handles GET /home/:id/homes.
//
// @Summary      List the homes of a realtor
// @Tags         homes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Realtor id (uuid)"
// @Success      200  {object}  listHomesResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /home/{id}/homes [get]
func (h *HomeHandler) RealtorHomes(c echo.Context) error {
	realtorID, err := pathID(c)
	if err != nil {
		return err
	}

	homes, err := h.service.ListRealtorHomes(c.Request().Context(), realtorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listHomesResponse{Data: toHomeSummaries(homes)})
}
