package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/middleware"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/response"
)

// CatalogHandler serves packages and hotels.
type CatalogHandler struct {
	Catalog CatalogService
}

type packageRequest struct {
	Name         string       `json:"name" binding:"required"`
	Description  string       `json:"description"`
	Type         string       `json:"type" binding:"required"`
	Price        domain.Money `json:"price"`
	DurationDays int          `json:"duration_days" binding:"required,min=1"`
	Destination  string       `json:"destination"`
	ImageURL     string       `json:"image_url"`
	IsActive     *bool        `json:"is_active"`
}

type hotelRequest struct {
	Name        string `json:"name" binding:"required"`
	City        string `json:"city" binding:"required"`
	Country     string `json:"country" binding:"required"`
	Stars       int    `json:"stars" binding:"min=0,max=5"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// ListPackages is public; admins also see inactive packages.
func (h CatalogHandler) ListPackages(c *gin.Context) {
	filter := models.PackageFilter{Type: c.Query("type")}
	list, page, err := h.Catalog.ListPackages(c.Request.Context(), middleware.Access(c), filter, pageFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, "packages retrieved", list, page)
}

func (h CatalogHandler) GetPackage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.Catalog.GetPackage(c.Request.Context(), middleware.Access(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "package retrieved", p)
}

func (h CatalogHandler) CreatePackage(c *gin.Context) {
	var req packageRequest
	if !bindJSON(c, &req) {
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p, err := h.Catalog.CreatePackage(c.Request.Context(), models.Package{
		Name:         req.Name,
		Description:  req.Description,
		Type:         req.Type,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Destination:  req.Destination,
		ImageURL:     req.ImageURL,
		IsActive:     active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "package created", p)
}

func (h CatalogHandler) UpdatePackage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var upd models.PackageUpdate
	if !bindJSON(c, &upd) {
		return
	}
	p, err := h.Catalog.UpdatePackage(c.Request.Context(), id, upd)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "package updated", p)
}

func (h CatalogHandler) DeletePackage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeletePackage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "package deleted", nil)
}

func (h CatalogHandler) ListHotels(c *gin.Context) {
	list, err := h.Catalog.ListHotels(c.Request.Context(), c.Query("city"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "hotels retrieved", list)
}

func (h CatalogHandler) GetHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	hotel, err := h.Catalog.GetHotel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "hotel retrieved", hotel)
}

func (h CatalogHandler) CreateHotel(c *gin.Context) {
	var req hotelRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel, err := h.Catalog.CreateHotel(c.Request.Context(), models.Hotel{
		Name:        req.Name,
		City:        req.City,
		Country:     req.Country,
		Stars:       req.Stars,
		Address:     req.Address,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "hotel created", hotel)
}

func (h CatalogHandler) UpdateHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var upd models.HotelUpdate
	if !bindJSON(c, &upd) {
		return
	}
	hotel, err := h.Catalog.UpdateHotel(c.Request.Context(), id, upd)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "hotel updated", hotel)
}

func (h CatalogHandler) DeleteHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteHotel(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "hotel deleted", nil)
}
