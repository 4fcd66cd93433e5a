package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/middleware"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/response"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/services"
)

type AuthHandler struct {
	Auth AuthService
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type roleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user"`
}

func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Auth.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "registration successful", res)
}

func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "login successful", res)
}

func (h AuthHandler) Me(c *gin.Context) {
	u, err := h.Auth.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "profile retrieved", u)
}

func (h AuthHandler) ListUsers(c *gin.Context) {
	list, page, err := h.Auth.ListUsers(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Page(c, "users retrieved", list, page)
}

func (h AuthHandler) UpdateRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req roleRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Auth.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "role updated", u)
}
