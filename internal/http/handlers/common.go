package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain/models"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/response"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/utils"
)

// parseID reads a positive integer path parameter, answering 400 otherwise.
func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(param)), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, domain.ValidationError{Field: param, Msg: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// bindJSON ensures body is present and parsable.
func bindJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		response.Error(c, domain.ValidationError{Msg: "request body is required"})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, bindError(err))
		return false
	}
	return true
}

// bindError keeps validator errors for the field list; any other decode
// failure is a plain 400.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return err
	}
	return domain.ValidationError{Msg: "invalid request body", Err: err}
}

func pageFromQuery(c *gin.Context) domain.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))
	return domain.Pagination{Page: page, PageSize: size}.Normalize()
}

func parseDateField(field, v string) (models.Date, error) {
	d, err := models.ParseDate(v)
	if err != nil {
		return models.Date{}, domain.ValidationError{Field: field, Msg: "must be a date (YYYY-MM-DD)", Err: err}
	}
	return d, nil
}

func parseTimeField(field, v string) (time.Time, error) {
	t, err := utils.ParseDateTime(v)
	if err != nil {
		return time.Time{}, domain.ValidationError{Field: field, Msg: "must be a date-time (RFC3339)", Err: err}
	}
	return t, nil
}

func optionalDate(field string, v *string) (*models.Date, error) {
	if v == nil {
		return nil, nil
	}
	d, err := parseDateField(field, *v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalTime(field string, v *string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, err := parseTimeField(field, *v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
