package handler

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/deppfellow/world-api/internal/errs"
	"github.com/deppfellow/world-api/internal/middleware"
	"github.com/deppfellow/world-api/internal/model"
	"github.com/deppfellow/world-api/internal/server"
	"github.com/deppfellow/world-api/internal/service"
	"github.com/deppfellow/world-api/internal/sqlerr"
	"github.com/deppfellow/world-api/internal/validation"
	"github.com/labstack/echo/v4"
)

type GetCityRequest struct {
	Name string `param:"name" validate:"required"`
}

func (r *GetCityRequest) Validate() error {
	return validation.Struct(r)
}

type CreateCityRequest struct {
	Name        string `json:"name" validate:"required"`
	CountryCode string `json:"countryCode" validate:"required,len=3"`
	District    string `json:"district" validate:"required"`
	Population  *int64 `json:"population" validate:"required,min=0,max=2147483647"`
}

func (r *CreateCityRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateCityRequest) Draft() model.City {
	return model.City{
		Name:        r.Name,
		CountryCode: r.CountryCode,
		District:    r.District,
		Population:  *r.Population,
	}
}

type CityRatioResponse struct {
	City  model.City `json:"city"`
	Ratio float64    `json:"ratio"`
}

type CityHandler struct {
	Handler
	services *service.Services
}

func NewCityHandler(s *server.Server, services *service.Services) *CityHandler {
	return &CityHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// cityName returns the bound path name decoded. Echo routes on
// URL.RawPath when the request carries escapes that the decoded path
// cannot represent (such as %2F), and then leaves params escaped.
func cityName(c echo.Context, req *GetCityRequest) (string, error) {
	if c.Request().URL.RawPath == "" {
		return req.Name, nil
	}

	name, err := url.PathUnescape(req.Name)
	if err != nil {
		return "", errs.NewBadRequestError("Invalid city name", true, nil,
			[]errs.FieldError{{Field: "name", Error: "is not a valid path segment"}}, nil)
	}
	return name, nil
}

// GetCity answers GET /cities/:name.
func (h *CityHandler) GetCity(c echo.Context, req *GetCityRequest) (*model.City, error) {
	name, err := cityName(c, req)
	if err != nil {
		return nil, err
	}

	city, err := h.services.Lookup.Lookup(c.Request().Context(), name)
	if err != nil {
		return nil, h.translate(c, err)
	}
	if city == nil {
		return nil, noSuchCity(name)
	}
	return city, nil
}

// CreateCity answers POST /cities.
func (h *CityHandler) CreateCity(c echo.Context, req *CreateCityRequest) (model.City, error) {
	city, err := h.services.Registration.Register(c.Request().Context(), req.Draft())
	if err != nil {
		return model.City{}, h.translate(c, err)
	}
	return city, nil
}

// GetCityRatio answers GET /cities/:name/ratio.
func (h *CityHandler) GetCityRatio(c echo.Context, req *GetCityRequest) (CityRatioResponse, error) {
	ctx := c.Request().Context()

	name, err := cityName(c, req)
	if err != nil {
		return CityRatioResponse{}, err
	}

	city, err := h.services.Lookup.Lookup(ctx, name)
	if err != nil {
		return CityRatioResponse{}, h.translate(c, err)
	}
	if city == nil {
		return CityRatioResponse{}, noSuchCity(name)
	}

	ratio, err := h.services.Ratio.ComputeRatio(ctx, *city)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return CityRatioResponse{}, errs.NewNotFoundError(
				fmt.Sprintf("No such country Code = %s", city.CountryCode), true, nil)
		case errors.Is(err, model.ErrDivisionUndefined):
			return CityRatioResponse{}, errs.NewUnprocessableEntityError(
				fmt.Sprintf("Population ratio undefined: country %s has no population", city.CountryCode), true, nil)
		}
		return CityRatioResponse{}, h.translate(c, err)
	}

	return CityRatioResponse{City: *city, Ratio: ratio}, nil
}

func noSuchCity(name string) *errs.HTTPError {
	return errs.NewNotFoundError(fmt.Sprintf("No such city Name = %s", name), true, nil)
}

// translate maps service errors onto HTTP errors. A store failure caused
// by a table constraint is the client's input and becomes a 400 through
// sqlerr; any other store failure is logged here with its cause and
// leaves as a bare 500.
func (h *CityHandler) translate(c echo.Context, err error) error {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return errs.NewBadRequestError(validation.ValidationFailedMessage, true, nil,
			validation.FieldErrors(validationErr.Err), nil)
	}

	if sqlerr.IsConstraintViolation(err) {
		middleware.GetLogger(c).Warn().Err(err).Msg("city rejected by store constraint")
		return sqlerr.HandleError(err)
	}

	middleware.GetLogger(c).Error().Err(err).Msg("city store failure")
	return errs.NewInternalServerError()
}
