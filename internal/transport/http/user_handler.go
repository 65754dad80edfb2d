package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/domain"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/media"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/service"
)

type UserHandler struct {
	accounts *service.AccountService
	bookings *service.BookingService
	errs     errorWriter
}

type UserRoutes struct {
	Auth     *service.AuthService
	Accounts *service.AccountService
	Bookings *service.BookingService
	// RequireAuth puts every /user route behind a bearer token whose email
	// must match the email the request acts on.
	RequireAuth bool
	Logger      *logger.Logger
}

type favoriteRequest struct {
	Email string `json:"email" query:"email" validate:"required"`
	Title string `json:"title" query:"title" validate:"required"`
}

type profileRequest struct {
	Email        string  `json:"email"`
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Location     *string `json:"location"`
	MobileNumber *string `json:"mobileNumber"`
	ProfileImage *string `json:"profileImage"`
}

func RegisterUser(e *echo.Echo, routes UserRoutes) {
	log := routes.Logger
	if log == nil {
		log = logger.NewNop()
	}
	h := &UserHandler{
		accounts: routes.Accounts,
		bookings: routes.Bookings,
		errs:     errorWriter{log: log.With("handler", "user")},
	}

	var middlewares []echo.MiddlewareFunc
	if routes.RequireAuth {
		middlewares = append(middlewares, RequireAuth(routes.Auth))
	}
	g := e.Group("/user", middlewares...)
	g.POST("/favorite", h.addFavorite)
	g.DELETE("/favorite", h.removeFavorite)
	g.GET("/favorites", h.listFavorites)
	g.GET("/profile", h.getProfile)
	g.POST("/profile", h.updateProfile)
	g.POST("/profile/image", h.uploadProfileImage)
	g.POST("/book", h.book)
	g.GET("/booked", h.listBookings)
}

func (h *UserHandler) addFavorite(c echo.Context) error {
	var req favoriteRequest
	if err := c.Bind(&req); err != nil {
		return fieldError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if err := c.Validate(&req); err != nil {
		return fieldError(c, http.StatusBadRequest, "Email and title are required", "missing_fields")
	}
	if !actingAs(c, req.Email) {
		return forbidden(c)
	}

	favorites, err := h.accounts.AddFavorite(c.Request().Context(), req.Email, req.Title)
	if err != nil {
		return h.errs.writeAccountError(c, "add favorite", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"favoritePlaces": favorites})
}

func (h *UserHandler) removeFavorite(c echo.Context) error {
	var req favoriteRequest
	if err := c.Bind(&req); err != nil {
		return fieldError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if err := c.Validate(&req); err != nil {
		return fieldError(c, http.StatusBadRequest, "Email and title are required", "missing_fields")
	}
	if !actingAs(c, req.Email) {
		return forbidden(c)
	}

	favorites, err := h.accounts.RemoveFavorite(c.Request().Context(), req.Email, req.Title)
	if err != nil {
		return h.errs.writeAccountError(c, "remove favorite", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"favoritePlaces": favorites})
}

func (h *UserHandler) listFavorites(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		return fieldError(c, http.StatusBadRequest, "Email is required", "missing_fields")
	}
	if !actingAs(c, email) {
		return forbidden(c)
	}

	favorites, err := h.accounts.ListFavorites(c.Request().Context(), email)
	if err != nil {
		return h.errs.writeAccountError(c, "list favorites", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"favoritePlaces": favorites})
}

func (h *UserHandler) getProfile(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		return fieldError(c, http.StatusBadRequest, "Email is required", "missing_fields")
	}
	if !actingAs(c, email) {
		return forbidden(c)
	}

	account, err := h.accounts.GetProfile(c.Request().Context(), email)
	if err != nil {
		return h.errs.writeAccountError(c, "get profile", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": account})
}

func (h *UserHandler) updateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return fieldError(c, http.StatusBadRequest, "invalid request body", "invalid_body")
	}
	if strings.TrimSpace(req.Email) == "" {
		return fieldError(c, http.StatusBadRequest, "Email is required", "missing_fields")
	}
	if !actingAs(c, req.Email) {
		return forbidden(c)
	}

	account, err := h.accounts.UpdateProfile(c.Request().Context(), req.Email, domain.ProfileUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Location:     req.Location,
		MobileNumber: req.MobileNumber,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return h.errs.writeAccountError(c, "update profile", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": account})
}

func (h *UserHandler) uploadProfileImage(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	if email == "" {
		return fieldError(c, http.StatusBadRequest, "Email is required", "missing_fields")
	}
	if !actingAs(c, email) {
		return forbidden(c)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fieldError(c, http.StatusBadRequest, "image file is required", "missing_fields")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fieldError(c, http.StatusBadRequest, "unable to read image", "invalid_image")
	}
	defer file.Close()

	account, err := h.accounts.UploadProfileImage(c.Request().Context(), email, media.Upload{
		Reader:      file,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"user": account})
	case errors.Is(err, service.ErrStorageUnavailable):
		return fieldError(c, http.StatusServiceUnavailable, "Image upload is not available", "storage_unavailable")
	case errors.Is(err, service.ErrImageTooLarge):
		return fieldError(c, http.StatusRequestEntityTooLarge, "Image is too large", "image_too_large")
	case errors.Is(err, service.ErrInvalidImage):
		return fieldError(c, http.StatusBadRequest, "Unsupported image", "invalid_image")
	default:
		return h.errs.writeAccountError(c, "upload profile image", err)
	}
}
