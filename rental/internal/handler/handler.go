package handler

import (
	"net/http"
	"strconv"

	"github.com/Astemirdum/raingear-service/pkg/auth"
	md "github.com/Astemirdum/raingear-service/pkg/middleware"
	"github.com/Astemirdum/raingear-service/pkg/validate"
	"github.com/Astemirdum/raingear-service/rental/internal/errs"
	"github.com/Astemirdum/raingear-service/rental/internal/model"
	_ "github.com/Astemirdum/raingear-service/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	rentalSvc RentalService
	issuer    *auth.Issuer
	log       *zap.Logger
}

func New(rentalSvc RentalService, issuer *auth.Issuer, log *zap.Logger) *Handler {
	return &Handler{
		rentalSvc: rentalSvc,
		issuer:    issuer,
		log:       log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	login := e.Group("/api/v1/auth",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(baseRPS),
	)
	login.POST("/login", h.Login)
	login.POST("/activate", h.Activate)

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		md.JwtAuthentication(h.issuer),
	)

	api.POST("/rentals/borrow", h.Borrow)
	api.POST("/rentals/return", h.Return)
	api.GET("/rentals/history", h.History)

	api.GET("/accounts/me", h.GetAccount)

	api.GET("/stations", h.ListStations)
	api.GET("/stations/overview", h.Overview)
	api.GET("/stations/:stationId/gears", h.ListStationGears)

	admin := api.Group("/admin", md.RequireAdmin)
	admin.PATCH("/gears/:gearId/status", h.SetGearStatus)
	admin.PATCH("/stations/:stationId/online", h.SetStationOnline)
	admin.POST("/stations/:stationId/slots/:slotId/broken", h.MarkSlotBroken)
	admin.POST("/stations/:stationId/slots/:slotId/repaired", h.MarkSlotRepaired)
	admin.GET("/records", h.RecentRecords)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Borrow(c echo.Context) error {
	userName, err := userName(c)
	if err != nil {
		return err
	}
	var req model.BorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.rentalSvc.Borrow(c.Request().Context(), userName, req.StationID, req.SlotID)
	if err != nil {
		return c.JSON(statusCode(err), res)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Return(c echo.Context) error {
	userName, err := userName(c)
	if err != nil {
		return err
	}
	var req model.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.rentalSvc.Return(c.Request().Context(), userName, req.GearID, req.StationID, req.SlotID)
	if err != nil {
		return c.JSON(statusCode(err), res)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) History(c echo.Context) error {
	userName, err := userName(c)
	if err != nil {
		return err
	}
	limit, err := limitParam(c)
	if err != nil {
		return err
	}
	recs, err := h.rentalSvc.History(c.Request().Context(), userName, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *Handler) GetAccount(c echo.Context) error {
	userName, err := userName(c)
	if err != nil {
		return err
	}
	acc, err := h.rentalSvc.GetAccount(c.Request().Context(), userName)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, acc)
}

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	acc, err := h.rentalSvc.Login(c.Request().Context(), req.UserID, req.Name, req.Password)
	if err != nil {
		return httpError(err)
	}
	return h.issueToken(c, acc)
}

// Activate sets the first password and logs the account in.
func (h *Handler) Activate(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	acc, err := h.rentalSvc.Activate(c.Request().Context(), req.UserID, req.Name, req.Password)
	if err != nil {
		return httpError(err)
	}
	return h.issueToken(c, acc)
}

func (h *Handler) issueToken(c echo.Context, acc model.Account) error {
	token, expiresAt, err := h.issuer.Issue(acc.ID, string(acc.Role))
	if err != nil {
		h.log.Error("issue token", zap.String("user", acc.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, model.LoginResponse{Token: token, ExpiresAt: expiresAt, Account: acc})
}

func (h *Handler) ListStations(c echo.Context) error {
	stations, err := h.rentalSvc.ListStations(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stations)
}

func (h *Handler) Overview(c echo.Context) error {
	ov, err := h.rentalSvc.Overview(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ov)
}

func (h *Handler) ListStationGears(c echo.Context) error {
	stationID, err := stationParam(c)
	if err != nil {
		return err
	}
	gears, err := h.rentalSvc.ListStationGears(c.Request().Context(), stationID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, gears)
}

func (h *Handler) SetGearStatus(c echo.Context) error {
	gearID := c.Param("gearId")
	if gearID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "empty gearId")
	}
	var req model.GearStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	gear, err := h.rentalSvc.AdminSetGearStatus(c.Request().Context(), gearID, req.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, gear)
}

func (h *Handler) SetStationOnline(c echo.Context) error {
	stationID, err := stationParam(c)
	if err != nil {
		return err
	}
	var req model.StationOnlineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, err := h.rentalSvc.AdminSetStationOnline(c.Request().Context(), stationID, *req.Online)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) MarkSlotBroken(c echo.Context) error {
	stationID, slot, err := slotParams(c)
	if err != nil {
		return err
	}
	st, err := h.rentalSvc.AdminMarkSlotBroken(c.Request().Context(), stationID, slot)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) MarkSlotRepaired(c echo.Context) error {
	stationID, slot, err := slotParams(c)
	if err != nil {
		return err
	}
	st, err := h.rentalSvc.AdminMarkSlotRepaired(c.Request().Context(), stationID, slot)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) RecentRecords(c echo.Context) error {
	limit, err := limitParam(c)
	if err != nil {
		return err
	}
	recs, err := h.rentalSvc.RecentRecords(c.Request().Context(), limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, recs)
}

func userName(c echo.Context) (string, error) {
	name, ok := auth.UserName(c.Request().Context())
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, errs.ErrUserName.Error())
	}
	return name, nil
}

func stationParam(c echo.Context) (model.StationID, error) {
	id, err := strconv.Atoi(c.Param("stationId"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "stationId is invalid")
	}
	return model.StationID(id), nil
}

func slotParams(c echo.Context) (model.StationID, int, error) {
	stationID, err := stationParam(c)
	if err != nil {
		return 0, 0, err
	}
	slot, err := strconv.Atoi(c.Param("slotId"))
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "slotId is invalid")
	}
	return stationID, slot, nil
}

func limitParam(c echo.Context) (int, error) {
	limitParam := c.QueryParam("limit")
	if limitParam == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(limitParam)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "limit is invalid")
	}
	return limit, nil
}

var validationStatus = map[string]int{
	errs.ReasonAccountNotFound:    http.StatusNotFound,
	errs.ReasonStationNotFound:    http.StatusNotFound,
	errs.ReasonGearNotFound:       http.StatusNotFound,
	errs.ReasonAccountInactive:    http.StatusForbidden,
	errs.ReasonNameMismatch:       http.StatusUnauthorized,
	errs.ReasonBadCredentials:     http.StatusUnauthorized,
	errs.ReasonInsufficientCredit: http.StatusPaymentRequired,
	errs.ReasonExistingRental:     http.StatusConflict,
	errs.ReasonStationOffline:     http.StatusConflict,
	errs.ReasonSlotEmpty:          http.StatusConflict,
	errs.ReasonGearUnavailable:    http.StatusConflict,
	errs.ReasonSlotOccupied:       http.StatusConflict,
	errs.ReasonSlotBroken:         http.StatusConflict,
	errs.ReasonNoOpenRental:       http.StatusConflict,
	errs.ReasonGearMismatch:       http.StatusConflict,
	errs.ReasonGearBorrowed:       http.StatusConflict,
	errs.ReasonAccountActive:      http.StatusConflict,
}

func statusCode(err error) int {
	switch errs.KindOf(err) {
	case errs.KindValidation:
		if code, ok := validationStatus[errs.ReasonOf(err)]; ok {
			return code
		}
		return http.StatusBadRequest
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindIntegrity:
		return http.StatusInternalServerError
	}
	return http.StatusServiceUnavailable
}

func httpError(err error) error {
	return echo.NewHTTPError(statusCode(err), errs.UserMessage(err))
}
