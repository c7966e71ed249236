package handlers

import (
	"log/slog"
	"net/http"

	"github.com/coreshare/rental-service/internal/delivery/http/dto"
	"github.com/coreshare/rental-service/internal/usecase"
	gpudto "github.com/coreshare/rental-service/internal/usecase/dto/gpu"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type GpuHandler struct {
	Usecase usecase.GpuUsecase
	V       *validator.Validate
	Log     *slog.Logger
}

func NewGpuHandler(gpuUsecase usecase.GpuUsecase, v *validator.Validate, log *slog.Logger) *GpuHandler {
	return &GpuHandler{Usecase: gpuUsecase, V: v, Log: log}
}

// POST /v1/gpus
func (h *GpuHandler) Register(c echo.Context) error {
	var req dto.RegisterGpuRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	gpu, err := h.Usecase.RegisterGpu(c.Request().Context(), &gpudto.RegisterGpuInput{
		OwnerID:      req.OwnerID,
		Name:         req.Name,
		VramGb:       req.VramGb,
		PricePerHour: req.PricePerHour,
		Purpose:      req.Purpose,
	})
	if err != nil {
		h.Log.Error("gpu register", "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	return c.JSON(http.StatusCreated, echo.Map{"gpu": dto.FromDomainGpu(gpu)})
}

// GET /v1/gpus
func (h *GpuHandler) List(c echo.Context) error {
	onlyAvailable := c.QueryParam("available") == "true"

	gpus, err := h.Usecase.ListGpus(c.Request().Context(), onlyAvailable)
	if err != nil {
		h.Log.Error("gpu list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	out := make([]dto.GpuResponse, len(gpus))
	for i, gpu := range gpus {
		out[i] = dto.FromDomainGpu(gpu)
	}

	return c.JSON(http.StatusOK, echo.Map{"gpus": out})
}

// GET /v1/gpus/:id
func (h *GpuHandler) Get(c echo.Context) error {
	gpu, err := h.Usecase.GetGpuByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"gpu": dto.FromDomainGpu(gpu)})
}

// PATCH /v1/gpus/:id/active
func (h *GpuHandler) SetActive(c echo.Context) error {
	var req dto.SetGpuActiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	gpu, err := h.Usecase.SetGpuActive(c.Request().Context(), c.Param("id"), *req.Active)
	if err != nil {
		h.Log.Error("gpu set active", "gpu_id", c.Param("id"), "err", err)
		return respondDomainError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"gpu": dto.FromDomainGpu(gpu)})
}
