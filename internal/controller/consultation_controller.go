package controller

import (
	"smarterstarts-be/internal/dto"
	"smarterstarts-be/internal/pkg/serverutils"
	"smarterstarts-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const LiveMessage = "SmarterStarts backend is live"

type IConsultationController interface {
	RegisterRoutes(r fiber.Router)
	Home(ctx *fiber.Ctx) error
	Recommend(ctx *fiber.Ctx) error
	SubmitFeedback(ctx *fiber.Ctx) error
}

type consultationController struct {
	service service.IConsultationService
}

func NewConsultationController(service service.IConsultationService) IConsultationController {
	return &consultationController{service: service}
}

func (c *consultationController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Home)
	r.Post("/recommend", c.Recommend)
	r.Post("/submit_feedback", c.SubmitFeedback)
}

func (c *consultationController) Home(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{Status: "ok", Message: LiveMessage})
}

func (c *consultationController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Recommend(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *consultationController) SubmitFeedback(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SubmitFeedback(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
