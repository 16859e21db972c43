package controller

import (
	"strconv"

	"smarterstarts-be/internal/dto"
	"smarterstarts-be/internal/mapper"
	"smarterstarts-be/internal/outcome"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultOutcomeLimit = 20
	maxOutcomeLimit     = 200
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	FanOut(ctx *fiber.Ctx) error
}

type healthController struct {
	reader outcome.Reader
}

func NewHealthController(reader outcome.Reader) IHealthController {
	return &healthController{reader: reader}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health/v1")
	h.Get("/fanout", c.FanOut)
}

// FanOut lists recent fan-out runs and failure counts per sink. ?limit= caps the
// list.
func (c *healthController) FanOut(ctx *fiber.Ctx) error {
	limit := defaultOutcomeLimit
	if raw := ctx.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxOutcomeLimit {
		limit = maxOutcomeLimit
	}

	outcomes, err := c.reader.Recent(ctx.UserContext(), limit)
	if err != nil {
		return err
	}

	res := dto.FanOutSummaryResponse{
		Status:         "ok",
		FailuresBySink: outcome.FailuresBySink(outcomes),
		Outcomes:       make([]dto.FanOutOutcomeDTO, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		res.Outcomes = append(res.Outcomes, toOutcomeDTO(o))
	}
	return ctx.JSON(res)
}

func toOutcomeDTO(o outcome.Outcome) dto.FanOutOutcomeDTO {
	out := dto.FanOutOutcomeDTO{
		RunId:     o.RunId,
		Kind:      o.Kind,
		StartedAt: mapper.FormatTimestamp(o.StartedAt),
		Failed:    []string{},
		Sinks:     make([]dto.SinkReportDTO, 0, len(o.Results)),
	}
	for _, r := range o.Results {
		out.Sinks = append(out.Sinks, dto.SinkReportDTO{
			Sink:       r.Sink,
			Status:     string(r.Status),
			AssignedId: r.AssignedId,
			Error:      r.Error,
			DurationMs: r.DurationMs,
		})
		if r.Status != outcome.StatusOK {
			out.Failed = append(out.Failed, r.Sink)
		}
	}
	return out
}
