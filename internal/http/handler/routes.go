package handler

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"claimsapi/internal/httpx"
	"claimsapi/internal/model"
	"claimsapi/internal/service"
)

// FilesInitiatedMessage is the body returned once file generation succeeded.
const FilesInitiatedMessage = httpx.FilesInitiatedMessage

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, store Pinger, gatherer prometheus.Gatherer, svc service.ClaimService, log *slog.Logger) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", Metrics(gatherer))

	claims := app.Group("/api/v1/claims")
	claims.Get("/", ClaimsRoot())
	claims.Post("/", CreateClaim(svc, log))
	claims.Get("/:id", GetClaim(svc, log))
	claims.Post("/:id/summarize", SummarizeClaim(svc, log))
	claims.Post("/:id/generate", GenerateClaimFiles(svc, log))
	claims.Put("/:id/notes", UploadNotes(svc, log))
	claims.Get("/:id/files", ListClaimFiles(svc, log))
}

// HealthCheck pings the claim store.
func HealthCheck(store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Metrics serves the Prometheus exposition format.
func Metrics(gatherer prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

// ClaimsRoot godoc
// @Summary Claims API health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /api/v1/claims/ [get]
func ClaimsRoot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("OK")
	}
}

// GetClaim godoc
// @Summary Get a claim
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} model.Claim
// @Failure 404 {object} httpx.ErrorBody
// @Router /api/v1/claims/{id} [get]
func GetClaim(svc service.ClaimService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		claim, err := svc.Get(c.UserContext(), id)
		if err != nil {
			log.ErrorContext(c.UserContext(), "claim.get_failed", "claim_id", id, "error", err.Error())
			return writeServiceError(c, err)
		}
		return c.JSON(claim)
	}
}

// SummarizeClaim godoc
// @Summary Generate an AI summary of a claim
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} model.ClaimSummary
// @Failure 404 {object} httpx.ErrorBody
// @Failure 500 {object} httpx.ErrorBody
// @Router /api/v1/claims/{id}/summarize [post]
func SummarizeClaim(svc service.ClaimService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		summary, err := svc.Summarize(c.UserContext(), id)
		if err != nil {
			log.ErrorContext(c.UserContext(), "claim.summarize_failed", "claim_id", id, "error", err.Error())
			return writeServiceError(c, err)
		}
		return c.JSON(summary)
	}
}

// GenerateClaimFiles godoc
// @Summary Generate adjuster notes and customer correspondence for a claim
// @Produce plain
// @Param id path string true "Claim ID"
// @Success 200 {string} string "Files generation initiated successfully"
// @Failure 404 {object} httpx.ErrorBody
// @Failure 500 {object} httpx.ErrorBody
// @Router /api/v1/claims/{id}/generate [post]
func GenerateClaimFiles(svc service.ClaimService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		out, err := svc.GenerateFiles(c.UserContext(), id)
		if err != nil {
			log.ErrorContext(c.UserContext(), "claim.generate_failed", "claim_id", id, "error", err.Error())
			return writeServiceError(c, err)
		}
		log.InfoContext(c.UserContext(), "claim.generate_done", "claim_id", id, "files", len(out.GeneratedFiles))
		return c.SendString(FilesInitiatedMessage)
	}
}

// CreateClaim godoc
// @Summary Create a claim
// @Accept json
// @Produce json
// @Param claim body model.CreateClaimRequest true "Claim"
// @Success 200 {object} model.Claim
// @Failure 400 {object} httpx.ErrorBody
// @Failure 500 {object} httpx.ErrorBody
// @Router /api/v1/claims/ [post]
func CreateClaim(svc service.ClaimService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.CreateClaimRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		}
		claim, err := svc.Create(c.UserContext(), req)
		if err != nil {
			log.ErrorContext(c.UserContext(), "claim.create_failed", "claim_id", req.ClaimID, "error", err.Error())
			return writeServiceError(c, err)
		}
		log.InfoContext(c.UserContext(), "claim.created", "claim_id", claim.ClaimID, "customer_id", claim.CustomerID)
		return c.JSON(claim)
	}
}

// UploadNotes godoc
// @Summary Replace the notes of a claim
// @Accept plain
// @Param id path string true "Claim ID"
// @Param notes body string true "Notes text"
// @Success 204
// @Failure 400 {object} httpx.ErrorBody
// @Failure 404 {object} httpx.ErrorBody
// @Router /api/v1/claims/{id}/notes [put]
func UploadNotes(svc service.ClaimService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		body := c.Body()
		if len(body) == 0 {
			return writeError(c, fiber.StatusBadRequest, "NOTES_REQUIRED", "notes body is required")
		}
		// Copy: fasthttp reuses the request buffer after the handler returns.
		data := append([]byte(nil), body...)
		if err := svc.UploadNotes(c.UserContext(), id, bytes.NewReader(data), int64(len(data))); err != nil {
			log.ErrorContext(c.UserContext(), "claim.notes_failed", "claim_id", id, "error", err.Error())
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListClaimFiles godoc
// @Summary List download links for generated claim documents
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {array} model.FileLink
// @Failure 404 {object} httpx.ErrorBody
// @Router /api/v1/claims/{id}/files [get]
func ListClaimFiles(svc service.ClaimService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		links, err := svc.ListFiles(c.UserContext(), id)
		if err != nil {
			log.ErrorContext(c.UserContext(), "claim.files_failed", "claim_id", id, "error", err.Error())
			return writeServiceError(c, err)
		}
		return c.JSON(links)
	}
}
