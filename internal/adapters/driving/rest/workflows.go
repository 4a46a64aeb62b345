package rest

import (
	"github.com/gofiber/fiber/v3"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

// importFrom returns the handler for one import source.
func (s *Server) importFrom(source domain.ImportSource) fiber.Handler {
	return func(c fiber.Ctx) error {
		result, err := s.services.Importer.ImportFrom(c.Context(), source, userID(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{
			"success":       true,
			"workflows":     result.Workflows,
			"importedCount": result.ImportedCount,
			"total":         result.Total,
			"skipped":       result.Skipped,
			"failed":        result.Failed,
		})
	}
}

func (s *Server) listWorkflows(c fiber.Ctx) error {
	workflows, err := s.services.Workflows.ListMine(c.Context(), userID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": workflows})
}

func (s *Server) getWorkflow(c fiber.Ctx) error {
	workflow, err := s.services.Workflows.View(c.Context(), userID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": workflow})
}
