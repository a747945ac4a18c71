package api

import (
	"pdfrag/service"
	"pdfrag/types"

	"github.com/gofiber/fiber/v2"
)

type QueryHandler struct {
	retriever *service.Retriever
}

func NewQueryHandler(retriever *service.Retriever) *QueryHandler {
	return &QueryHandler{
		retriever: retriever,
	}
}

// HandleQuery runs a semantic search against the collection from the URL.
func (h *QueryHandler) HandleQuery(c *fiber.Ctx) error {
	collection := c.Params("collection")

	var params types.QueryParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	if params.Limit == 0 {
		params.Limit = types.DefaultQueryLimit
	}

	hits, err := h.retriever.Search(c.Context(), collection, params.Query, params.Limit, params.ScoreThreshold)
	if err != nil {
		return err
	}

	if hits == nil {
		hits = []types.SearchHit{}
	}

	return c.JSON(types.QueryResponse{
		Query:        params.Query,
		Collection:   collection,
		Results:      hits,
		TotalResults: len(hits),
	})
}
