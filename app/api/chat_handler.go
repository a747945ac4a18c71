package api

import (
	"fmt"

	"pdfrag/service"
	"pdfrag/types"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	retriever         *service.Retriever
	defaultCollection string
}

func NewChatHandler(retriever *service.Retriever, defaultCollection string) *ChatHandler {
	return &ChatHandler{
		retriever:         retriever,
		defaultCollection: defaultCollection,
	}
}

// HandleChat answers a free-text message with the single best chunk as
// plain text. A "collection::question" prefix picks the target collection;
// otherwise the configured default is used. Provider and store failures
// surface as errors here, only an empty search reads as "no match".
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var params types.ChatParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	collection, query := service.Route(params.Message, h.defaultCollection)
	if query == "" {
		return NewError(fiber.StatusBadRequest, "empty query text")
	}

	fmt.Printf("[CHAT] Routed message to collection %q, query: %s\n", collection, query)

	hits, err := h.retriever.Search(c.Context(), collection, query, types.DefaultQueryLimit, nil)
	if err != nil {
		return err
	}

	return c.SendString(service.Reduce(hits))
}
