package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lucidquery/lucid/internal/store"
)

// ChatsHandler serves the conversation-container collaborators that sit
// above the turn pipeline.
type ChatsHandler struct {
	Store *store.Store
}

func (h *ChatsHandler) Register(g *echo.Group, secret []byte) {
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc { return withAuth(next, secret) })
	g.GET("", h.list)
	g.POST("", h.create)
}

// List chats
//
//	@Summary	List the caller's chats
//	@Tags		chats
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		store.Chat
//	@Failure	500	{object}	HTTPError
//	@Router		/api/chats [get]
func (h *ChatsHandler) list(c echo.Context) error {
	userID := c.Get("user_id").(string)
	chats, err := h.Store.ListChats(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if chats == nil {
		chats = []store.Chat{}
	}
	return c.JSON(http.StatusOK, chats)
}

// Create chat
//
//	@Summary	Create a new chat
//	@Tags		chats
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		CreateChatRequest	true	"Chat payload"
//	@Success	201		{object}	store.Chat
//	@Failure	500		{object}	HTTPError
//	@Router		/api/chats [post]
func (h *ChatsHandler) create(c echo.Context) error {
	userID := c.Get("user_id").(string)
	var req CreateChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Name == "" {
		req.Name = "New Conversation"
	}
	chat, err := h.Store.CreateChat(c.Request().Context(), userID, req.Name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, chat)
}
