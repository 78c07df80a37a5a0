package rest

import (
	"chat-mirror/auth"
	"chat-mirror/services"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	messages        services.IMessageService
	chats           services.IChatService
	devices         DeviceRegistry
	log             *slog.Logger
	defaultPageSize int
}

func NewHandler(messages services.IMessageService, chats services.IChatService, devices DeviceRegistry,
	log *slog.Logger, defaultPageSize int) *Handler {
	return &Handler{
		messages:        messages,
		chats:           chats,
		devices:         devices,
		log:             log,
		defaultPageSize: defaultPageSize,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/messages", func(r chi.Router) {
		r.Post("/send", h.handleSend)
		r.Get("/get/{friendId}", h.handleGetMessages)
		r.Delete("/delete/{messageId}", h.handleDeleteMessage)
		r.Patch("/status/{messageId}", h.handleUpdateStatus)
	})
	r.Route("/chats", func(r chi.Router) {
		r.Get("/", h.handleListChats)
		r.Delete("/{chatId}", h.handleDeleteChat)
	})
	r.Put("/users/device-token", h.handleRegisterDevice)
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ReceiverID uint    `json:"receiverId"`
		Content    *string `json:"content"`
		MediaURL   *string `json:"media_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())

	res, err := h.messages.Send(r.Context(), services.SendCommand{
		SenderID:   userID,
		ReceiverID: payload.ReceiverID,
		Content:    payload.Content,
		MediaURL:   payload.MediaURL,
	})
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	friendID, ok := uintParam(w, r, "friendId")
	if !ok {
		return
	}
	page, ok := intQuery(w, r, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := intQuery(w, r, "pageSize", h.defaultPageSize)
	if !ok {
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())

	res, err := h.messages.GetMessages(r.Context(), services.MessagesQuery{
		UserID:   userID,
		FriendID: friendID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *Handler) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	if err := h.messages.DeleteMessage(r.Context(), userID, chi.URLParam(r, "messageId")); err != nil {
		h.respondFailure(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "message deleted")
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status, err := h.messages.UpdateStatus(r.Context(), chi.URLParam(r, "messageId"), payload.Status)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "status updated", "status": string(status)})
}

func (h *Handler) handleListChats(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	chats, err := h.chats.ListChats(r.Context(), userID)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"chats": chats})
}

func (h *Handler) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := uintParam(w, r, "chatId")
	if !ok {
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())
	if err := h.chats.DeleteChat(r.Context(), userID, chatID); err != nil {
		h.respondFailure(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "chat deleted")
}

func (h *Handler) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DeviceToken string `json:"deviceToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.DeviceToken == "" {
		respondError(w, http.StatusBadRequest, "deviceToken is required")
		return
	}
	userID, _ := auth.UserIDFromContext(r.Context())
	if err := h.devices.RegisterDevice(r.Context(), userID, payload.DeviceToken); err != nil {
		h.respondFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func uintParam(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || v == 0 {
		respondError(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return uint(v), true
}

func intQuery(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return v, true
}
