package server

import (
	"net/http"

	"openmusic/core/validator"
	"openmusic/model"

	"github.com/gorilla/mux"
)

// UserHandler 处理用户相关的请求
type UserHandler struct {
	users UserStore
}

// NewUserHandler 创建新的用户处理器
func NewUserHandler(users UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// PostUserHandler 注册新用户
func (h *UserHandler) PostUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload model.UserPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	userID, err := h.users.AddUser(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "user added", map[string]string{"userId": userID})
}

// GetUserHandler 获取用户信息
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"user": user})
}
