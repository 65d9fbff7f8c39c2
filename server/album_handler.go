package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"openmusic/core/apperror"
	"openmusic/core/validator"
	"openmusic/model"

	"github.com/gorilla/mux"
)

// multipart framing allowance on top of the cover itself
const coverFormOverhead = 64 << 10

// AlbumHandler 处理专辑相关的请求
type AlbumHandler struct {
	albums AlbumStore
	likes  AlbumLikes
	covers ObjectStorage
}

// NewAlbumHandler creates an AlbumHandler. covers may be nil.
func NewAlbumHandler(albums AlbumStore, likes AlbumLikes, covers ObjectStorage) *AlbumHandler {
	return &AlbumHandler{albums: albums, likes: likes, covers: covers}
}

// PostAlbumHandler 创建新专辑
func (h *AlbumHandler) PostAlbumHandler(w http.ResponseWriter, r *http.Request) {
	var payload model.AlbumPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	albumID, err := h.albums.AddAlbum(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "album added", map[string]string{"albumId": albumID})
}

// GetAlbumHandler 获取专辑详情及其歌曲
func (h *AlbumHandler) GetAlbumHandler(w http.ResponseWriter, r *http.Request) {
	album, err := h.albums.GetAlbumByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"album": album})
}

// PutAlbumHandler 更新专辑信息
func (h *AlbumHandler) PutAlbumHandler(w http.ResponseWriter, r *http.Request) {
	var payload model.AlbumPayload
	if err := validator.DecodeJSON(r.Body, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.albums.EditAlbumByID(r.Context(), mux.Vars(r)["id"], payload); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "album updated", nil)
}

// DeleteAlbumHandler 删除专辑
func (h *AlbumHandler) DeleteAlbumHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.likes.DeleteAlbum(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "album deleted", nil)
}

// PostAlbumCoverHandler uploads the multipart field "cover" to object
// storage and stores its URL on the album.
func (h *AlbumHandler) PostAlbumCoverHandler(w http.ResponseWriter, r *http.Request) {
	albumID := mux.Vars(r)["id"]
	if err := h.albums.VerifyAlbumExists(r.Context(), albumID); err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, validator.MaxCoverSize+coverFormOverhead)
	if err := r.ParseMultipartForm(validator.MaxCoverSize + coverFormOverhead); err != nil {
		writeError(w, r, apperror.Wrap(apperror.KindInvariant,
			fmt.Sprintf("\"cover\" must be a multipart upload of at most %d bytes", validator.MaxCoverSize), err))
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		writeError(w, r, apperror.Wrap(apperror.KindInvariant, "\"cover\" is required", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if err := validator.ImageHeaders(contentType, header.Size); err != nil {
		writeError(w, r, err)
		return
	}

	name := fmt.Sprintf("covers/%s-%d%s", albumID, time.Now().UnixNano(), strings.ToLower(filepath.Ext(header.Filename)))
	url, err := h.covers.PutObject(r.Context(), name, file, header.Size, contentType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.albums.UpdateAlbumCover(r.Context(), albumID, url); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "cover uploaded", map[string]string{"coverUrl": url})
}

// PostAlbumLikeHandler 点赞专辑
func (h *AlbumHandler) PostAlbumLikeHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := h.likes.LikeAlbum(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "album liked", nil)
}

// DeleteAlbumLikeHandler 取消点赞
func (h *AlbumHandler) DeleteAlbumLikeHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	if err := h.likes.UnlikeAlbum(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "album unliked", nil)
}

// GetAlbumLikesHandler returns the like count, marking cached answers with
// the X-Data-Source header.
func (h *AlbumHandler) GetAlbumLikesHandler(w http.ResponseWriter, r *http.Request) {
	likes, fromCache, err := h.likes.GetAlbumLikes(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	if fromCache {
		w.Header().Set("X-Data-Source", "cache")
	}
	writeSuccess(w, http.StatusOK, "", map[string]int{"likes": likes})
}
