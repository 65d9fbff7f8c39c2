package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
)

func TestAlbumEndpoints(t *testing.T) {
	s := newTestServer(t)

	res := s.do(t, http.MethodPost, "/albums", "", map[string]interface{}{"name": "Viva la Vida", "year": 2008})
	s.expect(t, res, http.StatusCreated, "success")
	albumID := res.body.Data["albumId"].(string)

	res = s.do(t, http.MethodPost, "/songs", "", map[string]interface{}{
		"title": "Lovers in Japan", "performer": "Coldplay", "year": 2008, "genre": "Rock", "albumId": albumID,
	})
	s.expect(t, res, http.StatusCreated, "success")

	res = s.do(t, http.MethodGet, "/albums/"+albumID, "", nil)
	s.expect(t, res, http.StatusOK, "success")
	album := res.body.Data["album"].(map[string]interface{})
	if album["name"] != "Viva la Vida" {
		t.Errorf("unexpected album %v", album)
	}
	if songs := album["songs"].([]interface{}); len(songs) != 1 {
		t.Errorf("expected 1 album song, got %d", len(songs))
	}
	if v, ok := album["coverUrl"]; !ok || v != nil {
		t.Errorf("expected null coverUrl, got %v", v)
	}

	res = s.do(t, http.MethodPut, "/albums/"+albumID, "", map[string]interface{}{"name": "Viva", "year": 2009})
	s.expect(t, res, http.StatusOK, "success")

	res = s.do(t, http.MethodDelete, "/albums/"+albumID, "", nil)
	s.expect(t, res, http.StatusOK, "success")

	res = s.do(t, http.MethodGet, "/albums/"+albumID, "", nil)
	s.expect(t, res, http.StatusNotFound, "fail")

	res = s.do(t, http.MethodPut, "/albums/"+albumID, "", map[string]interface{}{"name": "Viva", "year": 2009})
	s.expect(t, res, http.StatusNotFound, "fail")
}

func coverRequest(t *testing.T, albumID, contentType string, size int) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="cover"; filename="cover.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(bytes.Repeat([]byte{0x89}, size))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/albums/"+albumID+"/covers", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestAlbumCoverUpload(t *testing.T) {
	s := newTestServer(t)

	res := s.do(t, http.MethodPost, "/albums", "", map[string]interface{}{"name": "Covered", "year": 2020})
	albumID := res.body.Data["albumId"].(string)

	tests := []struct {
		name        string
		albumID     string
		contentType string
		size        int
		code        int
	}{
		{"valid image", albumID, "image/png", 1024, http.StatusCreated},
		{"not an image", albumID, "text/plain", 1024, http.StatusBadRequest},
		{"too large", albumID, "image/png", 600000, http.StatusBadRequest},
		{"unknown album", "album-missing", "image/png", 1024, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, coverRequest(t, tt.albumID, tt.contentType, tt.size))
			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d: %s", tt.code, rec.Code, rec.Body.String())
			}
		})
	}

	res = s.do(t, http.MethodGet, "/albums/"+albumID, "", nil)
	coverURL, _ := res.body.Data["album"].(map[string]interface{})["coverUrl"].(string)
	if !strings.HasPrefix(coverURL, "http://minio.test/openmusic/covers/"+albumID) {
		t.Errorf("unexpected cover url %q", coverURL)
	}
	if len(s.storage.objects) != 1 {
		t.Errorf("expected exactly one stored cover, got %d", len(s.storage.objects))
	}
}

func TestAlbumLikeEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "fan")

	res := s.do(t, http.MethodPost, "/albums", "", map[string]interface{}{"name": "Liked", "year": 2020})
	albumID := res.body.Data["albumId"].(string)
	path := "/albums/" + albumID + "/likes"

	res = s.do(t, http.MethodPost, path, "", nil)
	s.expect(t, res, http.StatusUnauthorized, "fail")

	res = s.do(t, http.MethodPost, path, token, nil)
	s.expect(t, res, http.StatusCreated, "success")

	res = s.do(t, http.MethodPost, path, token, nil)
	s.expect(t, res, http.StatusBadRequest, "fail")

	res = s.do(t, http.MethodGet, path, "", nil)
	s.expect(t, res, http.StatusOK, "success")
	if res.body.Data["likes"].(float64) != 1 || res.header.Get("X-Data-Source") != "" {
		t.Errorf("expected 1 like from the database, got %v (%q)", res.body.Data["likes"], res.header.Get("X-Data-Source"))
	}

	res = s.do(t, http.MethodGet, path, "", nil)
	if res.header.Get("X-Data-Source") != "cache" {
		t.Error("second read should be served from cache")
	}

	res = s.do(t, http.MethodDelete, path, token, nil)
	s.expect(t, res, http.StatusOK, "success")

	res = s.do(t, http.MethodGet, path, "", nil)
	if res.body.Data["likes"].(float64) != 0 || res.header.Get("X-Data-Source") != "" {
		t.Errorf("unlike should invalidate the cache, got %v (%q)", res.body.Data["likes"], res.header.Get("X-Data-Source"))
	}
}

func TestDeletedAlbumLikesNotServedFromCache(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "fan")

	res := s.do(t, http.MethodPost, "/albums", "", map[string]interface{}{"name": "Gone", "year": 2021})
	albumID := res.body.Data["albumId"].(string)
	path := "/albums/" + albumID + "/likes"

	res = s.do(t, http.MethodPost, path, token, nil)
	s.expect(t, res, http.StatusCreated, "success")
	s.do(t, http.MethodGet, path, "", nil)
	res = s.do(t, http.MethodGet, path, "", nil)
	if res.header.Get("X-Data-Source") != "cache" {
		t.Fatal("second read should be served from cache")
	}

	res = s.do(t, http.MethodDelete, "/albums/"+albumID, "", nil)
	s.expect(t, res, http.StatusOK, "success")

	res = s.do(t, http.MethodGet, path, "", nil)
	s.expect(t, res, http.StatusNotFound, "fail")
}
