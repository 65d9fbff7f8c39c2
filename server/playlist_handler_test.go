package server

import (
	"net/http"
	"testing"
)

func addSong(t *testing.T, s *testServer, title string) string {
	t.Helper()
	res := s.do(t, http.MethodPost, "/songs", "", map[string]interface{}{"title": title, "performer": "Band", "year": 2020, "genre": "Pop"})
	s.expect(t, res, http.StatusCreated, "success")
	return res.body.Data["songId"].(string)
}

func TestPlaylistCollaborationFlow(t *testing.T) {
	s := newTestServer(t)
	_, ownerToken := s.register(t, "owner")
	friendID, friendToken := s.register(t, "friend")
	_, strangerToken := s.register(t, "stranger")
	first := addSong(t, s, "First")
	second := addSong(t, s, "Second")

	res := s.do(t, http.MethodPost, "/playlists", ownerToken, map[string]string{"name": "Road Trip"})
	s.expect(t, res, http.StatusCreated, "success")
	playlistID := res.body.Data["playlistId"].(string)
	songsPath := "/playlists/" + playlistID + "/songs"

	res = s.do(t, http.MethodPost, songsPath, ownerToken, map[string]string{"songId": first})
	s.expect(t, res, http.StatusCreated, "success")

	res = s.do(t, http.MethodPost, songsPath, friendToken, map[string]string{"songId": second})
	s.expect(t, res, http.StatusForbidden, "fail")

	res = s.do(t, http.MethodPost, "/collaborations", friendToken, map[string]string{"playlistId": playlistID, "userId": friendID})
	s.expect(t, res, http.StatusForbidden, "fail")

	res = s.do(t, http.MethodPost, "/collaborations", ownerToken, map[string]string{"playlistId": playlistID, "userId": "user-missing"})
	s.expect(t, res, http.StatusNotFound, "fail")

	res = s.do(t, http.MethodPost, "/collaborations", ownerToken, map[string]string{"playlistId": playlistID, "userId": friendID})
	s.expect(t, res, http.StatusCreated, "success")
	if res.body.Data["collaborationId"] == "" {
		t.Error("missing collaborationId")
	}

	res = s.do(t, http.MethodPost, songsPath, friendToken, map[string]string{"songId": second})
	s.expect(t, res, http.StatusCreated, "success")

	res = s.do(t, http.MethodPost, songsPath, friendToken, map[string]string{"songId": "song-missing"})
	s.expect(t, res, http.StatusNotFound, "fail")

	res = s.do(t, http.MethodGet, songsPath, friendToken, nil)
	s.expect(t, res, http.StatusOK, "success")
	playlist := res.body.Data["playlist"].(map[string]interface{})
	songs := playlist["songs"].([]interface{})
	if playlist["username"] != "owner" || len(songs) != 2 {
		t.Fatalf("unexpected playlist %v", playlist)
	}
	if songs[0].(map[string]interface{})["id"] != first {
		t.Errorf("songs should be in insertion order, got %v", songs)
	}

	res = s.do(t, http.MethodGet, "/playlists", friendToken, nil)
	if lists := res.body.Data["playlists"].([]interface{}); len(lists) != 1 {
		t.Errorf("collaborator should see the shared playlist, got %v", lists)
	}

	res = s.do(t, http.MethodGet, songsPath, strangerToken, nil)
	s.expect(t, res, http.StatusForbidden, "fail")

	res = s.do(t, http.MethodDelete, songsPath, friendToken, map[string]string{"songId": first})
	s.expect(t, res, http.StatusOK, "success")

	res = s.do(t, http.MethodGet, "/playlists/"+playlistID+"/activities", ownerToken, nil)
	s.expect(t, res, http.StatusOK, "success")
	if res.body.Data["playlistId"] != playlistID {
		t.Errorf("unexpected playlistId %v", res.body.Data["playlistId"])
	}
	activities := res.body.Data["activities"].([]interface{})
	if len(activities) != 3 {
		t.Fatalf("expected 3 activities, got %v", activities)
	}
	last := activities[2].(map[string]interface{})
	if last["username"] != "friend" || last["action"] != "delete" || last["title"] != "First" {
		t.Errorf("unexpected last activity %v", last)
	}

	res = s.do(t, http.MethodDelete, "/playlists/"+playlistID, friendToken, nil)
	s.expect(t, res, http.StatusForbidden, "fail")

	res = s.do(t, http.MethodDelete, "/collaborations", ownerToken, map[string]string{"playlistId": playlistID, "userId": friendID})
	s.expect(t, res, http.StatusOK, "success")

	res = s.do(t, http.MethodGet, songsPath, friendToken, nil)
	s.expect(t, res, http.StatusForbidden, "fail")

	res = s.do(t, http.MethodDelete, "/playlists/"+playlistID, ownerToken, nil)
	s.expect(t, res, http.StatusOK, "success")

	res = s.do(t, http.MethodGet, songsPath, ownerToken, nil)
	s.expect(t, res, http.StatusNotFound, "fail")
}

func TestPlaylistSongErrors(t *testing.T) {
	s := newTestServer(t)
	_, token := s.register(t, "owner")
	songID := addSong(t, s, "Only")

	res := s.do(t, http.MethodPost, "/playlists", token, map[string]string{})
	s.expect(t, res, http.StatusBadRequest, "fail")

	res = s.do(t, http.MethodPost, "/playlists", token, map[string]string{"name": "Mine"})
	playlistID := res.body.Data["playlistId"].(string)
	songsPath := "/playlists/" + playlistID + "/songs"

	res = s.do(t, http.MethodPost, "/playlists/playlist-missing/songs", token, map[string]string{"songId": songID})
	s.expect(t, res, http.StatusNotFound, "fail")

	res = s.do(t, http.MethodPost, songsPath, token, map[string]string{"songId": songID})
	s.expect(t, res, http.StatusCreated, "success")

	res = s.do(t, http.MethodPost, songsPath, token, map[string]string{"songId": songID})
	s.expect(t, res, http.StatusBadRequest, "fail")

	res = s.do(t, http.MethodDelete, songsPath, token, map[string]string{"songId": "song-missing"})
	s.expect(t, res, http.StatusBadRequest, "fail")
}

func TestExportPlaylist(t *testing.T) {
	s := newTestServer(t)
	_, ownerToken := s.register(t, "owner")
	_, otherToken := s.register(t, "other")

	res := s.do(t, http.MethodPost, "/playlists", ownerToken, map[string]string{"name": "Mine"})
	playlistID := res.body.Data["playlistId"].(string)
	path := "/export/playlists/" + playlistID

	res = s.do(t, http.MethodPost, path, ownerToken, map[string]string{"targetEmail": "not-an-email"})
	s.expect(t, res, http.StatusBadRequest, "fail")

	res = s.do(t, http.MethodPost, path, otherToken, map[string]string{"targetEmail": "a@b.com"})
	s.expect(t, res, http.StatusForbidden, "fail")

	res = s.do(t, http.MethodPost, "/export/playlists/playlist-missing", ownerToken, map[string]string{"targetEmail": "a@b.com"})
	s.expect(t, res, http.StatusNotFound, "fail")

	res = s.do(t, http.MethodPost, path, ownerToken, map[string]string{"targetEmail": "a@b.com"})
	s.expect(t, res, http.StatusCreated, "success")

	if len(s.exports.published) != 1 {
		t.Fatalf("expected one queued export, got %d", len(s.exports.published))
	}
	if got := s.exports.published[0]; got.PlaylistID != playlistID || got.TargetEmail != "a@b.com" {
		t.Errorf("unexpected export request %+v", got)
	}
}
