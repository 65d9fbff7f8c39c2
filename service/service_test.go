package service

import (
	"context"
	"testing"

	"openmusic/db/dbtest"
	"openmusic/model"
)

type testServices struct {
	albums         *AlbumService
	songs          *SongService
	users          *UserService
	authentication *AuthenticationService
	collaborations *CollaborationService
	playlists      *PlaylistService
	activities     *ActivityService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	conn := dbtest.Open(t)
	collaborations := NewCollaborationService(conn)
	return &testServices{
		albums:         NewAlbumService(conn),
		songs:          NewSongService(conn),
		users:          NewUserService(conn),
		authentication: NewAuthenticationService(conn),
		collaborations: collaborations,
		playlists:      NewPlaylistService(conn, collaborations),
		activities:     NewActivityService(dbtest.Gorm(t, conn)),
	}
}

func mustAddUser(t *testing.T, s *testServices, username string) string {
	t.Helper()

	id, err := s.users.AddUser(context.Background(), model.UserPayload{
		Username: username,
		Password: "secret",
		Fullname: "User " + username,
	})
	if err != nil {
		t.Fatalf("failed to add user %s: %v", username, err)
	}
	return id
}

func mustAddSong(t *testing.T, s *testServices, title, performer string) string {
	t.Helper()

	id, err := s.songs.AddSong(context.Background(), model.SongPayload{
		Title:     title,
		Year:      2020,
		Genre:     "Pop",
		Performer: performer,
	})
	if err != nil {
		t.Fatalf("failed to add song %s: %v", title, err)
	}
	return id
}

func mustAddPlaylist(t *testing.T, s *testServices, name, owner string) string {
	t.Helper()

	id, err := s.playlists.AddPlaylist(context.Background(), name, owner)
	if err != nil {
		t.Fatalf("failed to add playlist %s: %v", name, err)
	}
	return id
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
