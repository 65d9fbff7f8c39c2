package service

import (
	"context"
	"testing"

	"openmusic/core/apperror"
	"openmusic/model"
)

func TestAlbumCRUD(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	id, err := s.albums.AddAlbum(ctx, model.AlbumPayload{Name: "Parachutes", Year: 2000})
	if err != nil {
		t.Fatalf("AddAlbum failed: %v", err)
	}

	songID, err := s.songs.AddSong(ctx, model.SongPayload{
		Title: "Yellow", Year: 2000, Genre: "Rock", Performer: "Coldplay", AlbumID: strPtr(id),
	})
	if err != nil {
		t.Fatal(err)
	}
	mustAddSong(t, s, "Single", "Coldplay")

	album, err := s.albums.GetAlbumByID(ctx, id)
	if err != nil {
		t.Fatalf("GetAlbumByID failed: %v", err)
	}
	if album.Name != "Parachutes" || album.Year != 2000 || album.CoverURL != nil {
		t.Errorf("unexpected album %+v", album)
	}
	if len(album.Songs) != 1 || album.Songs[0].ID != songID {
		t.Errorf("expected only the album song, got %+v", album.Songs)
	}

	if err := s.albums.EditAlbumByID(ctx, id, model.AlbumPayload{Name: "Parachutes (Remastered)", Year: 2001}); err != nil {
		t.Fatalf("EditAlbumByID failed: %v", err)
	}
	if err := s.albums.UpdateAlbumCover(ctx, id, "http://cdn/covers/x.png"); err != nil {
		t.Fatalf("UpdateAlbumCover failed: %v", err)
	}

	album, err = s.albums.GetAlbumByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if album.Name != "Parachutes (Remastered)" || album.Year != 2001 {
		t.Errorf("album not updated: %+v", album)
	}
	if album.CoverURL == nil || *album.CoverURL != "http://cdn/covers/x.png" {
		t.Errorf("cover not stored: %v", album.CoverURL)
	}

	if err := s.albums.DeleteAlbumByID(ctx, id); err != nil {
		t.Fatalf("DeleteAlbumByID failed: %v", err)
	}
	if _, err := s.albums.GetAlbumByID(ctx, id); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	// The song survives as a single.
	song, err := s.songs.GetSongByID(ctx, songID)
	if err != nil {
		t.Fatal(err)
	}
	if song.AlbumID != nil {
		t.Errorf("song should lose its album reference, got %s", *song.AlbumID)
	}
}

func TestAlbumMissing(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)
	payload := model.AlbumPayload{Name: "X", Year: 2000}

	if err := s.albums.EditAlbumByID(ctx, "album-missing", payload); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("edit: expected not found, got %v", err)
	}
	if err := s.albums.DeleteAlbumByID(ctx, "album-missing"); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("delete: expected not found, got %v", err)
	}
	if err := s.albums.UpdateAlbumCover(ctx, "album-missing", "u"); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("cover: expected not found, got %v", err)
	}
	if err := s.albums.VerifyAlbumExists(ctx, "album-missing"); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("verify: expected not found, got %v", err)
	}
}
