// Package export turns queued export requests into a JSON document that is
// stored in object storage and mailed to the requester.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"openmusic/logger"
	"openmusic/model"
)

// PlaylistLoader loads a playlist with its songs.
type PlaylistLoader interface {
	GetPlaylistSongByID(ctx context.Context, playlistID string) (*model.PlaylistDetail, error)
}

// ObjectStore persists the rendered document.
type ObjectStore interface {
	PutObject(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}

// Exporter handles export requests. Either sink may be nil.
type Exporter struct {
	playlists PlaylistLoader
	store     ObjectStore
	mailer    Mailer
	now       func() time.Time
}

// NewExporter creates an Exporter.
func NewExporter(playlists PlaylistLoader, store ObjectStore, mailer Mailer) *Exporter {
	return &Exporter{playlists: playlists, store: store, mailer: mailer, now: time.Now}
}

// Handle renders the playlist and delivers it to every configured sink.
func (e *Exporter) Handle(ctx context.Context, req model.ExportRequest) error {
	detail, err := e.playlists.GetPlaylistSongByID(ctx, req.PlaylistID)
	if err != nil {
		return fmt.Errorf("failed to load playlist %s: %w", req.PlaylistID, err)
	}

	doc, err := Render(detail)
	if err != nil {
		return err
	}

	var url string
	if e.store != nil {
		name := fmt.Sprintf("exports/%s-%d.json", detail.ID, e.now().Unix())
		url, err = e.store.PutObject(ctx, name, bytes.NewReader(doc), int64(len(doc)), "application/json")
		if err != nil {
			return err
		}
		logger.Info("Export stored", logger.String("playlistId", detail.ID), logger.String("url", url))
	}

	if e.mailer == nil {
		if e.store == nil {
			logger.Warn("Export has no sink configured", logger.String("playlistId", detail.ID))
		}
		return nil
	}

	body := fmt.Sprintf("Attached is the export of playlist %q.", detail.Name)
	if url != "" {
		body += "\r\nIt is also available at " + url
	}
	return e.mailer.Send(ctx, Message{
		To:      req.TargetEmail,
		Subject: "Ekspor Playlist",
		Body:    body,
		Attachment: &Attachment{
			Filename:    "playlist.json",
			ContentType: "application/json",
			Data:        doc,
		},
	})
}

// Render produces the exported document {playlist:{id,name,songs}}.
func Render(detail *model.PlaylistDetail) ([]byte, error) {
	songs := detail.Songs
	if songs == nil {
		songs = []model.SongSummary{}
	}
	doc, err := json.Marshal(model.PlaylistExport{
		Playlist: model.ExportedPlaylist{ID: detail.ID, Name: detail.Name, Songs: songs},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render export: %w", err)
	}
	return doc, nil
}
