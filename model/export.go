package model

// ExportRequest is the queued job for a playlist export.
type ExportRequest struct {
	PlaylistID  string `json:"playlistId"`
	TargetEmail string `json:"targetEmail"`
}

// PlaylistExport is the document delivered to the requester.
type PlaylistExport struct {
	Playlist ExportedPlaylist `json:"playlist"`
}

// ExportedPlaylist is the exported view of a playlist.
type ExportedPlaylist struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Songs []SongSummary `json:"songs"`
}
