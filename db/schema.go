package db

// Schema holds the DDL in dependency order. The statements are written to be
// accepted by both MySQL and SQLite so tests run against the real schema.
//
// Cascades (playlist -> songs, collaborations, activities) are enforced by
// the foreign keys alone; nothing wraps them in an application transaction.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS albums (
		id VARCHAR(50) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		year INT NOT NULL,
		cover_url TEXT NULL,
		created_at VARCHAR(40) NOT NULL,
		updated_at VARCHAR(40) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS songs (
		id VARCHAR(50) NOT NULL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		year INT NOT NULL,
		genre VARCHAR(100) NOT NULL,
		performer VARCHAR(255) NOT NULL,
		duration INT NULL,
		album_id VARCHAR(50) NULL,
		created_at VARCHAR(40) NOT NULL,
		updated_at VARCHAR(40) NOT NULL,
		CONSTRAINT fk_songs_album FOREIGN KEY (album_id) REFERENCES albums(id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(50) NOT NULL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		fullname VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS authentications (
		token VARCHAR(512) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS playlists (
		id VARCHAR(50) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		owner VARCHAR(50) NOT NULL,
		CONSTRAINT fk_playlists_owner FOREIGN KEY (owner) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS playlist_songs (
		id VARCHAR(50) NOT NULL PRIMARY KEY,
		playlist_id VARCHAR(50) NOT NULL,
		song_id VARCHAR(50) NOT NULL,
		created_at VARCHAR(40) NOT NULL,
		CONSTRAINT uq_playlist_song UNIQUE (playlist_id, song_id),
		CONSTRAINT fk_playlist_songs_playlist FOREIGN KEY (playlist_id) REFERENCES playlists(id) ON DELETE CASCADE,
		CONSTRAINT fk_playlist_songs_song FOREIGN KEY (song_id) REFERENCES songs(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS collaborations (
		id VARCHAR(50) NOT NULL PRIMARY KEY,
		playlist_id VARCHAR(50) NOT NULL,
		user_id VARCHAR(50) NOT NULL,
		CONSTRAINT uq_collaboration UNIQUE (playlist_id, user_id),
		CONSTRAINT fk_collaborations_playlist FOREIGN KEY (playlist_id) REFERENCES playlists(id) ON DELETE CASCADE,
		CONSTRAINT fk_collaborations_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS playlist_song_activities (
		id VARCHAR(50) NOT NULL PRIMARY KEY,
		playlist_id VARCHAR(50) NOT NULL,
		song_id VARCHAR(50) NOT NULL,
		user_id VARCHAR(50) NOT NULL,
		action VARCHAR(10) NOT NULL,
		time VARCHAR(40) NOT NULL,
		CONSTRAINT fk_activities_playlist FOREIGN KEY (playlist_id) REFERENCES playlists(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS user_album_likes (
		id VARCHAR(50) NOT NULL PRIMARY KEY,
		user_id VARCHAR(50) NOT NULL,
		album_id VARCHAR(50) NOT NULL,
		CONSTRAINT uq_user_album_like UNIQUE (user_id, album_id),
		CONSTRAINT fk_likes_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_likes_album FOREIGN KEY (album_id) REFERENCES albums(id) ON DELETE CASCADE
	)`,
}
