package entity

import "time"

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

type BlockType string

const (
	BlockTypeText  BlockType = "text"
	BlockTypeMedia BlockType = "media"
)

type BlockFileRole string

const (
	FileRolePrimary   BlockFileRole = "primary"
	FileRoleThumbnail BlockFileRole = "thumbnail"
)

// Post is the assembled, externally visible representation: the post row
// plus its surviving blocks in display order, media blocks carrying
// resolved file URLs.
type Post struct {
	ID             string     `json:"uuid"`
	AuthorID       string     `json:"-"`
	AuthorEmail    string     `json:"email,omitempty"`
	AuthorUsername string     `json:"username,omitempty"`
	Title          string     `json:"title"`
	Summary        string     `json:"summary"`
	Status         PostStatus `json:"status"`
	Blocks         []Block    `json:"blocks"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"modified_at"`
}

type Block struct {
	ID        string    `json:"uuid"`
	PostID    string    `json:"-"`
	Type      BlockType `json:"type"`
	Content   string    `json:"content"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Order     int       `json:"order"`
	Files     []FileRef `json:"files,omitempty"`
}

// FileRef is a file attachment as seen from a block: the association role
// plus the resolved file metadata.
type FileRef struct {
	FileID       string        `json:"uuid"`
	Role         BlockFileRole `json:"role"`
	URL          string        `json:"url"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty"`
	MimeType     string        `json:"mime_type"`
}

type File struct {
	ID           string    `json:"uuid"`
	UploaderID   string    `json:"uploader_id"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	MimeType     string    `json:"mime_type"`
	CreatedAt    time.Time `json:"created_at"`
}

type Author struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}
