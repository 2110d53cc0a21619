package reader

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"knarchief/internal/pathcodec"
	"knarchief/internal/thumbnails"
)

// Placeholder images, served from the static images directory when no real
// thumbnail applies.
const (
	placeholderBooklet = "media_type_booklet.png"
	placeholderVideo   = "media_type_video.png"
	placeholderPoster  = "media_type_poster.png"
	placeholderPhoto   = "member_photo_default2.png"
)

var titleCaser = cases.Title(language.Und)

// Medium is one media file prepared for display: the type label capitalized
// and both the thumbnail and the full media path encoded as tokens.
type Medium struct {
	PerformanceRef string
	Filename       string
	MediaType      string
	Ext            string
	// Marker is the position tag from the tagged-members table (vlnr);
	// empty for media reached through the plain file table.
	Marker         string
	ThumbnailToken string
	MediaToken     string
}

// enrichMedium computes the display fields for one media row. PDF and video
// files have no generated thumbnail, so their thumbnail token points at a
// static placeholder image instead of the folder's thumbnails directory.
func (r *Reader) enrichMedium(folder string, m Medium) Medium {
	mediaDir := path.Join(r.cfg.Paths.ResourcesDir, folder)
	thumbDir := path.Join(mediaDir, thumbnails.SubdirName)
	thumbFile := m.Filename
	switch m.Ext {
	case "pdf":
		thumbDir, thumbFile = r.cfg.Paths.StaticImagesDir, placeholderBooklet
	case "mp4":
		thumbDir, thumbFile = r.cfg.Paths.StaticImagesDir, placeholderVideo
	}
	m.ThumbnailToken = pathcodec.Encode(thumbDir, thumbFile)
	m.MediaToken = pathcodec.Encode(mediaDir, m.Filename)
	m.MediaType = capitalize(m.MediaType)
	return m
}

func capitalize(value string) string {
	return titleCaser.String(strings.ToLower(value))
}
