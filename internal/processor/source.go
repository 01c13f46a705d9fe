package processor

import (
	"github.com/pkg/errors"

	"github.com/clipstream/clipstream/pkg/types"
)

// PlaylistLister enumerates a public playlist by URL without authentication
type PlaylistLister interface {
	ListPlaylistVideos(playlistURL string, limit int) ([]types.VideoEntry, error)
}

// UploadsLister enumerates the authenticated channel's own upload list
type UploadsLister interface {
	ListUploads(maxResults int64) ([]types.VideoEntry, error)
}

// SourceVideos resolves the batch source: the playlist when a URL is given,
// the channel's upload list otherwise. The uploads source needs an
// authenticated lister; pass nil when none is available.
func SourceVideos(playlistURL string, limit int, playlists PlaylistLister, uploads UploadsLister) ([]types.VideoEntry, error) {
	if playlistURL != "" {
		return playlists.ListPlaylistVideos(playlistURL, limit)
	}
	if uploads == nil {
		return nil, errors.New("listing your uploads requires authentication (run the auth command first)")
	}
	return uploads.ListUploads(int64(limit))
}

// ItemsFromEntries converts enumerated source videos into batch items
func ItemsFromEntries(entries []types.VideoEntry) []BatchItem {
	items := make([]BatchItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, BatchItem{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
		})
	}
	return items
}
