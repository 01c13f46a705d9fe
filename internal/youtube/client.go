package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/clipstream/clipstream/pkg/types"
)

// Playlist identifies a playlist on the channel
type Playlist struct {
	ID    string
	Title string
}

// Client wraps the YouTube Data API surface the pipeline uses. The
// authenticated session is built once and carried by the client value; there
// is no package-level state.
type Client struct {
	svc *yt.Service
}

// NewClient builds an authenticated client from the OAuth client secrets and
// a previously stored token. Run Authorize first when no token exists yet.
func NewClient(secretsPath, tokenPath string) (*Client, error) {
	cfg, err := configFromSecrets(secretsPath)
	if err != nil {
		return nil, err
	}

	token, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, errors.Wrapf(err, "no stored token at %s (run the auth command first)", tokenPath)
	}

	ctx := context.Background()
	svc, err := yt.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, token)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build youtube service")
	}

	return &Client{svc: svc}, nil
}

// Authorize runs the console OAuth flow and stores the resulting token at
// tokenPath for later NewClient calls.
func Authorize(secretsPath, tokenPath string) error {
	cfg, err := configFromSecrets(secretsPath)
	if err != nil {
		return err
	}

	url := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following URL in a browser and paste the code here:\n%s\n\nCode: ", url)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return errors.Wrap(err, "failed to read authorization code")
	}

	token, err := cfg.Exchange(context.Background(), code)
	if err != nil {
		return errors.Wrap(err, "failed to exchange authorization code")
	}

	return saveToken(tokenPath, token)
}

func configFromSecrets(secretsPath string) (*oauth2.Config, error) {
	raw, err := os.ReadFile(secretsPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read client secrets %s", secretsPath)
	}
	cfg, err := google.ConfigFromJSON(raw,
		yt.YoutubeUploadScope, yt.YoutubeReadonlyScope, yt.YoutubeScope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse client secrets")
	}
	return cfg, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, errors.Wrap(err, "stored token is not valid JSON")
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrapf(err, "failed to create token file %s", path)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// Upload publishes a local video file and returns the new remote ID
func (c *Client) Upload(localPath, title, description, privacyStatus string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", localPath)
	}
	defer f.Close()

	video := &yt.Video{
		Snippet: &yt.VideoSnippet{
			Title:       title,
			Description: description,
			CategoryId:  "22",
		},
		Status: &yt.VideoStatus{
			PrivacyStatus: privacyStatus,
		},
	}

	resp, err := c.svc.Videos.Insert([]string{"snippet", "status"}, video).
		Media(f).
		Do()
	if err != nil {
		return "", errors.Wrap(err, "video insert failed")
	}

	return resp.Id, nil
}

// SetThumbnail sets a custom thumbnail image on an uploaded video
func (c *Client) SetThumbnail(videoID, imagePath string) error {
	f, err := os.Open(imagePath)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", imagePath)
	}
	defer f.Close()

	_, err = c.svc.Thumbnails.Set(videoID).Media(f).Do()
	if err != nil {
		return errors.Wrap(err, "thumbnail set failed")
	}
	return nil
}

// ListUploads enumerates the most recent entries of the authenticated
// channel's upload playlist
func (c *Client) ListUploads(maxResults int64) ([]types.VideoEntry, error) {
	channels, err := c.svc.Channels.List([]string{"contentDetails"}).
		Mine(true).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "channel lookup failed")
	}
	if len(channels.Items) == 0 {
		return nil, fmt.Errorf("no channel found for the authenticated user")
	}

	uploadsID := channels.Items[0].ContentDetails.RelatedPlaylists.Uploads

	items, err := c.svc.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(uploadsID).
		MaxResults(maxResults).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "upload list failed")
	}

	uploads := make([]types.VideoEntry, 0, len(items.Items))
	for _, item := range items.Items {
		uploads = append(uploads, types.VideoEntry{
			ID:          item.Snippet.ResourceId.VideoId,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
		})
	}
	return uploads, nil
}

// VideoPlaylists reports which of the channel's playlists contain the video
func (c *Client) VideoPlaylists(videoID string) ([]Playlist, error) {
	playlists, err := c.svc.Playlists.List([]string{"snippet"}).
		Mine(true).
		MaxResults(50).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "playlist list failed")
	}

	var containing []Playlist
	for _, pl := range playlists.Items {
		items, err := c.svc.PlaylistItems.List([]string{"id"}).
			PlaylistId(pl.Id).
			VideoId(videoID).
			MaxResults(1).
			Do()
		if err != nil {
			// Membership lookups are advisory; a broken playlist
			// should not hide the rest
			continue
		}
		if len(items.Items) > 0 {
			containing = append(containing, Playlist{ID: pl.Id, Title: pl.Snippet.Title})
		}
	}
	return containing, nil
}

// AddToPlaylist appends the video to the end of a playlist
func (c *Client) AddToPlaylist(videoID, playlistID string) error {
	item := &yt.PlaylistItem{
		Snippet: &yt.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &yt.ResourceId{
				Kind:    "youtube#video",
				VideoId: videoID,
			},
		},
	}

	_, err := c.svc.PlaylistItems.Insert([]string{"snippet"}, item).Do()
	if err != nil {
		return errors.Wrapf(err, "failed to add to playlist %s", playlistID)
	}
	return nil
}
