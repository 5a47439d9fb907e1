package db

import (
	"fmt"

	"github.com/user/simplereplay-cli/cloud"
)

// ImportProject writes a project document into the local database in one
// transaction. Existing rows with the same ids are updated; playlist
// memberships and flags are merged; a clip's comments are replaced by the
// document's.
func (p *Provider) ImportProject(doc *cloud.Project) error {
	doc.Normalize()

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, t := range doc.TagTypes {
		if err := upsertTagType(tx, t); err != nil {
			return err
		}
	}
	for _, g := range doc.Games {
		if err := upsertGame(tx, g); err != nil {
			return err
		}
	}
	for _, c := range doc.Clips {
		if err := upsertClip(tx, c); err != nil {
			return err
		}
	}
	for _, pl := range doc.Playlists {
		if err := upsertPlaylist(tx, pl); err != nil {
			return err
		}
	}
	for plID, clipIDs := range doc.PlaylistItems {
		for _, clipID := range clipIDs {
			if _, err := tx.Exec(InsertPlaylistItemSQL, plID, clipID, plID); err != nil {
				return fmt.Errorf("import playlist item %s/%s: %w", plID, clipID, err)
			}
		}
	}
	for clipID, flags := range doc.ClipFlags {
		for _, f := range flags {
			if _, err := tx.Exec(InsertClipFlagSQL, clipID, f.UserID, string(f.Flag)); err != nil {
				return fmt.Errorf("import flag on clip %s: %w", clipID, err)
			}
		}
	}
	for clipID, comments := range doc.ClipComments {
		if _, err := tx.Exec(DeleteClipCommentsSQL, clipID); err != nil {
			return fmt.Errorf("clear comments of clip %s: %w", clipID, err)
		}
		for _, c := range comments {
			if _, err := tx.Exec(InsertClipCommentSQL, clipID, c.Name, c.Text, formatTime(c.Timestamp)); err != nil {
				return fmt.Errorf("import comment on clip %s: %w", clipID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}
