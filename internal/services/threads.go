package services

import (
	"context"

	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
)

// threadLoader attaches query-time like aggregates to replies.
type threadLoader struct {
	replies    repositories.ReplyRepository
	replyLikes repositories.ReplyLikeRepository
}

// repliesByPost loads the replies of postIDs, grouped per post, with like
// counts and whether viewerID liked each one.
func (l threadLoader) repliesByPost(ctx context.Context, postIDs []string, viewerID string, newestFirst, withEmail bool) (map[string][]models.ReplyDetail, error) {
	replies, err := l.replies.GetRepliesByPostIDs(ctx, postIDs, newestFirst)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(replies))
	for i, r := range replies {
		ids[i] = r.ID
	}

	counts, err := l.replyLikes.CountByReplyIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked, err := l.replyLikes.LikedReplyIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.ReplyDetail, len(postIDs))
	for _, r := range replies {
		d := models.ReplyDetail{
			ID:        r.ID,
			PostID:    r.PostID,
			UserID:    r.UserID,
			Content:   r.Content,
			CreatedAt: r.CreatedAt,
			User:      r.User.ToCompact(),
			LikeCount: counts[r.ID],
			IsLiked:   liked[r.ID],
		}
		if withEmail {
			d.Email = r.User.Email
		}
		grouped[r.PostID] = append(grouped[r.PostID], d)
	}
	return grouped, nil
}
