package service

import (
	"daybook/dao"
	"daybook/model"
)

// FeedService surfaces entries marked public across all users.
type FeedService struct {
	feed      *dao.FeedDAO
	reactions *dao.ReactionDAO
}

func NewFeedService(feed *dao.FeedDAO, reactions *dao.ReactionDAO) *FeedService {
	return &FeedService{feed: feed, reactions: reactions}
}

// List returns the public feed for a viewer with search/mood/sort filters,
// attaching each entry's mood emoji for display.
func (s *FeedService) List(viewerID uint64, filter dao.FeedFilter) ([]dao.FeedItem, error) {
	items, err := s.feed.ListPublic(viewerID, filter)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Mood != nil {
			items[i].MoodEmoji = model.MoodEmoji(*items[i].Mood)
		}
	}
	return items, nil
}

// ToggleReaction flips the viewer's reaction on an entry and returns the
// new state plus the entry's reaction count.
func (s *FeedService) ToggleReaction(entryID, viewerID uint64) (bool, int64, error) {
	return s.reactions.Toggle(entryID, viewerID)
}
