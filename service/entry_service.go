package service

import (
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"gorm.io/gorm"

	"daybook/config"
	"daybook/dao"
	"daybook/internal/metrics"
	"daybook/model"
)

var (
	ErrEntryFields   = errors.New("title and content are required")
	ErrEntryCreate   = errors.New("entry creation failed")
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryService owns the entry lifecycle: the atomic creation transaction,
// owner-scoped update and soft delete, and the stats refresh that follows
// each write.
type EntryService struct {
	entries *dao.EntryDAO
	tags    *dao.TagDAO
	statsD  *dao.StatsDAO
	stats   *StatsService
	media   *MediaService
}

func NewEntryService(entries *dao.EntryDAO, tags *dao.TagDAO, statsD *dao.StatsDAO,
	stats *StatsService, media *MediaService) *EntryService {
	return &EntryService{entries: entries, tags: tags, statsD: statsD, stats: stats, media: media}
}

// CreateEntryInput carries the validated form fields for a new entry.
type CreateEntryInput struct {
	Title        string
	Content      string
	Mood         string
	EntryDate    string // YYYY-MM-DD, optional
	MusicLink    string
	ImageURL     string
	Location     string
	PrivacyLevel string
	TagsCSV      string
	CategoryID   *uint64
	Files        []*multipart.FileHeader
}

// CalculateWordCount counts whitespace-delimited tokens; empty or
// whitespace-only content counts zero words.
func CalculateWordCount(content string) int {
	return len(strings.Fields(content))
}

// ParseTagsCSV splits a comma-separated tag string, trimming each name and
// skipping empties. Names stay case-sensitive; duplicates within one
// submission collapse through the insert-ignore link.
func ParseTagsCSV(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			tags = append(tags, name)
		}
	}
	return tags
}

// NormalizeMood coerces anything outside the allowed set to no mood.
func NormalizeMood(mood string) string {
	mood = strings.TrimSpace(mood)
	if mood == "" || !model.IsAllowedMood(mood) {
		return ""
	}
	return mood
}

// entryTimestamp resolves the optional form date: a valid YYYY-MM-DD keeps
// that day with the current clock time; anything else falls back to now.
func entryTimestamp(entryDate string, now time.Time) time.Time {
	if entryDate == "" {
		return now
	}
	d, err := time.ParseInLocation(dateLayout, entryDate, now.Location())
	if err != nil {
		return now
	}
	return time.Date(d.Year(), d.Month(), d.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, now.Location())
}

// Create performs the entry creation transaction: entry insert, stats
// initialization, mood-history increment, tag resolution and linking, and
// media ingestion. The whole unit commits or rolls back together and is
// retried on MySQL contention; individual invalid upload files are skipped
// and logged without failing the entry (partial success for media only).
func (s *EntryService) Create(userID uint64, in CreateEntryInput) (uint64, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		metrics.IncEntryCreation("invalid")
		return 0, ErrEntryFields
	}

	mood := NormalizeMood(in.Mood)
	privacy := in.PrivacyLevel
	if privacy != model.PrivacyPublic {
		privacy = model.PrivacyPrivate
	}
	ts := entryTimestamp(strings.TrimSpace(in.EntryDate), time.Now())
	wordCount := CalculateWordCount(content)

	var entryID uint64
	err := dao.RunInTxWithRetry(s.entries.DB(), dao.DefaultRetryPolicy, func(tx *gorm.DB) error {
		entry := model.Entry{
			UserID:       userID,
			Title:        title,
			Content:      content,
			Mood:         optional(mood),
			CategoryID:   in.CategoryID,
			Location:     optional(strings.TrimSpace(in.Location)),
			PrivacyLevel: privacy,
			MusicLink:    optional(strings.TrimSpace(in.MusicLink)),
			WordCount:    wordCount,
			Timestamp:    ts,
		}
		if err := s.entries.Create(tx, &entry); err != nil {
			return err
		}
		entryID = entry.ID

		if err := s.entries.InitEntryStats(tx, entryID); err != nil {
			return err
		}

		if mood != "" {
			if err := s.statsD.IncrementMoodHistory(tx, userID, mood, ts.Format(dateLayout)); err != nil {
				return err
			}
		}

		for _, name := range ParseTagsCSV(in.TagsCSV) {
			tag, err := s.tags.GetOrCreate(tx, name)
			if err != nil {
				return err
			}
			if err := s.tags.AddTagToEntry(tx, entryID, tag.ID); err != nil {
				return err
			}
		}

		if err := s.ingestUploads(tx, entryID, userID, in.Files); err != nil {
			return err
		}

		if imageURL := strings.TrimSpace(in.ImageURL); imageURL != "" {
			mime, err := ValidateImageURL(imageURL)
			if err != nil {
				config.Logger.Infow("image url rejected", "entry_id", entryID, "err", err)
			} else if err := s.entries.CreateMedia(tx, &model.Media{
				EntryID:  entryID,
				FilePath: imageURL,
				FileType: mime,
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		metrics.IncEntryCreation("failed")
		config.Logger.Errorw("entry creation failed", "user_id", userID, "err", err)
		return 0, ErrEntryCreate
	}

	metrics.IncEntryCreation("success")
	if err := s.stats.RecalculateUserStats(userID); err != nil {
		config.Logger.Errorw("stats recompute failed", "user_id", userID, "err", err)
	}
	return entryID, nil
}

// ingestUploads stores each valid file and records a media row. Files that
// fail validation (transport error, oversized, disallowed type) are skipped
// and logged without failing the entry. A failed media row insert is a
// persistence error, not a validation one: it aborts the transaction so the
// retry wrapper can see it.
func (s *EntryService) ingestUploads(tx *gorm.DB, entryID, userID uint64, files []*multipart.FileHeader) error {
	for _, fh := range files {
		if fh == nil || fh.Filename == "" {
			continue
		}
		relPath, mime, err := s.media.StoreUpload(userID, fh)
		if err != nil {
			metrics.IncUpload("skipped")
			config.Logger.Infow("upload skipped",
				"entry_id", entryID, "file", fh.Filename, "err", err)
			continue
		}
		if err := tx.Create(&model.Media{
			EntryID:  entryID,
			FilePath: relPath,
			FileType: mime,
		}).Error; err != nil {
			return err
		}
		metrics.IncUpload("stored")
	}
	return nil
}

// UpdateEntryInput carries the editable fields of an existing entry.
type UpdateEntryInput struct {
	Title        string
	Content      string
	Mood         string
	Location     string
	PrivacyLevel string
	MusicLink    string
	TagsCSV      string
	CategoryID   *uint64
}

// Update rewrites an entry the user owns, recomputing the word count and
// replacing its tag links with counter-consistent semantics.
func (s *EntryService) Update(entryID, userID uint64, in UpdateEntryInput) error {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return ErrEntryFields
	}
	if _, err := s.entries.GetOwned(entryID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}

	mood := NormalizeMood(in.Mood)
	privacy := in.PrivacyLevel
	if privacy != model.PrivacyPublic {
		privacy = model.PrivacyPrivate
	}

	err := dao.RunInTxWithRetry(s.entries.DB(), dao.DefaultRetryPolicy, func(tx *gorm.DB) error {
		fields := map[string]any{
			"title":         title,
			"content":       content,
			"word_count":    CalculateWordCount(content),
			"mood":          optional(mood),
			"location":      optional(strings.TrimSpace(in.Location)),
			"privacy_level": privacy,
			"music_link":    optional(strings.TrimSpace(in.MusicLink)),
			"category_id":   in.CategoryID,
		}
		if err := s.entries.Update(tx, entryID, fields); err != nil {
			return err
		}
		if err := s.tags.RemoveEntryTags(tx, entryID); err != nil {
			return err
		}
		for _, name := range ParseTagsCSV(in.TagsCSV) {
			tag, err := s.tags.GetOrCreate(tx, name)
			if err != nil {
				return err
			}
			if err := s.tags.AddTagToEntry(tx, entryID, tag.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		config.Logger.Errorw("entry update failed", "entry_id", entryID, "err", err)
		return err
	}

	if err := s.stats.RecalculateUserStats(userID); err != nil {
		config.Logger.Errorw("stats recompute failed", "user_id", userID, "err", err)
	}
	return nil
}

// Delete soft-deletes an owned entry and unlinks its tags so usage
// counters stay honest. Media files stay on disk.
func (s *EntryService) Delete(entryID, userID uint64) error {
	if _, err := s.entries.GetOwned(entryID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}

	err := dao.RunInTxWithRetry(s.entries.DB(), dao.DefaultRetryPolicy, func(tx *gorm.DB) error {
		if err := s.tags.RemoveEntryTags(tx, entryID); err != nil {
			return err
		}
		return s.entries.SoftDelete(tx, entryID)
	})
	if err != nil {
		config.Logger.Errorw("entry delete failed", "entry_id", entryID, "err", err)
		return err
	}

	if err := s.stats.RecalculateUserStats(userID); err != nil {
		config.Logger.Errorw("stats recompute failed", "user_id", userID, "err", err)
	}
	return nil
}

// List returns the user's entries with their tags attached.
func (s *EntryService) List(userID uint64) ([]model.Entry, error) {
	return s.entries.ListByUser(userID)
}

// Get returns an entry the viewer may read, with its tags.
func (s *EntryService) Get(entryID, viewerID uint64) (*model.Entry, []model.Tag, error) {
	entry, err := s.entries.GetVisible(entryID, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEntryNotFound
		}
		return nil, nil, err
	}
	tags, err := s.tags.TagsForEntry(entryID)
	if err != nil {
		return nil, nil, err
	}
	return entry, tags, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
