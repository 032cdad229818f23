package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"vtube-go/internal/model"
	"vtube-go/internal/testutil"

	"gorm.io/gorm"
)

func TestVideoCreateInChannel(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "alice")
	channel := testutil.CreateChannel(t, db, owner, "Tech")

	video := &model.Video{
		Title:        "Intro",
		ThumbnailURL: "t.jpg",
		VideoURL:     "v.mp4",
		Category:     model.DefaultCategory,
		ChannelID:    channel.ID,
		UploaderID:   owner.ID,
	}
	if err := repo.CreateInChannel(ctx, video); err != nil {
		t.Fatalf("CreateInChannel: %v", err)
	}

	var stored model.Channel
	db.First(&stored, "id = ?", channel.ID)
	if stored.VideoCount != 1 {
		t.Fatalf("video_count = %d, want 1", stored.VideoCount)
	}

	orphan := &model.Video{Title: "x", ThumbnailURL: "t", VideoURL: "v", ChannelID: "missing", UploaderID: owner.ID}
	if err := repo.CreateInChannel(ctx, orphan); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("orphan err = %v, want ErrRecordNotFound", err)
	}
}

func TestVideoList(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "alice")
	tech := testutil.CreateChannel(t, db, owner, "Tech")
	food := testutil.CreateChannel(t, db, owner, "Food")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	intro := testutil.CreateVideo(t, db, tech, "Intro to Go", "Education", base)
	deep := testutil.CreateVideo(t, db, tech, "Deep Dive", "Education", base.Add(time.Hour))
	pasta := testutil.CreateVideo(t, db, food, "Pasta 100% fresh", "Food", base.Add(2*time.Hour))

	ids := func(videos []model.Video) []string {
		out := make([]string, 0, len(videos))
		for _, v := range videos {
			out = append(out, v.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter VideoFilter
		want   []string
	}{
		{"all newest first", VideoFilter{}, []string{pasta.ID, deep.ID, intro.ID}},
		{"by channel", VideoFilter{ChannelID: tech.ID}, []string{deep.ID, intro.ID}},
		{"by category", VideoFilter{Category: "Food"}, []string{pasta.ID}},
		{"query case insensitive", VideoFilter{Query: "INTRO"}, []string{intro.ID}},
		{"query matches category", VideoFilter{Query: "educ"}, []string{deep.ID, intro.ID}},
		{"percent is literal", VideoFilter{Query: "100%"}, []string{pasta.ID}},
		{"wildcard does not match everything", VideoFilter{Query: "%"}, []string{pasta.ID}},
		{"no match", VideoFilter{Query: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			got := ids(videos)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}

	videos, _ := repo.List(ctx, VideoFilter{ChannelID: food.ID})
	if len(videos) != 1 || videos[0].Channel.ChannelName != "Food" || videos[0].Uploader.Username != "alice" {
		t.Fatalf("refs not preloaded: %+v", videos)
	}
}

func TestVideoDeleteCascade(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db)
	comments := NewCommentRepository(db)
	reactions := NewReactionRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "alice")
	channel := testutil.CreateChannel(t, db, owner, "Tech")
	video := testutil.CreateVideo(t, db, channel, "Intro", "", time.Time{})

	if err := comments.Create(ctx, &model.Comment{VideoID: video.ID, UserID: owner.ID, Text: "first"}); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if _, err := reactions.Toggle(ctx, video.ID, owner.ID, model.ReactionLike); err != nil {
		t.Fatalf("like: %v", err)
	}

	if err := repo.DeleteCascade(ctx, video.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	var n int64
	db.Model(&model.Comment{}).Where("video_id = ?", video.ID).Count(&n)
	if n != 0 {
		t.Errorf("comments left: %d", n)
	}
	db.Model(&model.Reaction{}).Where("video_id = ?", video.ID).Count(&n)
	if n != 0 {
		t.Errorf("reactions left: %d", n)
	}

	var stored model.Channel
	db.First(&stored, "id = ?", channel.ID)
	if stored.VideoCount != 0 {
		t.Errorf("video_count = %d, want 0", stored.VideoCount)
	}

	if _, err := repo.GetByID(ctx, video.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("GetByID after delete err = %v", err)
	}
}

func TestVideoIncrementViewsAndEachBatch(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewVideoRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "alice")
	channel := testutil.CreateChannel(t, db, owner, "Tech")
	for i := 0; i < 5; i++ {
		testutil.CreateVideo(t, db, channel, "v"+string(rune('0'+i)), "", time.Time{})
	}
	first, _ := repo.List(ctx, VideoFilter{})

	for i := 0; i < 3; i++ {
		if err := repo.IncrementViews(ctx, first[0].ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}
	video, _ := repo.GetByID(ctx, first[0].ID)
	if video.Views != 3 {
		t.Fatalf("views = %d, want 3", video.Views)
	}

	var batches, total int
	err := repo.EachBatch(ctx, 2, func(videos []model.Video) error {
		batches++
		total += len(videos)
		for _, v := range videos {
			if v.Channel.ID == "" {
				t.Errorf("video %s: channel not preloaded", v.ID)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("EachBatch: %v", err)
	}
	if batches != 3 || total != 5 {
		t.Fatalf("batches=%d total=%d, want 3/5", batches, total)
	}
}

func TestCommentCountMaintained(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "alice")
	channel := testutil.CreateChannel(t, db, owner, "Tech")
	video := testutil.CreateVideo(t, db, channel, "Intro", "", time.Time{})

	first := &model.Comment{VideoID: video.ID, UserID: owner.ID, Text: "first"}
	second := &model.Comment{VideoID: video.ID, UserID: owner.ID, Text: "second"}
	for _, c := range []*model.Comment{first, second} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	videoCount := func() int64 {
		var v model.Video
		db.First(&v, "id = ?", video.ID)
		return v.CommentCount
	}
	if got := videoCount(); got != 2 {
		t.Fatalf("comment_count = %d, want 2", got)
	}

	if err := repo.Delete(ctx, video.ID, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := videoCount(); got != 1 {
		t.Fatalf("comment_count = %d, want 1", got)
	}
	if err := repo.Delete(ctx, video.ID, first.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete err = %v", err)
	}

	list, err := repo.ListByVideo(ctx, video.ID)
	if err != nil {
		t.Fatalf("ListByVideo: %v", err)
	}
	if len(list) != 1 || list[0].Text != "second" || list[0].User.Username != "alice" {
		t.Fatalf("list = %+v", list)
	}

	if _, err := repo.GetByID(ctx, "other-video", second.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("comment from another video err = %v", err)
	}
}
