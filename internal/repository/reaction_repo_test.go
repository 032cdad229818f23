package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vtube-go/internal/model"
	"vtube-go/internal/testutil"

	"gorm.io/gorm"
)

func TestReactionToggle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "alice")
	viewer := testutil.CreateUser(t, db, "bob")
	channel := testutil.CreateChannel(t, db, owner, "Tech")
	video := testutil.CreateVideo(t, db, channel, "Intro", "", time.Time{})

	steps := []struct {
		name         string
		kind         string
		wantLikes    int64
		wantDislikes int64
		wantReaction string
	}{
		{"like", model.ReactionLike, 1, 0, model.ReactionLike},
		{"dislike switches", model.ReactionDislike, 0, 1, model.ReactionDislike},
		{"dislike again cancels", model.ReactionDislike, 0, 0, ""},
		{"like from nothing", model.ReactionLike, 1, 0, model.ReactionLike},
		{"like again cancels", model.ReactionLike, 0, 0, ""},
	}

	for _, step := range steps {
		state, err := repo.Toggle(ctx, video.ID, viewer.ID, step.kind)
		if err != nil {
			t.Fatalf("%s: toggle: %v", step.name, err)
		}
		if state.Likes != step.wantLikes || state.Dislikes != step.wantDislikes || state.Reaction != step.wantReaction {
			t.Fatalf("%s: state = %+v, want likes=%d dislikes=%d reaction=%q",
				step.name, state, step.wantLikes, step.wantDislikes, step.wantReaction)
		}

		var stored model.Video
		if err := db.First(&stored, "id = ?", video.ID).Error; err != nil {
			t.Fatalf("reload video: %v", err)
		}
		if stored.LikeCount != step.wantLikes || stored.DislikeCount != step.wantDislikes {
			t.Fatalf("%s: stored counts = %d/%d", step.name, stored.LikeCount, stored.DislikeCount)
		}

		var rows int64
		db.Model(&model.Reaction{}).Where("video_id = ? AND user_id = ?", video.ID, viewer.ID).Count(&rows)
		if rows > 1 {
			t.Fatalf("%s: %d reaction rows for one user", step.name, rows)
		}
	}
}

func TestReactionToggleMissingVideo(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewReactionRepository(db)
	user := testutil.CreateUser(t, db, "alice")

	_, err := repo.Toggle(context.Background(), "00000000-0000-0000-0000-000000000000", user.ID, model.ReactionLike)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

// TestReactionToggleConcurrent 并发切换后计数与最终态度一致
func TestReactionToggleConcurrent(t *testing.T) {
	testutil.ForEachDB(t, testReactionToggleConcurrent)
}

func testReactionToggleConcurrent(t *testing.T, db *gorm.DB) {
	repo := NewReactionRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	channel := testutil.CreateChannel(t, db, owner, "Tech")
	video := testutil.CreateVideo(t, db, channel, "Intro", "", time.Time{})

	const viewers = 8
	users := make([]*model.User, viewers)
	for i := range users {
		users[i] = testutil.CreateUser(t, db, "viewer"+string(rune('a'+i)))
	}

	t.Run("distinct users", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make(chan error, viewers)
		for _, u := range users {
			wg.Add(1)
			go func(userID string) {
				defer wg.Done()
				if _, err := repo.Toggle(ctx, video.ID, userID, model.ReactionLike); err != nil {
					errs <- err
				}
			}(u.ID)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("toggle: %v", err)
		}

		state, err := repo.Get(ctx, video.ID, users[0].ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if state.Likes != viewers || state.Dislikes != 0 {
			t.Fatalf("state = %+v, want %d likes", state, viewers)
		}
	})

	t.Run("same user even number of toggles", func(t *testing.T) {
		const rounds = 10
		var wg sync.WaitGroup
		for i := 0; i < rounds; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.Toggle(ctx, video.ID, users[0].ID, model.ReactionDislike); err != nil {
					t.Errorf("toggle: %v", err)
				}
			}()
		}
		wg.Wait()

		state, err := repo.Get(ctx, video.ID, users[0].ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		// 初始为 like：第一次 dislike 替换 like，之后两两抵消，偶数次后回到无态度
		if state.Reaction != "" {
			t.Fatalf("reaction = %q, want none", state.Reaction)
		}
		if state.Likes != viewers-1 || state.Dislikes != 0 {
			t.Fatalf("state = %+v, want likes=%d dislikes=0", state, viewers-1)
		}
	})
}
