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

func TestChannelCreateDuplicateName(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChannelRepository(db)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "alice")

	if err := repo.Create(ctx, &model.Channel{ChannelName: "Tech", OwnerID: owner.ID}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.Create(ctx, &model.Channel{ChannelName: "Tech", OwnerID: owner.ID})
	if !IsDuplicateKey(err) {
		t.Fatalf("err = %v, want duplicate key", err)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &model.User{Username: "a", Email: "a@example.com", Password: "x"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.Create(ctx, &model.User{Username: "b", Email: "a@example.com", Password: "y"})
	if !IsDuplicateKey(err) {
		t.Fatalf("err = %v, want duplicate key", err)
	}
}

func TestChannelFirstIDByOwner(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChannelRepository(db)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "alice")

	id, err := repo.FirstIDByOwner(ctx, owner.ID)
	if err != nil || id != "" {
		t.Fatalf("no channel: id=%q err=%v", id, err)
	}

	channel := testutil.CreateChannel(t, db, owner, "Tech")
	id, err = repo.FirstIDByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("FirstIDByOwner: %v", err)
	}
	if id != channel.ID {
		t.Fatalf("id = %q, want %q", id, channel.ID)
	}
}

func TestChannelDeleteCascade(t *testing.T) {
	db := testutil.NewDB(t)
	channels := NewChannelRepository(db)
	subs := NewSubscriptionRepository(db)
	reactions := NewReactionRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "alice")
	viewer := testutil.CreateUser(t, db, "bob")
	channel := testutil.CreateChannel(t, db, owner, "Tech")
	other := testutil.CreateChannel(t, db, owner, "Cooking")
	v1 := testutil.CreateVideo(t, db, channel, "Intro", "", time.Time{})
	v2 := testutil.CreateVideo(t, db, channel, "Part 2", "", time.Time{})
	kept := testutil.CreateVideo(t, db, other, "Pasta", "Food", time.Time{})

	if _, err := subs.Toggle(ctx, channel.ID, viewer.ID); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if _, err := reactions.Toggle(ctx, v1.ID, viewer.ID, model.ReactionLike); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := comments.Create(ctx, &model.Comment{VideoID: v2.ID, UserID: viewer.ID, Text: "nice"}); err != nil {
		t.Fatalf("comment: %v", err)
	}
	if err := comments.Create(ctx, &model.Comment{VideoID: kept.ID, UserID: viewer.ID, Text: "yum"}); err != nil {
		t.Fatalf("comment: %v", err)
	}

	deleted, err := channels.DeleteCascade(ctx, channel.ID)
	if err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}
	if len(deleted) != 2 {
		t.Fatalf("deleted video ids = %v, want 2", deleted)
	}

	counts := []struct {
		name  string
		model interface{}
		where string
		args  []interface{}
		want  int64
	}{
		{"channel", &model.Channel{}, "id = ?", []interface{}{channel.ID}, 0},
		{"videos", &model.Video{}, "channel_id = ?", []interface{}{channel.ID}, 0},
		{"reactions", &model.Reaction{}, "video_id IN ?", []interface{}{deleted}, 0},
		{"comments", &model.Comment{}, "video_id IN ?", []interface{}{deleted}, 0},
		{"subscriptions", &model.Subscription{}, "channel_id = ?", []interface{}{channel.ID}, 0},
		{"other channel videos", &model.Video{}, "channel_id = ?", []interface{}{other.ID}, 1},
		{"other channel comments", &model.Comment{}, "video_id = ?", []interface{}{kept.ID}, 1},
	}
	for _, c := range counts {
		var n int64
		if err := db.Model(c.model).Where(c.where, c.args...).Count(&n).Error; err != nil {
			t.Fatalf("%s: count: %v", c.name, err)
		}
		if n != c.want {
			t.Errorf("%s: count = %d, want %d", c.name, n, c.want)
		}
	}

	if _, err := channels.DeleteCascade(ctx, channel.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("second delete err = %v, want ErrRecordNotFound", err)
	}
}

func TestSubscriptionToggle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "alice")
	viewer := testutil.CreateUser(t, db, "bob")
	channel := testutil.CreateChannel(t, db, owner, "Tech")

	state, err := repo.Toggle(ctx, channel.ID, viewer.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !state.Subscribed || state.SubscriberCount != 1 {
		t.Fatalf("after subscribe: %+v", state)
	}

	ok, err := repo.Exists(ctx, channel.ID, viewer.ID)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}

	state, err = repo.Toggle(ctx, channel.ID, viewer.ID)
	if err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if state.Subscribed || state.SubscriberCount != 0 {
		t.Fatalf("after unsubscribe: %+v", state)
	}

	var stored model.Channel
	db.First(&stored, "id = ?", channel.ID)
	if stored.SubscriberCount != 0 {
		t.Fatalf("stored subscriber_count = %d", stored.SubscriberCount)
	}

	if _, err := repo.Toggle(ctx, "missing", viewer.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing channel err = %v", err)
	}
}

// TestSubscriptionToggleConcurrent 不同用户并发订阅，订阅数不丢失
func TestSubscriptionToggleConcurrent(t *testing.T) {
	testutil.ForEachDB(t, testSubscriptionToggleConcurrent)
}

func testSubscriptionToggleConcurrent(t *testing.T, db *gorm.DB) {
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner")
	channel := testutil.CreateChannel(t, db, owner, "Tech")

	const n = 6
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		user := testutil.CreateUser(t, db, "sub"+string(rune('a'+i)))
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			if _, err := repo.Toggle(ctx, channel.ID, userID); err != nil {
				t.Errorf("toggle: %v", err)
			}
		}(user.ID)
	}
	wg.Wait()

	count, err := repo.CountByChannel(ctx, channel.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != n {
		t.Fatalf("count = %d, want %d", count, n)
	}
	ids, err := repo.ListSubscriberIDs(ctx, channel.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != n {
		t.Fatalf("subscriber ids = %d, want %d", len(ids), n)
	}
}
