package service

import (
	"context"
	"testing"
	"time"

	"vtube-go/internal/api/dto"
	infraKafka "vtube-go/internal/infra/kafka"
	"vtube-go/internal/model"
	"vtube-go/internal/testutil"
)

func TestVideoCreate(t *testing.T) {
	e := newEnv(t)
	pub := &fakePublisher{}
	svc := NewVideoService(e.videos, e.channels, pub)
	ctx := context.Background()

	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	channel := testutil.CreateChannel(t, e.db, alice, "Tech")

	req := func(channelID string) *dto.VideoCreateRequest {
		return &dto.VideoCreateRequest{
			Title:        "Intro",
			ThumbnailURL: "t.jpg",
			VideoURL:     "v.mp4",
			ChannelID:    channelID,
		}
	}

	info, err := svc.Create(ctx, alice.ID, req(channel.ID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if info.Category != model.DefaultCategory {
		t.Fatalf("category = %q, want default", info.Category)
	}
	if info.ChannelID != channel.ID || info.Uploader != alice.ID {
		t.Fatalf("info = %+v", info)
	}
	if info.Channel == nil || info.Channel.ChannelName != "Tech" {
		t.Fatalf("channel brief = %+v", info.Channel)
	}
	if got := pub.ofType(infraKafka.VideoEventCreated); len(got) != 1 || got[0] != info.ID {
		t.Fatalf("created events = %v", got)
	}

	stored, _ := e.channels.GetByID(ctx, channel.ID)
	if stored.VideoCount != 1 {
		t.Fatalf("video_count = %d", stored.VideoCount)
	}

	t.Run("another users channel", func(t *testing.T) {
		_, err := svc.Create(ctx, bob.ID, req(channel.ID))
		assertKind(t, err, ErrNotOwner)
	})

	t.Run("missing channel", func(t *testing.T) {
		_, err := svc.Create(ctx, alice.ID, req("missing"))
		assertKind(t, err, ErrChannelNotFound)
	})

	t.Run("publisher failure does not fail create", func(t *testing.T) {
		failing := NewVideoService(e.videos, e.channels, &fakePublisher{err: errBackendDown})
		if _, err := failing.Create(ctx, alice.ID, req(channel.ID)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	})
}

func TestVideoUpdateDeleteOwnership(t *testing.T) {
	e := newEnv(t)
	pub := &fakePublisher{}
	svc := NewVideoService(e.videos, e.channels, pub)
	ctx := context.Background()

	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	channel := testutil.CreateChannel(t, e.db, alice, "Tech")
	video := testutil.CreateVideo(t, e.db, channel, "Intro", "", time.Time{})

	t.Run("non uploader update", func(t *testing.T) {
		_, err := svc.Update(ctx, video.ID, bob.ID, &dto.VideoUpdateRequest{Title: strPtr("mine now")})
		assertKind(t, err, ErrNotOwner)
	})

	t.Run("non uploader delete", func(t *testing.T) {
		assertKind(t, svc.Delete(ctx, video.ID, bob.ID), ErrNotOwner)
	})

	t.Run("empty category", func(t *testing.T) {
		_, err := svc.Update(ctx, video.ID, alice.ID, &dto.VideoUpdateRequest{Category: strPtr(" ")})
		assertKind(t, err, ErrEmptyCategory)
	})

	t.Run("uploader update", func(t *testing.T) {
		updated, err := svc.Update(ctx, video.ID, alice.ID, &dto.VideoUpdateRequest{
			Title:    strPtr("Intro v2"),
			Category: strPtr("Education"),
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.Title != "Intro v2" || updated.Category != "Education" || updated.ChannelID != channel.ID {
			t.Fatalf("updated = %+v", updated)
		}
		if got := pub.ofType(infraKafka.VideoEventUpdated); len(got) != 1 {
			t.Fatalf("updated events = %v", got)
		}
	})

	t.Run("detail increments views", func(t *testing.T) {
		first, err := svc.GetDetail(ctx, video.ID)
		if err != nil {
			t.Fatalf("GetDetail: %v", err)
		}
		second, _ := svc.GetDetail(ctx, video.ID)
		if second.Views != first.Views+1 {
			t.Fatalf("views %d -> %d", first.Views, second.Views)
		}
	})

	t.Run("uploader delete", func(t *testing.T) {
		if err := svc.Delete(ctx, video.ID, alice.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		_, err := svc.GetDetail(ctx, video.ID)
		assertKind(t, err, ErrVideoNotFound)
		if got := pub.ofType(infraKafka.VideoEventDeleted); len(got) != 1 || got[0] != video.ID {
			t.Fatalf("deleted events = %v", got)
		}
	})
}

func TestVideoListings(t *testing.T) {
	e := newEnv(t)
	svc := NewVideoService(e.videos, e.channels, nil)
	ctx := context.Background()

	alice := testutil.CreateUser(t, e.db, "alice")
	tech := testutil.CreateChannel(t, e.db, alice, "Tech")
	food := testutil.CreateChannel(t, e.db, alice, "Food")
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	old := testutil.CreateVideo(t, e.db, tech, "Old", "Education", base)
	recent := testutil.CreateVideo(t, e.db, food, "Recent", "Food", base.Add(time.Minute))

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if all.Total != 2 || all.Videos[0].ID != recent.ID || all.Videos[1].ID != old.ID {
		t.Fatalf("List order = %+v", all.Videos)
	}

	byCategory, err := svc.ListByCategory(ctx, "Food")
	if err != nil || byCategory.Total != 1 || byCategory.Videos[0].ID != recent.ID {
		t.Fatalf("ListByCategory = %+v, %v", byCategory, err)
	}
	if _, err := svc.ListByCategory(ctx, ""); KindOf(err) != KindValidation {
		t.Fatalf("empty category err = %v", err)
	}

	byChannel, err := svc.ListByChannel(ctx, tech.ID)
	if err != nil || byChannel.Total != 1 || byChannel.Videos[0].ID != old.ID {
		t.Fatalf("ListByChannel = %+v, %v", byChannel, err)
	}
	_, err = svc.ListByChannel(ctx, "missing")
	assertKind(t, err, ErrChannelNotFound)
}
