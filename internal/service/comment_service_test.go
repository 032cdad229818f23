package service

import (
	"context"
	"testing"
	"time"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/model"
	"vtube-go/internal/testutil"
)

func TestCommentService(t *testing.T) {
	e := newEnv(t)
	svc := NewCommentService(e.comments, e.videos)
	ctx := context.Background()

	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	channel := testutil.CreateChannel(t, e.db, alice, "Tech")
	video := testutil.CreateVideo(t, e.db, channel, "Intro", "", time.Time{})
	other := testutil.CreateVideo(t, e.db, channel, "Other", "", time.Time{})

	list, err := svc.Create(ctx, video.ID, bob.ID, &dto.CommentRequest{Text: " great video "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if list.Total != 1 || list.Comments[0].Text != "great video" || list.Comments[0].Username != "bob" {
		t.Fatalf("list = %+v", list)
	}
	commentID := list.Comments[0].ID

	list, err = svc.Create(ctx, video.ID, alice.ID, &dto.CommentRequest{Text: "thanks"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if list.Total != 2 {
		t.Fatalf("total = %d, want full list of 2", list.Total)
	}

	t.Run("empty text", func(t *testing.T) {
		_, err := svc.Create(ctx, video.ID, bob.ID, &dto.CommentRequest{Text: "   "})
		if KindOf(err) != KindValidation {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("missing video", func(t *testing.T) {
		_, err := svc.Create(ctx, "missing", bob.ID, &dto.CommentRequest{Text: "hi"})
		assertKind(t, err, ErrVideoNotFound)
		_, err = svc.ListByVideo(ctx, "missing")
		assertKind(t, err, ErrVideoNotFound)
	})

	t.Run("comment of another video", func(t *testing.T) {
		_, err := svc.Delete(ctx, other.ID, commentID, bob.ID)
		assertKind(t, err, ErrCommentNotFound)
	})

	t.Run("non author", func(t *testing.T) {
		// 视频上传者也不能修改他人的评论
		_, err := svc.Update(ctx, video.ID, commentID, alice.ID, &dto.CommentRequest{Text: "edited"})
		assertKind(t, err, ErrNotOwner)
		_, err = svc.Delete(ctx, video.ID, commentID, alice.ID)
		assertKind(t, err, ErrNotOwner)
	})

	t.Run("author update and delete", func(t *testing.T) {
		list, err := svc.Update(ctx, video.ID, commentID, bob.ID, &dto.CommentRequest{Text: "edited"})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		var found bool
		for _, c := range list.Comments {
			if c.ID == commentID {
				found = c.Text == "edited"
			}
		}
		if !found {
			t.Fatalf("edited comment missing: %+v", list.Comments)
		}

		list, err = svc.Delete(ctx, video.ID, commentID, bob.ID)
		if err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if list.Total != 1 || list.Comments[0].UserID != alice.ID {
			t.Fatalf("remaining = %+v", list.Comments)
		}

		var stored model.Video
		e.db.First(&stored, "id = ?", video.ID)
		if stored.CommentCount != 1 {
			t.Fatalf("comment_count = %d", stored.CommentCount)
		}
	})
}

func TestReactionService(t *testing.T) {
	e := newEnv(t)
	svc := NewReactionService(e.reacts, e.videos)
	ctx := context.Background()

	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	channel := testutil.CreateChannel(t, e.db, alice, "Tech")
	video := testutil.CreateVideo(t, e.db, channel, "Intro", "", time.Time{})

	if _, err := svc.Toggle(ctx, video.ID, bob.ID, "love"); KindOf(err) != KindValidation {
		t.Fatalf("invalid kind err = %v", err)
	}
	_, err := svc.Toggle(ctx, "missing", bob.ID, model.ReactionLike)
	assertKind(t, err, ErrVideoNotFound)

	liked, err := svc.Toggle(ctx, video.ID, bob.ID, model.ReactionLike)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if liked.Likes != 1 || liked.Dislikes != 0 || liked.Reaction != model.ReactionLike {
		t.Fatalf("liked = %+v", liked)
	}

	disliked, err := svc.Toggle(ctx, video.ID, bob.ID, model.ReactionDislike)
	if err != nil {
		t.Fatalf("dislike: %v", err)
	}
	if disliked.Likes != 0 || disliked.Dislikes != 1 {
		t.Fatalf("disliked = %+v", disliked)
	}

	// alice 的查询只看到计数，态度为空
	state, err := svc.Get(ctx, video.ID, alice.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if state.Reaction != "" || state.Dislikes != 1 {
		t.Fatalf("state = %+v", state)
	}
}
