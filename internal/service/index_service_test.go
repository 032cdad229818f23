package service

import (
	"context"
	"testing"
	"time"

	infraKafka "vtube-go/internal/infra/kafka"
	"vtube-go/internal/testutil"
)

func TestIndexServiceHandleVideoEvent(t *testing.T) {
	e := newEnv(t)
	indexer := &fakeIndexer{}
	svc := NewIndexService(e.videos, indexer)
	ctx := context.Background()

	alice := testutil.CreateUser(t, e.db, "alice")
	channel := testutil.CreateChannel(t, e.db, alice, "Tech")
	video := testutil.CreateVideo(t, e.db, channel, "Intro", "", time.Time{})

	events := []infraKafka.VideoEvent{
		{Type: infraKafka.VideoEventCreated, VideoID: video.ID},
		{Type: infraKafka.VideoEventUpdated, VideoID: video.ID},
		{Type: infraKafka.VideoEventCreated, VideoID: "already-gone"},
		{Type: infraKafka.VideoEventDeleted, VideoID: video.ID},
		{Type: "renamed", VideoID: video.ID},
	}
	for i := range events {
		if err := svc.HandleVideoEvent(ctx, &events[i]); err != nil {
			t.Fatalf("event %d (%s): %v", i, events[i].Type, err)
		}
	}

	if len(indexer.indexed) != 2 || indexer.indexed[0] != video.ID {
		t.Fatalf("indexed = %v", indexer.indexed)
	}
	if len(indexer.deleted) != 2 || indexer.deleted[0] != "already-gone" || indexer.deleted[1] != video.ID {
		t.Fatalf("deleted = %v", indexer.deleted)
	}
}

func TestIndexServiceReindex(t *testing.T) {
	e := newEnv(t)
	indexer := &fakeIndexer{}
	svc := NewIndexService(e.videos, indexer)

	alice := testutil.CreateUser(t, e.db, "alice")
	channel := testutil.CreateChannel(t, e.db, alice, "Tech")
	for _, title := range []string{"a", "b", "c"} {
		testutil.CreateVideo(t, e.db, channel, title, "", time.Time{})
	}

	success, failed, err := svc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if success != 3 || failed != 0 || indexer.bulk != 1 {
		t.Fatalf("success=%d failed=%d batches=%d", success, failed, indexer.bulk)
	}
}
