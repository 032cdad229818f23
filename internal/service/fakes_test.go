package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	infraKafka "vtube-go/internal/infra/kafka"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"
	"vtube-go/internal/testutil"

	"gorm.io/gorm"
)

// 测试替身：记录调用，不访问外部依赖

type fakePublisher struct {
	mu     sync.Mutex
	events []infraKafka.VideoEvent
	err    error
}

func (p *fakePublisher) PublishVideoEvent(_ context.Context, event *infraKafka.VideoEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *event)
	return p.err
}

func (p *fakePublisher) ofType(eventType string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var ids []string
	for _, e := range p.events {
		if e.Type == eventType {
			ids = append(ids, e.VideoID)
		}
	}
	return ids
}

type fakeSearcher struct {
	ids []string
	err error
}

func (s *fakeSearcher) SearchVideoIDs(_ context.Context, _ string, _ bool) ([]string, error) {
	return s.ids, s.err
}

type fakeIndexer struct {
	indexed []string
	deleted []string
	bulk    int
}

func (i *fakeIndexer) IndexVideo(_ context.Context, video *model.Video) error {
	i.indexed = append(i.indexed, video.ID)
	return nil
}

func (i *fakeIndexer) DeleteVideo(_ context.Context, videoID string) error {
	i.deleted = append(i.deleted, videoID)
	return nil
}

func (i *fakeIndexer) BulkIndex(_ context.Context, videos []model.Video) (int, int, error) {
	i.bulk++
	return len(videos), 0, nil
}

type fakeObjectStore struct {
	name        string
	contentType string
	data        []byte
}

func (s *fakeObjectStore) PutPublicObject(_ context.Context, name string, r io.Reader, _ int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.name, s.contentType, s.data = name, contentType, data
	return "http://cdn.test/" + name, nil
}

type fakeTokenStore struct {
	revoked map[string]time.Duration
	err     error
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{revoked: make(map[string]time.Duration)}
}

func (s *fakeTokenStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[jti] = ttl
	return nil
}

func (s *fakeTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[jti]
	return ok, nil
}

var errBackendDown = errors.New("backend down")

// env 一组共享同一内存库的仓储
type env struct {
	db       *gorm.DB
	users    *repository.UserRepository
	channels *repository.ChannelRepository
	subs     *repository.SubscriptionRepository
	videos   *repository.VideoRepository
	comments *repository.CommentRepository
	reacts   *repository.ReactionRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()
	testutil.InstallConfig()
	db := testutil.NewDB(t)
	return &env{
		db:       db,
		users:    repository.NewUserRepository(db),
		channels: repository.NewChannelRepository(db),
		subs:     repository.NewSubscriptionRepository(db),
		videos:   repository.NewVideoRepository(db),
		comments: repository.NewCommentRepository(db),
		reacts:   repository.NewReactionRepository(db),
	}
}

// assertKind 断言错误为指定的业务错误
func assertKind(t *testing.T, err error, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
