package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"

	"file-drive-api/internal/domain/favorite"
	domainFile "file-drive-api/internal/domain/file"
	"file-drive-api/internal/domain/identity"
	"file-drive-api/internal/domain/user"
	"file-drive-api/internal/infrastructure/mq"
)

const testIssuer = "https://idp.test"

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
}

func caller(subject string) *identity.Identity {
	return &identity.Identity{
		TokenIdentifier: identity.TokenIdentifier(testIssuer, subject),
		Issuer:          testIssuer,
		Subject:         subject,
	}
}

type FakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*user.User
	err   error
}

func newFakeUsers(users ...*user.User) *FakeUserRepository {
	r := &FakeUserRepository{users: map[string]*user.User{}}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		r.users[u.TokenIdentifier] = u
	}
	return r
}

func (r *FakeUserRepository) FetchUserByToken(_ context.Context, token string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.users[token], nil
}

func (r *FakeUserRepository) EnsureUser(_ context.Context, req user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[req.TokenIdentifier]; !ok {
		req.ID = uuid.New()
		req.OrgIDs = []string{}
		r.users[req.TokenIdentifier] = &req
	}
	return nil
}

func (r *FakeUserRepository) UpsertUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[req.TokenIdentifier]
	if !ok {
		u = &user.User{ID: uuid.New(), TokenIdentifier: req.TokenIdentifier, OrgIDs: []string{}}
		r.users[req.TokenIdentifier] = u
	}
	u.Name, u.Image = req.Name, req.Image
	return u, nil
}

func (r *FakeUserRepository) AddOrgID(_ context.Context, token, orgID string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[token]
	if !ok {
		return nil, nil
	}
	if !u.InOrg(orgID) {
		u.OrgIDs = append(u.OrgIDs, orgID)
	}
	return u, nil
}

func (r *FakeUserRepository) RemoveOrgID(_ context.Context, token, orgID string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[token]
	if !ok {
		return nil, nil
	}
	kept := u.OrgIDs[:0]
	for _, o := range u.OrgIDs {
		if o != orgID {
			kept = append(kept, o)
		}
	}
	u.OrgIDs = kept
	return u, nil
}

type FakeFileRepository struct {
	mu    sync.Mutex
	files []*domainFile.File
	err   error
}

func (r *FakeFileRepository) CreateFile(_ context.Context, req *domainFile.File) (*domainFile.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	f := *req
	f.ID = uuid.New()
	f.CreatedAt = time.Now()
	r.files = append(r.files, &f)
	out := f
	return &out, nil
}

func (r *FakeFileRepository) FetchFileByID(_ context.Context, id domainFile.ID) (*domainFile.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, f := range r.files {
		if f.ID == id {
			out := *f
			return &out, nil
		}
	}
	return nil, nil
}

func (r *FakeFileRepository) FetchOrgFiles(_ context.Context, orgID string) (domainFile.Files, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := domainFile.Files{}
	for _, f := range r.files {
		if f.OrgID == orgID {
			c := *f
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *FakeFileRepository) DeleteFile(_ context.Context, id domainFile.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	for i, f := range r.files {
		if f.ID == id {
			r.files = append(r.files[:i], r.files[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type favKey struct {
	userID user.ID
	fileID domainFile.ID
}

type FakeFavoriteRepository struct {
	mu   sync.Mutex
	favs map[favKey]string
}

func newFakeFavorites() *FakeFavoriteRepository {
	return &FakeFavoriteRepository{favs: map[favKey]string{}}
}

func (r *FakeFavoriteRepository) FetchUserFavorites(_ context.Context, userID user.ID, orgID string) (favorite.Favorites, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := favorite.Favorites{}
	for k, org := range r.favs {
		if k.userID == userID && org == orgID {
			out = append(out, &favorite.Favorite{ID: uuid.New(), UserID: userID, OrgID: org, FileID: k.fileID})
		}
	}
	return out, nil
}

func (r *FakeFavoriteRepository) ToggleFavorite(_ context.Context, userID user.ID, orgID string, fileID domainFile.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := favKey{userID: userID, fileID: fileID}
	if _, ok := r.favs[k]; ok {
		delete(r.favs, k)
		return false, nil
	}
	r.favs[k] = orgID
	return true, nil
}

type FakeS3Client struct {
	removed     []string
	removeErr   error
	downloadErr error
}

func (s *FakeS3Client) PresignUpload(context.Context) (*domainFile.UploadTicket, error) {
	return &domainFile.UploadTicket{
		URL:       "https://files.test/drive/uploads/2026/10/17/k?X-Amz-Signature=x",
		StorageID: "uploads/2026/10/17/k",
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

func (s *FakeS3Client) PresignDownload(_ context.Context, key string) (string, error) {
	if s.downloadErr != nil {
		return "", s.downloadErr
	}
	return "https://files.test/drive/" + key, nil
}

func (s *FakeS3Client) RemoveObject(_ context.Context, key string) error {
	s.removed = append(s.removed, key)
	return s.removeErr
}

func (s *FakeS3Client) GetBucket() string { return "drive" }

type FakeRabbitMQ struct {
	in chan mq.Event
}

func newFakeMQ(size int) *FakeRabbitMQ { return &FakeRabbitMQ{in: make(chan mq.Event, size)} }

func (f *FakeRabbitMQ) Connect(context.Context, string) error { return errors.New("not used") }
func (f *FakeRabbitMQ) Init() error                           { return errors.New("not used") }
func (f *FakeRabbitMQ) PublisherWorker(context.Context)       {}
func (f *FakeRabbitMQ) GetInputChan() chan mq.Event           { return f.in }
func (f *FakeRabbitMQ) GetConn() *amqp091.Connection          { return nil }

func (f *FakeRabbitMQ) drain() []mq.Event {
	var out []mq.Event
	for {
		select {
		case e := <-f.in:
			out = append(out, e)
		default:
			return out
		}
	}
}

func hasPrefixAll(ss []string, prefix string) bool {
	for _, s := range ss {
		if !strings.HasPrefix(s, prefix) {
			return false
		}
	}
	return true
}
