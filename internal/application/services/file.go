package services

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"file-drive-api/internal/application/ports"
	"file-drive-api/internal/domain"
	"file-drive-api/internal/domain/favorite"
	domainFile "file-drive-api/internal/domain/file"
	"file-drive-api/internal/domain/identity"
	"file-drive-api/internal/domain/user"
	"file-drive-api/internal/infrastructure/mq"
	"file-drive-api/internal/infrastructure/s3"
)

const maxNameLen = 255

type FileService struct {
	fileRepository     domainFile.Repository
	favoriteRepository favorite.Repository
	userRepository     user.Repository
	access             ports.AccessChecker
	s3                 ports.S3Client
	mq                 ports.RabbitMQ
	mCounter           *prometheus.CounterVec
	logger             *zap.Logger
}

func NewFileService(
	fileRepository domainFile.Repository,
	favoriteRepository favorite.Repository,
	userRepository user.Repository,
	access ports.AccessChecker,
	s3Client ports.S3Client,
	rabbitMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.FileService {
	return &FileService{
		fileRepository:     fileRepository,
		favoriteRepository: favoriteRepository,
		userRepository:     userRepository,
		access:             access,
		s3:                 s3Client,
		mq:                 rabbitMQ,
		mCounter:           mCounter,
		logger:             logger,
	}
}

func (fs *FileService) GenerateUploadURL(ctx context.Context, id *identity.Identity) (*domainFile.UploadTicket, error) {
	if id == nil {
		return nil, domain.ErrLoginRequired
	}

	t, err := fs.s3.PresignUpload(ctx)
	if err != nil {
		return nil, err
	}

	fs.mCounter.WithLabelValues("upload_urls_issued_total").Inc()

	return t, nil
}

func (fs *FileService) CreateFile(
	ctx context.Context,
	id *identity.Identity,
	req domainFile.File,
) (*domainFile.File, error) {
	if err := fs.access.Authorize(ctx, id, req.OrgID); err != nil {
		return nil, err
	}

	req.Name = cleanFileName(req.Name)
	if req.Name == "" {
		return nil, domain.ErrFileNameRequired
	}
	if !req.Type.Valid() {
		return nil, domain.ErrInvalidFileType
	}
	if !s3.IsIssuedKey(req.StorageID) {
		return nil, domain.ErrStorageIDInvalid
	}

	f, err := fs.fileRepository.CreateFile(ctx, &req)
	if err != nil {
		return nil, err
	}

	fs.publish(mq.FileCreated, id, f, nil)
	fs.mCounter.WithLabelValues("files_created_total").Inc()

	return f, nil
}

// ListFiles never fails on access: anonymous or foreign callers get an
// empty list.
func (fs *FileService) ListFiles(
	ctx context.Context,
	id *identity.Identity,
	q domainFile.ListQuery,
) (domainFile.Files, error) {
	if !fs.access.CanRead(ctx, id, q.OrgID) {
		return domainFile.Files{}, nil
	}

	files, err := fs.fileRepository.FetchOrgFiles(ctx, q.OrgID)
	if err != nil {
		return nil, err
	}

	favorites, err := fs.favoritesOf(ctx, id, q)
	if err != nil {
		return nil, err
	}

	match := nameMatcher(q.Query)
	out := make(domainFile.Files, 0, len(files))
	for _, f := range files {
		_, f.IsFavorited = favorites[f.ID]
		if q.FavoritesOnly && !f.IsFavorited {
			continue
		}
		if !match(f.Name) {
			continue
		}

		f.DownloadURL, err = fs.s3.PresignDownload(ctx, f.StorageID)
		if err != nil {
			fs.logger.Warn("download url unavailable",
				zap.Stringer("file_id", f.ID),
				zap.Error(err),
			)
		}
		out = append(out, f)
	}

	fs.mCounter.WithLabelValues("files_listed_total").Inc()

	return out, nil
}

func (fs *FileService) favoritesOf(
	ctx context.Context,
	id *identity.Identity,
	q domainFile.ListQuery,
) (map[domainFile.ID]struct{}, error) {
	u, err := fs.userRepository.FetchUserByToken(ctx, id.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if u == nil {
		if q.FavoritesOnly {
			return nil, domain.ErrUserNotFound
		}
		return nil, nil
	}

	favs, err := fs.favoriteRepository.FetchUserFavorites(ctx, u.ID, q.OrgID)
	if err != nil {
		return nil, err
	}
	return favs.FileIDs(), nil
}

func (fs *FileService) DeleteFile(ctx context.Context, id *identity.Identity, fileID domainFile.ID) error {
	f, err := fs.fileWithAccess(ctx, id, fileID)
	if err != nil {
		return err
	}

	deleted, err := fs.fileRepository.DeleteFile(ctx, f.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrFileNotFound
	}

	if err = fs.s3.RemoveObject(ctx, f.StorageID); err != nil {
		fs.logger.Warn("blob left behind after file delete",
			zap.Stringer("file_id", f.ID),
			zap.String("storage_id", f.StorageID),
			zap.Error(err),
		)
	}

	fs.publish(mq.FileDeleted, id, f, nil)
	fs.mCounter.WithLabelValues("files_deleted_total").Inc()

	return nil
}

func (fs *FileService) ToggleFavorite(ctx context.Context, id *identity.Identity, fileID domainFile.ID) (bool, error) {
	f, err := fs.fileWithAccess(ctx, id, fileID)
	if err != nil {
		return false, err
	}

	u, err := fs.userRepository.FetchUserByToken(ctx, id.TokenIdentifier)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, domain.ErrUserNotFound
	}

	favorited, err := fs.favoriteRepository.ToggleFavorite(ctx, u.ID, f.OrgID, f.ID)
	if err != nil {
		return false, err
	}

	fs.publish(mq.FavoriteToggled, id, f, &favorited)
	fs.mCounter.WithLabelValues("favorites_toggled_total").Inc()

	return favorited, nil
}

// fileWithAccess resolves the file before checking access so a missing file
// is always NotFound.
func (fs *FileService) fileWithAccess(
	ctx context.Context,
	id *identity.Identity,
	fileID domainFile.ID,
) (*domainFile.File, error) {
	if id == nil {
		return nil, domain.ErrLoginRequired
	}

	f, err := fs.fileRepository.FetchFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrFileNotFound
	}

	if !fs.access.HasAccessToOrg(ctx, id, f.OrgID) {
		return nil, domain.ErrNoFileAccess
	}
	return f, nil
}

// publish never blocks the request; a full buffer drops the event.
func (fs *FileService) publish(
	routingKey string,
	id *identity.Identity,
	f *domainFile.File,
	favorited *bool,
) {
	e := mq.Event{
		Id:     uuid.New(),
		TS:     time.Now(),
		Method: routingKey,
		UserID: id.TokenIdentifier,
		OrgID:  f.OrgID,
		Payload: mq.FilePayload{
			FileID:      f.ID,
			Name:        f.Name,
			Type:        string(f.Type),
			StorageID:   f.StorageID,
			IsFavorited: favorited,
		},
	}

	select {
	case fs.mq.GetInputChan() <- e:
	default:
		fs.mCounter.WithLabelValues("events_dropped_total").Inc()
		fs.logger.Warn("event dropped", zap.String("routing_key", routingKey))
	}
}

// cleanFileName trims the display name, drops control characters, applies
// NFC and caps the length.
func cleanFileName(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(norm.NFC.String(s))

	for utf8.RuneCountInString(s) > maxNameLen {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s
}

// nameMatcher reports whether a name contains query under Unicode case
// folding. An empty query matches everything.
func nameMatcher(query string) func(name string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return func(string) bool { return true }
	}

	fold := cases.Fold()
	needle := fold.String(norm.NFC.String(query))

	return func(name string) bool {
		return strings.Contains(fold.String(norm.NFC.String(name)), needle)
	}
}
