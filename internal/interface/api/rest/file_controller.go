package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-drive-api/internal/application/ports"
	"file-drive-api/internal/domain/file"
	dto "file-drive-api/internal/interface/api/rest/dto/file"
	"file-drive-api/internal/interface/api/rest/middleware"
	"file-drive-api/internal/interface/api/rest/validator"
)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
}

// NewFileController registers the file routes. The identity gate is
// installed router-wide, so every handler sees either an identity or an
// anonymous caller.
func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	uploadLimiter *middleware.RateLimiter,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
	}

	r.POST(RouteUploadURL, uploadLimiter.Handler(), fc.GenerateUploadURLHandler)
	r.POST(RouteOrgFiles, fc.CreateFileHandler)
	r.GET(RouteOrgFiles, fc.ListFilesHandler)
	r.DELETE(RouteFile, fc.DeleteFileHandler)
	r.POST(RouteFavorite, fc.ToggleFavoriteHandler)

	return fc
}

func (fc *FileController) GenerateUploadURLHandler(c *gin.Context) {
	t, err := fc.fileService.GenerateUploadURL(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		writeServiceError(c, fc.logger, "GenerateUploadURL()", err, "failed to issue upload url")
		return
	}

	c.JSON(http.StatusCreated, dto.ToResponseUploadURL(*t))
}

func (fc *FileController) CreateFileHandler(c *gin.Context) {
	orgID := c.Param("org_id")
	if err := validator.ValidateOrgID(orgID); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "org_id: " + err.Error()},
		)
		return
	}

	var req dto.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid JSON body"},
		)
		return
	}
	if errs := validator.ValidateCreateFile(req); errs != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": errs},
		)
		return
	}

	f, err := fc.fileService.CreateFile(c.Request.Context(), middleware.IdentityFrom(c), dto.ToDomainFile(orgID, req))
	if err != nil {
		writeServiceError(c, fc.logger, "CreateFile()", err, "failed to create a file")
		return
	}

	c.JSON(http.StatusCreated, dto.ToResponseFile(*f))
}

func (fc *FileController) ListFilesHandler(c *gin.Context) {
	favoritesOnly, err := validator.ParseFlag(c.Query("favorites"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "favorites: " + err.Error()},
		)
		return
	}

	fs, err := fc.fileService.ListFiles(c.Request.Context(), middleware.IdentityFrom(c), file.ListQuery{
		OrgID:         c.Param("org_id"),
		Query:         c.Query("query"),
		FavoritesOnly: favoritesOnly,
	})
	if err != nil {
		writeServiceError(c, fc.logger, "ListFiles()", err, "failed to get files")
		return
	}

	c.JSON(http.StatusOK, dto.ResponseData{
		Data: dto.ToResponseFiles(fs),
	})
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	if err := fc.fileService.DeleteFile(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		writeServiceError(c, fc.logger, "DeleteFile()", err, "failed to delete a file")
		return
	}

	c.Status(http.StatusNoContent)
}

func (fc *FileController) ToggleFavoriteHandler(c *gin.Context) {
	ok, id := validator.IsUUID(c.Param("file_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "file_id must be a valid UUID"},
		)
		return
	}

	favorited, err := fc.fileService.ToggleFavorite(c.Request.Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		writeServiceError(c, fc.logger, "ToggleFavorite()", err, "failed to toggle favorite")
		return
	}

	c.JSON(http.StatusOK, dto.FavoriteState{IsFavorited: favorited})
}
