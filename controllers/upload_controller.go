package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harvestra/krishikhel/config"
	"github.com/harvestra/krishikhel/models"
	"github.com/harvestra/krishikhel/utils"
)

// UploadController stores mission-proof images on local disk.
type UploadController struct {
	db *gorm.DB
}

func NewUploadController(db *gorm.DB) *UploadController {
	return &UploadController{db: db}
}

const maxUploadSize = 10 * 1024 * 1024

// Upload saves one file and returns its public URL. Uploads not attached
// to a mission submission are reclaimed by the background cleaner.
func (u *UploadController) Upload(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Size > 0 && header.Size > maxUploadSize {
		utils.Error(ctx, http.StatusBadRequest, 40031, "file size exceeds 10MB")
		return
	}

	conf := config.Get()
	now := time.Now()
	baseDir := filepath.Join(conf.UploadDir, now.Format("2006"), now.Format("01"), now.Format("02"))
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to create upload directory")
		return
	}

	// Random name avoids collisions and strips any client-supplied path.
	safeName := uuid.NewString() + filepath.Ext(filepath.Base(header.Filename))
	dstPath := filepath.Join(baseDir, safeName)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to save file")
		return
	}
	defer out.Close()

	lr := &io.LimitedReader{R: file, N: maxUploadSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusInternalServerError, 50082, "failed to write file")
		return
	}
	if written > maxUploadSize {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, 40031, "file size exceeds 10MB")
		return
	}

	relURL := fmt.Sprintf("/static/uploads/%s/%s", now.Format("2006/01/02"), safeName)
	absPath, _ := filepath.Abs(dstPath)
	expireAt := now.Add(time.Duration(conf.UploadTTLMinutes) * time.Minute)
	if err := u.db.Create(&models.UploadedFile{
		UserID:   userID,
		FilePath: absPath,
		URL:      relURL,
		ExpireAt: expireAt,
	}).Error; err != nil {
		utils.Sugar.Warnw("failed to record upload for cleanup", "path", absPath, "error", err)
	}

	utils.Success(ctx, gin.H{"url": relURL, "expires_at": expireAt})
}
