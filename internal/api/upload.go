package api

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apidb "github.com/nao1215/ansacademy/internal/api/db"
)

// handleUpload はファイルアップロードを処理するハンドラを返す。
// multipart形式でfileとtypeを受け取り、UPLOAD_DIR配下に保存する。
// type=avatarの場合はユーザーのアバターURLも更新する。
func (s *Server) handleUpload() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		uploadType := c.PostForm("type")
		if uploadType == "" {
			uploadType = "misc"
		}
		// パストラバーサル対策として、typeとファイル名はベース名のみ使用する
		uploadType = filepath.Base(uploadType)
		filename := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Filename))

		dir := filepath.Join(s.uploadDir, uploadType)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			log.Printf("アップロードディレクトリの作成エラー: %v", err)
			return
		}

		if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
			log.Printf("ファイル保存エラー: %v", err)
			return
		}

		fileURL := fmt.Sprintf("/uploads/%s/%s", uploadType, filename)

		if uploadType == "avatar" {
			if err := s.queries.UpdateUserAvatar(c.Request.Context(), apidb.UpdateUserAvatarParams{
				Avatar: fileURL,
				ID:     user.ID,
			}); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
				log.Printf("アバター更新エラー: %v", err)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"url": fileURL})
	}
}
