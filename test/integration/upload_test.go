package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"blogapp_backend/internal/models"
	"blogapp_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// минимальный валидный заголовок PNG, содержимое дальше не проверяется
var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}

func TestProfilePicUpload(t *testing.T) {
	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginUser(t, ts, "avatar_user", "avatar_user@example.com", "Password123", false)

	res, bodyStr := ts.SendMultipartRequest(t, "PUT", "/api/v1/profilePic", token, []helpers.MultipartField{
		{Name: "file", Filename: "avatar.png", ContentType: "image/png", Data: pngBytes},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Тело ответа: %s", bodyStr)

	var picture struct {
		PublicID string `json:"public_id"`
		URL      string `json:"url"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &picture))
	assert.NotEmpty(t, picture.PublicID)
	assert.NotEmpty(t, picture.URL)

	// запись должна появиться в БД
	var stored models.Picture
	require.NoError(t, ts.DB.First(&stored, "user_id = ?", user.ID).Error)
	assert.Equal(t, picture.PublicID, stored.PublicID)

	// файл выдается по публичному URL
	res, _ = ts.SendRequest(t, "GET", picture.URL, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// повторная загрузка заменяет аватар, а не создает вторую запись
	res, bodyStr = ts.SendMultipartRequest(t, "PUT", "/api/v1/profilePic", token, []helpers.MultipartField{
		{Name: "file", Filename: "avatar2.png", ContentType: "image/png", Data: pngBytes},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Тело ответа: %s", bodyStr)

	var count int64
	ts.DB.Model(&models.Picture{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestProfilePicUpload_RejectsMIME(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "mime_user", "mime_user@example.com", "Password123", false)

	res, bodyStr := ts.SendMultipartRequest(t, "PUT", "/api/v1/profilePic", token, []helpers.MultipartField{
		{Name: "file", Filename: "script.sh", ContentType: "application/x-sh", Data: []byte("echo hi")},
	})
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode, "Тело ответа: %s", bodyStr)
}

func TestCreatePost_WithMedia(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "media_author", "media_author@example.com", "Password123", false)

	res, bodyStr := ts.SendMultipartRequest(t, "POST", "/api/v1/post/create-post", token, []helpers.MultipartField{
		{Name: "title", Data: []byte("Пост с картинками")},
		{Name: "content", Data: []byte("Содержимое поста с вложениями")},
		{Name: "files", Filename: "one.png", ContentType: "image/png", Data: pngBytes},
		{Name: "files", Filename: "two.png", ContentType: "image/png", Data: pngBytes},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Тело ответа: %s", bodyStr)

	var created struct {
		ID         string `json:"id"`
		MediaFiles []struct {
			URL string `json:"url"`
		} `json:"mediaFiles"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	require.Len(t, created.MediaFiles, 2)

	// медиа-записи привязаны к посту
	var count int64
	ts.DB.Model(&models.MediaFile{}).Where("post_id = ?", created.ID).Count(&count)
	assert.Equal(t, int64(2), count)

	// каждый файл доступен по своему URL
	for _, m := range created.MediaFiles {
		res, _ := ts.SendRequest(t, "GET", m.URL, "", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}

}

func TestCreatePost_RejectsBadFile(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "badfile_author", "badfile_author@example.com", "Password123", false)

	res, bodyStr := ts.SendMultipartRequest(t, "POST", "/api/v1/post/create-post", token, []helpers.MultipartField{
		{Name: "title", Data: []byte("Пост")},
		{Name: "content", Data: []byte("Содержимое")},
		{Name: "files", Filename: "evil.exe", ContentType: "application/octet-stream", Data: []byte{0x4D, 0x5A}},
	})
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode, "Тело ответа: %s", bodyStr)

	// пост не должен быть создан частично
	var count int64
	ts.DB.Model(&models.Post{}).Where("title = ?", "Пост").Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdatePost_ReplacesMedia(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "replace_author", "replace_author@example.com", "Password123", false)

	res, bodyStr := ts.SendMultipartRequest(t, "POST", "/api/v1/post/create-post", token, []helpers.MultipartField{
		{Name: "title", Data: []byte("Пост до замены")},
		{Name: "content", Data: []byte("Старое содержимое")},
		{Name: "files", Filename: "old.png", ContentType: "image/png", Data: pngBytes},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "Тело ответа: %s", bodyStr)

	var created struct {
		ID         string `json:"id"`
		MediaFiles []struct {
			PublicID string `json:"public_id"`
		} `json:"mediaFiles"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	require.Len(t, created.MediaFiles, 1)
	oldPublicID := created.MediaFiles[0].PublicID

	res, bodyStr = ts.SendMultipartRequest(t, "PUT", "/api/v1/post/update-post/"+created.ID, token, []helpers.MultipartField{
		{Name: "title", Data: []byte("Пост после замены")},
		{Name: "files", Filename: "new1.png", ContentType: "image/png", Data: pngBytes},
		{Name: "files", Filename: "new2.png", ContentType: "image/png", Data: pngBytes},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "Тело ответа: %s", bodyStr)
	assert.Contains(t, bodyStr, "Пост после замены")

	// старая запись ушла, новых две
	var media []models.MediaFile
	require.NoError(t, ts.DB.Where("post_id = ?", created.ID).Find(&media).Error)
	require.Len(t, media, 2)
	for _, m := range media {
		assert.NotEqual(t, oldPublicID, m.PublicID)
	}
}
