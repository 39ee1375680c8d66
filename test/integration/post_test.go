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

// TestPostCRUD - создание, чтение и обновление поста автором
func TestPostCRUD(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "blogger", "blogger@test.com", "super_password123", false)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/post/create-post", token, map[string]interface{}{
		"title":   "First post",
		"content": "Hello world",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var created struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Author struct {
			Email string `json:"email"`
		} `json:"author"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.Equal(t, "First post", created.Title)
	assert.Equal(t, "blogger@test.com", created.Author.Email)

	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/post/get-post/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Hello world")

	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/post/get-posts", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, created.ID)

	res, bodyStr = ts.SendRequest(t, "PUT", "/api/v1/post/update-post/"+created.ID, token, map[string]interface{}{
		"title": "Updated title",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Updated title")
	// Не переданные поля не трогаются
	assert.Contains(t, bodyStr, "Hello world")
}

// TestPostOwnership - чужой пост нельзя ни обновить, ни удалить
func TestPostOwnership(t *testing.T) {
	ts := GetTestServer(t)

	_, author := helpers.CreateAndLoginUser(t, ts, "owner1", "owner1@test.com", "super_password123", false)
	strangerToken, _ := helpers.CreateAndLoginUser(t, ts, "stranger1", "stranger1@test.com", "super_password123", false)

	post := helpers.CreatePost(t, ts.DB, author.ID, "Private thoughts", "body")

	res, bodyStr := ts.SendRequest(t, "PUT", "/api/v1/post/update-post/"+post.ID, strangerToken, map[string]interface{}{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "not allowed")

	res, _ = ts.SendRequest(t, "DELETE", "/api/v1/post/delete-post/"+post.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestPostDelete_Cascade - удаление поста забирает с собой комментарии,
// лайки и репосты
func TestPostDelete_Cascade(t *testing.T) {
	ts := GetTestServer(t)

	authorToken, author := helpers.CreateAndLoginUser(t, ts, "cascade_author", "cascade@test.com", "super_password123", false)
	readerToken, _ := helpers.CreateAndLoginUser(t, ts, "cascade_reader", "cascade_reader@test.com", "super_password123", false)

	post := helpers.CreatePost(t, ts.DB, author.ID, "Doomed post", "body")

	res, _ := ts.SendRequest(t, "POST", "/api/v1/comment/add-comment/"+post.ID, readerToken, map[string]interface{}{
		"content": "Nice post",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, _ = ts.SendRequest(t, "POST", "/api/v1/comment/like-post/"+post.ID, readerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, "POST", "/api/v1/comment/share-post/"+post.ID, readerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, "DELETE", "/api/v1/post/delete-post/"+post.ID, authorToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var comments, likes, shares int64
	ts.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
	ts.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes)
	ts.DB.Model(&models.Share{}).Where("post_id = ?", post.ID).Count(&shares)
	assert.Equal(t, int64(0), comments)
	assert.Equal(t, int64(0), likes)
	assert.Equal(t, int64(0), shares)

	res, _ = ts.SendRequest(t, "GET", "/api/v1/post/get-post/"+post.ID, authorToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestPostDelete_AdminOverride - админ удаляет чужой пост
func TestPostDelete_AdminOverride(t *testing.T) {
	ts := GetTestServer(t)

	_, author := helpers.CreateAndLoginUser(t, ts, "victim_author", "victim_author@test.com", "super_password123", false)
	adminToken, _ := helpers.CreateAndLoginUser(t, ts, "mod_admin", "mod@test.com", "super_password123", true)

	post := helpers.CreatePost(t, ts.DB, author.ID, "Spam", "buy now")

	res, _ := ts.SendRequest(t, "DELETE", "/api/v1/post/delete-post/"+post.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

// TestCreatePost_Validation - пустые поля отклоняются
func TestCreatePost_Validation(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "validator_user", "validator@test.com", "super_password123", false)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/post/create-post", token, map[string]interface{}{
		"title": "No content",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// TestPostRead_Public - чтение постов не требует сессии
func TestPostRead_Public(t *testing.T) {
	ts := GetTestServer(t)

	_, author := helpers.CreateAndLoginUser(t, ts, "public_author", "public_author@test.com", "super_password123", false)
	post := helpers.CreatePost(t, ts.DB, author.ID, "Открытый пост", "Виден без токена")

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/post/get-post/"+post.ID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Открытый пост")

	res, _ = ts.SendRequest(t, "GET", "/api/v1/post/get-posts", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// мутация без токена закрыта
	res, _ = ts.SendRequest(t, "DELETE", "/api/v1/post/delete-post/"+post.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
