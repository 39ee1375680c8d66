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

type toggleResponse struct {
	Message      string            `json:"message"`
	Active       bool              `json:"active"`
	Count        int64             `json:"count"`
	ShareButtons map[string]string `json:"shareButtons"`
}

// TestLikeToggle - повторный лайк снимает предыдущий
func TestLikeToggle(t *testing.T) {
	ts := GetTestServer(t)

	_, author := helpers.CreateAndLoginUser(t, ts, "like_author", "like_author@test.com", "super_password123", false)
	likerToken, _ := helpers.CreateAndLoginUser(t, ts, "liker", "liker@test.com", "super_password123", false)

	post := helpers.CreatePost(t, ts.DB, author.ID, "Likeable", "body")

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/comment/like-post/"+post.ID, likerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var toggle toggleResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &toggle))
	assert.True(t, toggle.Active)
	assert.Equal(t, int64(1), toggle.Count)
	assert.Equal(t, "Post liked", toggle.Message)

	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/comment/like-post/"+post.ID, likerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &toggle))
	assert.False(t, toggle.Active)
	assert.Equal(t, int64(0), toggle.Count)
	assert.Equal(t, "Post unliked", toggle.Message)

	// В базе лайков не осталось
	var count int64
	ts.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

// TestLike_TwoUsers - лайки разных пользователей независимы
func TestLike_TwoUsers(t *testing.T) {
	ts := GetTestServer(t)

	_, author := helpers.CreateAndLoginUser(t, ts, "pop_author", "pop_author@test.com", "super_password123", false)
	firstToken, _ := helpers.CreateAndLoginUser(t, ts, "fan_one", "fan1@test.com", "super_password123", false)
	secondToken, _ := helpers.CreateAndLoginUser(t, ts, "fan_two", "fan2@test.com", "super_password123", false)

	post := helpers.CreatePost(t, ts.DB, author.ID, "Popular", "body")

	res, _ := ts.SendRequest(t, "POST", "/api/v1/comment/like-post/"+post.ID, firstToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/comment/like-post/"+post.ID, secondToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var toggle toggleResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &toggle))
	assert.Equal(t, int64(2), toggle.Count)

	// Снятие лайка одним не трогает лайк другого
	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/comment/like-post/"+post.ID, firstToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &toggle))
	assert.Equal(t, int64(1), toggle.Count)
}

// TestShareToggle - репост возвращает ссылки для соцсетей
// и сохраняет их на посте
func TestShareToggle(t *testing.T) {
	ts := GetTestServer(t)

	_, author := helpers.CreateAndLoginUser(t, ts, "share_author", "share_author@test.com", "super_password123", false)
	sharerToken, _ := helpers.CreateAndLoginUser(t, ts, "sharer", "sharer@test.com", "super_password123", false)

	post := helpers.CreatePost(t, ts.DB, author.ID, "Shareable", "body")

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/comment/share-post/"+post.ID, sharerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var toggle toggleResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &toggle))
	assert.True(t, toggle.Active)
	assert.Contains(t, toggle.ShareButtons["facebook"], "facebook.com/sharer")
	assert.Contains(t, toggle.ShareButtons["twitter"], "twitter.com/intent")
	assert.Contains(t, toggle.ShareButtons["linkedin"], "linkedin.com/sharing")

	// Ссылки закешированы на посте
	var stored models.Post
	require.NoError(t, ts.DB.First(&stored, "id = ?", post.ID).Error)
	assert.NotEmpty(t, stored.ShareButtons)

	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/comment/share-post/"+post.ID, sharerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &toggle))
	assert.False(t, toggle.Active)
	assert.Equal(t, int64(0), toggle.Count)
}

// TestEngagement_UnknownPost - лайк несуществующего поста
func TestEngagement_UnknownPost(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "ghost_liker", "ghost_liker@test.com", "super_password123", false)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/comment/like-post/00000000-0000-0000-0000-000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
