package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"blogapp_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommentFlow - добавление, просмотр и изменение комментария
func TestCommentFlow(t *testing.T) {
	ts := GetTestServer(t)

	_, author := helpers.CreateAndLoginUser(t, ts, "c_author", "c_author@test.com", "super_password123", false)
	commenterToken, _ := helpers.CreateAndLoginUser(t, ts, "c_commenter", "c_commenter@test.com", "super_password123", false)

	post := helpers.CreatePost(t, ts.DB, author.ID, "Commentable", "body")

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/comment/add-comment/"+post.ID, commenterToken, map[string]interface{}{
		"content": "First!",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var comment struct {
		ID     string `json:"id"`
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &comment))
	assert.Equal(t, "c_commenter", comment.Author.Username)

	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/comment/view-comments/"+post.ID, commenterToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "First!")

	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/comment/view-comment/"+comment.ID, commenterToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "First!")

	res, bodyStr = ts.SendRequest(t, "PUT", "/api/v1/comment/update-comment/"+comment.ID, commenterToken, map[string]interface{}{
		"content": "Edited!",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Edited!")
}

// TestComment_Ownership - чужой комментарий нельзя изменить,
// но автор поста через delete-comments зачищает ветку
func TestComment_Ownership(t *testing.T) {
	ts := GetTestServer(t)

	authorToken, author := helpers.CreateAndLoginUser(t, ts, "t_author", "t_author@test.com", "super_password123", false)
	trollToken, _ := helpers.CreateAndLoginUser(t, ts, "t_troll", "t_troll@test.com", "super_password123", false)

	post := helpers.CreatePost(t, ts.DB, author.ID, "Thread", "body")

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/comment/add-comment/"+post.ID, trollToken, map[string]interface{}{
		"content": "Rude comment",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var comment struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &comment))

	// Автор поста не может редактировать чужой комментарий
	res, _ = ts.SendRequest(t, "PUT", "/api/v1/comment/update-comment/"+comment.ID, authorToken, map[string]interface{}{
		"content": "Censored",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Но может снести все комментарии под своим постом
	res, bodyStr = ts.SendRequest(t, "DELETE", "/api/v1/comment/delete-comments/"+post.ID, authorToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Deleted 1 comments")
}

// TestComment_UnknownPost - комментарий к несуществующему посту
func TestComment_UnknownPost(t *testing.T) {
	ts := GetTestServer(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "lost_user", "lost@test.com", "super_password123", false)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/comment/add-comment/00000000-0000-0000-0000-000000000000", token, map[string]interface{}{
		"content": "Into the void",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
