package handlers

type AppHandlers struct {
	AuthHandler    *AuthHandler
	UserHandler    *UserHandler
	PostHandler    *PostHandler
	CommentHandler *CommentHandler
	FileHandler    *FileHandler
}
