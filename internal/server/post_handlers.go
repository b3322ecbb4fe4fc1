package server

import (
	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

type postTextInput struct {
	Text string `json:"text"`
}

// createPostHandler creates a post authored by the caller.
//
//	@Summary	Create a post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		postTextInput	true	"post payload"
//	@Success	201		{object}	models.Post
//	@Failure	400		{object}	models.ErrorResponse
//	@Router		/api/posts [post]
func (s *Server) createPostHandler(c *fiber.Ctx) error {
	var input postTextInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	post, err := s.postService.Create(c.UserContext(), currentUserID(c), input.Text)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// listPostsHandler returns posts newest-first with limit/offset pagination.
//
//	@Summary	List posts
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		limit	query	int	false	"page size (default 20, max 100)"
//	@Param		offset	query	int	false	"page offset"
//	@Success	200		{array}	models.Post
//	@Router		/api/posts [get]
func (s *Server) listPostsHandler(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	posts, err := s.postService.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// getPostHandler returns a single post with its likes and comments.
//
//	@Summary	Get a post by ID
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"post ID"
//	@Success	200	{object}	models.Post
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/posts/{id} [get]
func (s *Server) getPostHandler(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// deletePostHandler removes the caller's post.
//
//	@Summary	Delete a post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"post ID"
//	@Success	200	{object}	map[string]string
//	@Failure	403	{object}	models.ErrorResponse
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/posts/{id} [delete]
func (s *Server) deletePostHandler(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := s.postService.Delete(c.UserContext(), id, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post removed"})
}

// likePostHandler records the caller's like and returns the updated like list.
//
//	@Summary	Like a post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	int	true	"post ID"
//	@Success	200	{array}	models.Like
//	@Failure	400	{object}	models.ErrorResponse
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/posts/like/{id} [put]
func (s *Server) likePostHandler(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	likes, err := s.postService.Like(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(likes)
}

// unlikePostHandler removes the caller's like and returns the updated like list.
//
//	@Summary	Unlike a post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	int	true	"post ID"
//	@Success	200	{array}	models.Like
//	@Failure	400	{object}	models.ErrorResponse
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/posts/unlike/{id} [put]
func (s *Server) unlikePostHandler(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	likes, err := s.postService.Unlike(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(likes)
}

// addCommentHandler adds a comment and returns the post's comments.
//
//	@Summary	Comment on a post
//	@Tags		posts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path	int				true	"post ID"
//	@Param		body	body	postTextInput	true	"comment payload"
//	@Success	201		{array}	models.Comment
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/api/posts/comment/{id} [post]
func (s *Server) addCommentHandler(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	var input postTextInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	comments, err := s.postService.AddComment(c.UserContext(), id, currentUserID(c), input.Text)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comments)
}

// removeCommentHandler deletes the caller's comment and returns the post's
// remaining comments.
//
//	@Summary	Remove a comment from a post
//	@Tags		posts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path	int	true	"post ID"
//	@Param		comment_id	path	int	true	"comment ID"
//	@Success	200			{array}	models.Comment
//	@Failure	403			{object}	models.ErrorResponse
//	@Failure	404			{object}	models.ErrorResponse
//	@Router		/api/posts/comment/{id}/{comment_id} [delete]
func (s *Server) removeCommentHandler(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.postService.RemoveComment(c.UserContext(), id, commentID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}
