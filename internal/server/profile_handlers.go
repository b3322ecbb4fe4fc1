package server

import (
	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/gofiber/fiber/v2"
)

// myProfileHandler returns the authenticated user's profile.
//
//	@Summary	Get the caller's profile
//	@Tags		profile
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	models.Profile
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/api/profile/me [get]
func (s *Server) myProfileHandler(c *fiber.Ctx) error {
	profile, err := s.profileService.GetByUserID(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// profileByUserHandler returns a profile by the owning user's ID.
//
//	@Summary	Get a profile by user ID
//	@Tags		profile
//	@Produce	json
//	@Param		user_id	path		int	true	"user ID"
//	@Success	200		{object}	models.Profile
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/api/profile/user/{user_id} [get]
func (s *Server) profileByUserHandler(c *fiber.Ctx) error {
	userID, err := parseID(c, "user_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	profile, err := s.profileService.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// listProfilesHandler returns all profiles.
//
//	@Summary	List all profiles
//	@Tags		profile
//	@Produce	json
//	@Success	200	{array}	models.Profile
//	@Router		/api/profile [get]
func (s *Server) listProfilesHandler(c *fiber.Ctx) error {
	profiles, err := s.profileService.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profiles)
}

// upsertProfileHandler creates the caller's profile or updates it in place.
// Responds 201 on create, 200 on update.
//
//	@Summary	Create or update the caller's profile
//	@Tags		profile
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		service.UpsertProfileInput	true	"profile payload"
//	@Success	200		{object}	models.Profile
//	@Success	201		{object}	models.Profile
//	@Failure	400		{object}	models.ErrorResponse
//	@Router		/api/profile [post]
func (s *Server) upsertProfileHandler(c *fiber.Ctx) error {
	var input service.UpsertProfileInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	profile, created, err := s.profileService.Upsert(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(profile)
}

// deleteAccountHandler removes the caller's account along with their
// profile, posts, likes and comments.
//
//	@Summary	Delete the caller's account and all owned data
//	@Tags		profile
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]string
//	@Router		/api/profile [delete]
func (s *Server) deleteAccountHandler(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// addExperienceHandler adds a work history entry to the caller's profile.
//
//	@Summary	Add a work experience entry
//	@Tags		profile
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		service.ExperienceInput	true	"experience payload"
//	@Success	200		{object}	models.Profile
//	@Failure	400		{object}	models.ErrorResponse
//	@Router		/api/profile/experience [put]
func (s *Server) addExperienceHandler(c *fiber.Ctx) error {
	var input service.ExperienceInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// removeExperienceHandler deletes a work history entry by its ID.
//
//	@Summary	Remove a work experience entry
//	@Tags		profile
//	@Produce	json
//	@Security	BearerAuth
//	@Param		exp_id	path		int	true	"experience ID"
//	@Success	200		{object}	models.Profile
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/api/profile/experience/{exp_id} [delete]
func (s *Server) removeExperienceHandler(c *fiber.Ctx) error {
	expID, err := parseID(c, "exp_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	profile, err := s.profileService.RemoveExperience(c.UserContext(), currentUserID(c), expID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// addEducationHandler adds a schooling entry to the caller's profile.
//
//	@Summary	Add an education entry
//	@Tags		profile
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		service.EducationInput	true	"education payload"
//	@Success	200		{object}	models.Profile
//	@Failure	400		{object}	models.ErrorResponse
//	@Router		/api/profile/education [put]
func (s *Server) addEducationHandler(c *fiber.Ctx) error {
	var input service.EducationInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	profile, err := s.profileService.AddEducation(c.UserContext(), currentUserID(c), input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// removeEducationHandler deletes a schooling entry by its ID.
//
//	@Summary	Remove an education entry
//	@Tags		profile
//	@Produce	json
//	@Security	BearerAuth
//	@Param		edu_id	path		int	true	"education ID"
//	@Success	200		{object}	models.Profile
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/api/profile/education/{edu_id} [delete]
func (s *Server) removeEducationHandler(c *fiber.Ctx) error {
	eduID, err := parseID(c, "edu_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	profile, err := s.profileService.RemoveEducation(c.UserContext(), currentUserID(c), eduID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}
