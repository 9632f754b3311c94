package handlers

import (
	"net/http"

	"github.com/mapleleafu/spritedex/auth"
	"github.com/mapleleafu/spritedex/common"
	"github.com/mapleleafu/spritedex/models"
	"github.com/mapleleafu/spritedex/responses"
	"github.com/mapleleafu/spritedex/utils"
)

func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var dto models.CreateUserDto
	if err := decodeAndValidate(w, r, &dto); err != nil {
		utils.HandleError(w, r, err)
		return
	}

	user, err := a.Auth.Register(r.Context(), dto)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	utils.HandleCreated(w, models.SuccessResponse(user))
}

// Login verifies credentials and sets the session cookie. The token itself is
// never returned in the body.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var dto models.CreateUserDto
	if err := decodeAndValidate(w, r, &dto); err != nil {
		utils.HandleError(w, r, err)
		return
	}

	user, err := a.Auth.ValidateUser(r.Context(), dto.Username, dto.Password)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}
	if user == nil {
		utils.HandleError(w, r, responses.UnauthorizedError{Msg: "Invalid credentials"})
		return
	}

	result, err := a.Auth.Login(r.Context(), *user)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	auth.SetSessionCookie(w, result.AccessToken, a.Tokens.TTL(), a.SecureCookies)
	utils.HandleSuccess(w, models.SuccessResponse(models.LoginResponse{User: result.User}))
}

func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, a.SecureCookies)
	utils.HandleSuccess(w, models.SuccessResponse(models.MessageResponse{Message: "Logged out successfully"}))
}

func (a *API) Profile(w http.ResponseWriter, r *http.Request) {
	info, ok := common.AuthInfoFrom(r.Context())
	if !ok {
		utils.HandleError(w, r, responses.UnauthorizedError{Msg: "Unauthorized"})
		return
	}
	utils.HandleSuccess(w, models.SuccessResponse(info))
}
