package response

import "stayflow/internal/usecase/queries"

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

type CurrentUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func FromAuthorizedUser(view *queries.AuthorizedUserView) CurrentUserResponse {
	return CurrentUserResponse{
		ID:    view.ID.String(),
		Email: view.Email,
		Role:  view.Role,
	}
}
