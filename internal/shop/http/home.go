package http

import (
	"net/http"

	"github.com/chocomax/shop/pkg/httpx"
	"github.com/chocomax/shop/pkg/shopsdk"
)

const (
	APIName      = "ChocoMax Shop API"
	APIv1Version = "1.2.0"
	APIv2Version = "2.0.0"
)

// HomeHandler godoc
//
//	@Summary	Welcome message
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	shopsdk.WelcomeResponse
//	@Router		/ [get].
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, shopsdk.WelcomeResponse{
		Message: "Welcome to the ChocoMax Shop API",
	})
}

// VersionHandler godoc
//
//	@Summary		API version
//	@Description	Name and version of an API major version
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	shopsdk.VersionResponse
//	@Router			/api/v1/ [get]
//	@Router			/api/v2/ [get].
func VersionHandler(version string) http.HandlerFunc {
	body := shopsdk.VersionResponse{Name: APIName, Version: version}
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, body)
	}
}
