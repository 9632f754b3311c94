package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mapleleafu/spritedex/models"
	"github.com/mapleleafu/spritedex/responses"
	"github.com/mapleleafu/spritedex/utils"
)

func (a *API) GetPokemon(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.HandleError(w, r, responses.BadRequestError{Msg: "Validation failed (numeric string is expected)"})
		return
	}

	pokemon, err := a.Pokemon.GetPokemon(r.Context(), id)
	if err != nil {
		utils.HandleError(w, r, err)
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(pokemon))
}
