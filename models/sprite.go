package models

// Pokemon is the trimmed PokeAPI creature record relayed to clients.
type Pokemon struct {
	ID      int            `json:"id"`
	Name    string         `json:"name"`
	Sprites PokemonSprites `json:"sprites"`
}

type PokemonSprites struct {
	FrontDefault string `json:"front_default"`
}
