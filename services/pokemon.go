package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/mapleleafu/spritedex/metrics"
	"github.com/mapleleafu/spritedex/models"
	"github.com/mapleleafu/spritedex/responses"
	"github.com/mapleleafu/spritedex/utils"
)

const upstreamFailureMessage = "Unable to fetch pokemon from external API"

// maxUpstreamBody bounds how much of a PokeAPI response is decoded.
const maxUpstreamBody = 4 << 20

// PokemonService proxies creature lookups to PokeAPI. Nothing is cached.
type PokemonService struct {
	baseURL  string
	maxID    int
	client   *http.Client
	randIntN func(n int) int
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type PokemonOption func(*PokemonService)

func WithHTTPClient(client *http.Client) PokemonOption {
	return func(s *PokemonService) {
		s.client = client
	}
}

// WithRandom replaces the id generator; intN must return a value in [0, n).
func WithRandom(intN func(n int) int) PokemonOption {
	return func(s *PokemonService) {
		s.randIntN = intN
	}
}

func WithMetrics(m *metrics.Metrics) PokemonOption {
	return func(s *PokemonService) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) PokemonOption {
	return func(s *PokemonService) {
		s.logger = utils.Component(logger, "pokemon")
	}
}

func NewPokemonService(baseURL string, maxID int, opts ...PokemonOption) *PokemonService {
	s := &PokemonService{
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxID:    maxID,
		client:   &http.Client{Timeout: 5 * time.Second},
		randIntN: rand.IntN,
		logger:   utils.Component(nil, "pokemon"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPokemon fetches one creature. Every failure, including a record without
// a default sprite, is reported as a BadGatewayError.
func (s *PokemonService) GetPokemon(ctx context.Context, id int) (models.Pokemon, error) {
	start := time.Now()
	pokemon, err := s.fetch(ctx, id)
	if err != nil {
		s.metrics.ObserveUpstream("error", time.Since(start))
		s.logger.Error("error fetching pokemon", "id", id, "error", err)
		return models.Pokemon{}, responses.BadGatewayError{Msg: upstreamFailureMessage}
	}
	s.metrics.ObserveUpstream("ok", time.Since(start))
	return pokemon, nil
}

// GetRandomSprite fetches a creature with a uniformly drawn id in [1, maxID].
func (s *PokemonService) GetRandomSprite(ctx context.Context) (models.Pokemon, error) {
	return s.GetPokemon(ctx, s.randIntN(s.maxID)+1)
}

func (s *PokemonService) fetch(ctx context.Context, id int) (models.Pokemon, error) {
	url := fmt.Sprintf("%s/pokemon/%d", s.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Pokemon{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.Pokemon{}, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxUpstreamBody))
		return models.Pokemon{}, fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}

	var pokemon models.Pokemon
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUpstreamBody)).Decode(&pokemon); err != nil {
		return models.Pokemon{}, fmt.Errorf("decode %s: %w", url, err)
	}
	if pokemon.Sprites.FrontDefault == "" {
		return models.Pokemon{}, fmt.Errorf("invalid response from PokeAPI: missing sprites.front_default")
	}
	return pokemon, nil
}
