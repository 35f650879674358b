package handler

import (
	"github.com/superheromanager/hero-service/internal/core/domain"
	"github.com/superheromanager/hero-service/internal/core/ports"
	"github.com/superheromanager/hero-service/internal/images"
)

// --- Request -> Service input ---

func toCreateInput(req createHeroRequest, imagePath string) ports.CreateHeroInput {
	return ports.CreateHeroInput{
		Name:            req.Nom,
		Alias:           req.Alias,
		Universe:        req.Universe,
		Powers:          req.Pouvoirs,
		Description:     req.Description,
		Origin:          req.Origine,
		FirstAppearance: req.PremiereApparition,
		ImagePath:       imagePath,
	}
}

func toUpdateInput(req updateHeroRequest, imagePath string) ports.UpdateHeroInput {
	return ports.UpdateHeroInput{
		Name:            req.Nom,
		Alias:           req.Alias,
		Universe:        req.Universe,
		Powers:          req.Pouvoirs,
		Description:     req.Description,
		Origin:          req.Origine,
		FirstAppearance: req.PremiereApparition,
		ImagePath:       imagePath,
	}
}

// --- Domain -> HTTP response ---

func toHeroResponse(h *domain.Hero, resolver images.Resolver) heroResponse {
	return heroResponse{
		ID:                 h.ID,
		Nom:                h.Name,
		Alias:              h.Alias,
		Universe:           string(h.Universe),
		Pouvoirs:           h.Powers,
		Description:        h.Description,
		Image:              h.Image,
		ImageURL:           resolver.URL(h.Image),
		Origine:            h.Origin,
		PremiereApparition: h.FirstAppearance,
		CreatedAt:          h.CreatedAt.UTC(),
	}
}

func toHeroResponses(heroes []*domain.Hero, resolver images.Resolver) []heroResponse {
	out := make([]heroResponse, len(heroes))
	for i, h := range heroes {
		out[i] = toHeroResponse(h, resolver)
	}
	return out
}
