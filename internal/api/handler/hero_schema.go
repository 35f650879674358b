package handler

import (
	"encoding/json"
	"time"
)

// powersField accepts either a JSON list or a single scalar value, matching
// the legacy form contract where a lone power arrives as a bare string.
type powersField []string

func (p *powersField) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*p = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*p = nil
		return nil
	}
	*p = powersField{single}
	return nil
}

type createHeroRequest struct {
	Nom                string      `json:"nom"                form:"nom"                validate:"required"`
	Alias              string      `json:"alias"              form:"alias"              validate:"required"`
	Universe           string      `json:"universe"           form:"universe"           validate:"required"`
	Pouvoirs           powersField `json:"pouvoirs"           form:"pouvoirs"`
	Description        string      `json:"description"        form:"description"        validate:"required"`
	Origine            string      `json:"origine"            form:"origine"            validate:"required"`
	PremiereApparition string      `json:"premiereApparition" form:"premiereApparition" validate:"required"`
}

// updateHeroRequest is a partial patch; every field is optional.
type updateHeroRequest struct {
	Nom                string      `json:"nom"                form:"nom"`
	Alias              string      `json:"alias"              form:"alias"`
	Universe           string      `json:"universe"           form:"universe"`
	Pouvoirs           powersField `json:"pouvoirs"           form:"pouvoirs"`
	Description        string      `json:"description"        form:"description"`
	Origine            string      `json:"origine"            form:"origine"`
	PremiereApparition string      `json:"premiereApparition" form:"premiereApparition"`
}

// heroResponse is the transport view of a hero. It carries both the stored
// image value and the resolved imageUrl clients should actually request.
type heroResponse struct {
	ID                 string    `json:"_id"`
	Nom                string    `json:"nom"`
	Alias              string    `json:"alias"`
	Universe           string    `json:"universe"`
	Pouvoirs           []string  `json:"pouvoirs"`
	Description        string    `json:"description"`
	Image              string    `json:"image"`
	ImageURL           string    `json:"imageUrl"`
	Origine            string    `json:"origine"`
	PremiereApparition string    `json:"premiereApparition"`
	CreatedAt          time.Time `json:"createdAt"`
}
