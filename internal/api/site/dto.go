package siteapi

import (
	"time"

	"emb-site/internal/domain/settings"
	"emb-site/internal/render"
)

// PageDTO is a rendered page: header/SEO data plus one view per drawable
// section, in page order.
type PageDTO struct {
	Slug              string        `json:"slug"`
	Category          string        `json:"category"`
	HeaderTitle       string        `json:"header_title"`
	HeaderDescription string        `json:"header_description"`
	HeaderImageURL    string        `json:"header_image_url"`
	MetaTitle         string        `json:"meta_title"`
	MetaDescription   string        `json:"meta_description"`
	LastUpdated       *time.Time    `json:"last_updated,omitempty"`
	Sections          []render.View `json:"sections"`
}

// GeneralDTO is the public part of settings/general.
type GeneralDTO struct {
	SiteName        string            `json:"site_name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Address         string            `json:"address"`
	Social          map[string]string `json:"social"`
	MetaTitle       string            `json:"meta_title"`
	MetaDescription string            `json:"meta_description"`
}

func toGeneralDTO(g settings.General) GeneralDTO {
	return GeneralDTO{
		SiteName:        g.SiteName,
		Email:           g.Email,
		Phone:           g.Phone,
		Address:         g.Address,
		Social:          g.Social,
		MetaTitle:       g.MetaTitle,
		MetaDescription: g.MetaDescription,
	}
}
