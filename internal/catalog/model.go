package catalog

import (
	"strings"
	"time"
)

// Service is a treatment offered by the clinic.
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	DurationMin int       `json:"duration_min"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Professional is a clinician offering services.
type Professional struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Bio       string    `json:"bio,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateServiceRequest is the payload for creating a service.
type CreateServiceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	DurationMin int    `json:"duration_min"`
	ImageURL    string `json:"image_url"`
}

// Validate validates the create service request
func (r *CreateServiceRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}
	if r.PriceCents < 0 {
		return ErrNegativePrice
	}
	if r.DurationMin <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// CreateProfessionalRequest is the payload for creating a professional.
type CreateProfessionalRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photo_url"`
}

// Validate validates the create professional request
func (r *CreateProfessionalRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(r.Specialty) == "" {
		return ErrMissingSpecialty
	}
	return nil
}

// ServicePatch carries optional field updates for a service. Nil fields
// are left untouched.
type ServicePatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int64  `json:"price_cents,omitempty"`
	DurationMin *int    `json:"duration_min,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// Validate rejects patches that would leave the record invalid.
func (p *ServicePatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrMissingTitle
	}
	if p.PriceCents != nil && *p.PriceCents < 0 {
		return ErrNegativePrice
	}
	if p.DurationMin != nil && *p.DurationMin <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// ProfessionalPatch carries optional field updates for a professional.
type ProfessionalPatch struct {
	Name      *string `json:"name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty"`
}

// Validate rejects patches that would leave the record invalid.
func (p *ProfessionalPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrMissingName
	}
	if p.Specialty != nil && strings.TrimSpace(*p.Specialty) == "" {
		return ErrMissingSpecialty
	}
	return nil
}

func (p *ServicePatch) apply(s *Service) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.PriceCents != nil {
		s.PriceCents = *p.PriceCents
	}
	if p.DurationMin != nil {
		s.DurationMin = *p.DurationMin
	}
	if p.ImageURL != nil {
		s.ImageURL = *p.ImageURL
	}
}

func (p *ProfessionalPatch) apply(pro *Professional) {
	if p.Name != nil {
		pro.Name = *p.Name
	}
	if p.Specialty != nil {
		pro.Specialty = *p.Specialty
	}
	if p.Bio != nil {
		pro.Bio = *p.Bio
	}
	if p.PhotoURL != nil {
		pro.PhotoURL = *p.PhotoURL
	}
}
