package handler

import (
	"time"

	"github.com/msomdec/ocean-watch/internal/domain"
)

// MemberDTO is the JSON representation of a member.
type MemberDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Interest  string `json:"interest"`
	CreatedAt string `json:"created_at"`
}

func toMemberDTO(m domain.Member) MemberDTO {
	return MemberDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		City:      m.City,
		Country:   m.Country,
		Interest:  m.Interest,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toMemberDTOs(members []domain.Member) []MemberDTO {
	dtos := make([]MemberDTO, len(members))
	for i, m := range members {
		dtos[i] = toMemberDTO(m)
	}
	return dtos
}
