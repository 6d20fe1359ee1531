package domain

import (
	"fmt"
	"strings"
	"time"
)

// Species of a pet
type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesBird    Species = "bird"
	SpeciesFish    Species = "fish"
	SpeciesHamster Species = "hamster"
	SpeciesRabbit  Species = "rabbit"
	SpeciesReptile Species = "reptile"
	SpeciesOther   Species = "other"
)

var AllSpecies = []Species{
	SpeciesDog,
	SpeciesCat,
	SpeciesBird,
	SpeciesFish,
	SpeciesHamster,
	SpeciesRabbit,
	SpeciesReptile,
	SpeciesOther,
}

// ParseSpecies converts a wire value into a Species (case-insensitive)
func ParseSpecies(s string) (Species, error) {
	v := Species(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllSpecies {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: invalid species %q", ErrValidation, s)
}

// Sex of a pet
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

var AllSexes = []Sex{SexMale, SexFemale}

// ParseSex converts a wire value into a Sex (case-insensitive)
func ParseSex(s string) (Sex, error) {
	v := Sex(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllSexes {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: invalid sex %q", ErrValidation, s)
}

// Pet belongs to exactly one client
type Pet struct {
	ID        int64
	Name      string
	Species   Species
	Breed     *string
	Color     *string
	Sex       *Sex
	BirthDate *time.Time
	Weight    *float64
	Notes     *string
	Active    bool
	OwnerID   int64
	CreatedAt time.Time
}

// AgeYears returns the pet's age in full years at now, or nil when the birth date is unknown
func (p *Pet) AgeYears(now time.Time) *int {
	if p.BirthDate == nil {
		return nil
	}

	b := *p.BirthDate
	years := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return &years
}

// PetFilter describes a pet listing. Nil fields are not filtered on.
type PetFilter struct {
	OwnerID *int64
	Active  *bool
}
