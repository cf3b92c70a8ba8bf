package models

import (
	"strings"

	"github.com/miblum/go-fund-notice/internal/common"
)

type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "INDIVIDUAL"
	CustomerTypeBusiness   CustomerType = "BUSINESS"
)

type IdentityDocument struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

type Customer struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	MiddleName        string             `json:"middleName,omitempty"`
	LastName          string             `json:"lastName,omitempty"`
	MotherLastName    string             `json:"motherLastName,omitempty"`
	Type              CustomerType       `json:"type"`
	Email             string             `json:"email"`
	IdentityDocuments []IdentityDocument `json:"identityDocuments"`
}

func (c Customer) FullName() string {
	return joinNames(c.Name, c.MiddleName, c.LastName, c.MotherLastName)
}

// PrimaryDocument is the first identity document, the one printed on
// notices and used for image file names.
func (c Customer) PrimaryDocument() (IdentityDocument, error) {
	if len(c.IdentityDocuments) == 0 || c.IdentityDocuments[0].Number == "" {
		return IdentityDocument{}, common.ErrMissingIdentityDocument
	}
	return c.IdentityDocuments[0], nil
}

func joinNames(parts ...string) string {
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return strings.Join(names, " ")
}
