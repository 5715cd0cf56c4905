package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Note is a saved piece of engineering reference material.
// Title and Content are kept exactly as entered; Link is optional.
type Note struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Link    string `json:"link"`
}

// HasLink reports whether the note carries a non-blank reference link.
func (n Note) HasLink() bool { return strings.TrimSpace(n.Link) != "" }

// Validate rejects notes whose title or content is empty after trimming.
func (n Note) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Title, validation.By(notBlank)),
		validation.Field(&n.Content, validation.By(notBlank)),
	)
}

var errBlank = errors.New("cannot be blank")

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errBlank
	}
	return nil
}
