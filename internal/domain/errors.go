package domain

import "errors"

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchNotLive    = errors.New("match not live")
	ErrArticleNotFound = errors.New("article not found")
	ErrInvalidArticle  = errors.New("invalid article")
	ErrInvalidPatch    = errors.New("invalid match patch")
	ErrInvalidEmail    = errors.New("invalid email address")
)
